package statistics

import (
	"github.com/fadedpez/dugout/pkg/entities"
)

// Series is one bar series of the batting chart
type Series struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// Chart is the batting bar chart: one label per player and a fixed set of
// series whose data line up with the labels.
type Chart struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

type chartSeries struct {
	key   string
	label string
	value func(*entities.BattingAggregate) int
}

var battingChartSeries = []chartSeries{
	{"h", "安打", func(a *entities.BattingAggregate) int { return a.H }},
	{"ab", "打数", func(a *entities.BattingAggregate) int { return a.AB }},
	{"bb", "四球", func(a *entities.BattingAggregate) int { return a.BB }},
	{"so", "三振", func(a *entities.BattingAggregate) int { return a.SO }},
	{"rbi", "打点", func(a *entities.BattingAggregate) int { return a.RBI }},
	{"run", "得点", func(a *entities.BattingAggregate) int { return a.Run }},
}

// BattingChart builds the chart in roster order. A player with no
// aggregate gets 0 in every series.
func BattingChart(players []string, stats map[string]*entities.BattingAggregate) Chart {
	chart := Chart{
		Labels: append([]string{}, players...),
		Series: make([]Series, 0, len(battingChartSeries)),
	}
	for _, cs := range battingChartSeries {
		data := make([]int, len(players))
		for i, p := range players {
			if agg, ok := stats[p]; ok && agg != nil {
				data[i] = cs.value(agg)
			}
		}
		chart.Series = append(chart.Series, Series{Key: cs.key, Label: cs.label, Data: data})
	}
	return chart
}
