package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/dugout/pkg/entities"
)

func dated(player, opponent, date string, result entities.Result) *entities.BattingRecord {
	return &entities.BattingRecord{Player: player, Opponent: opponent, Date: date, Result: result}
}

func seasonLog() []*entities.BattingRecord {
	return []*entities.BattingRecord{
		dated("山田", "Tigers", "2025-03-29", entities.ResultHit),
		dated("山田", "Tigers", "2025-04-05", entities.ResultOut),
		dated("佐藤", "Tigers", "2025-04-05", entities.ResultWalk),
		dated("山田", "Bears", "2025-04-19", entities.ResultHit),
		dated("佐藤", "Bears", "2025-05-03", entities.ResultStrikeout),
		dated("鈴木", "", "", entities.ResultOut),
	}
}

func TestFilterBatting(t *testing.T) {
	records := seasonLog()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"zero filter", Filter{}, 6},
		{"month prefix", Filter{Month: "2025-04"}, 3},
		{"range", Filter{FromMonth: "2025-04", ToMonth: "2025-05"}, 4},
		{"open start", Filter{ToMonth: "2025-03"}, 1},
		{"open end", Filter{FromMonth: "2025-05"}, 1},
		{"player", Filter{Player: "山田"}, 3},
		{"opponent", Filter{Opponent: "Bears"}, 2},
		{"date", Filter{Date: "2025-04-05"}, 2},
		{"combined", Filter{Month: "2025-04", Player: "山田", Opponent: "Tigers"}, 1},
		{"no match", Filter{Player: "田中"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterBatting(records, tt.filter), tt.want)
		})
	}

	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Month: "2025-04"}.IsZero())
}

func TestFilterBatting_MonthTotalsUseOnlyThatMonth(t *testing.T) {
	filtered := FilterBatting(seasonLog(), Filter{Month: "2025-04"})
	for _, r := range filtered {
		assert.Equal(t, "2025-04", r.Date[:7])
	}

	team := BattingTotals(filtered)
	assert.Equal(t, 3, team.PA)
	assert.Equal(t, 2, team.AB)
	assert.Equal(t, 1, team.H)
	assert.Equal(t, 1, team.BB)
	assert.Equal(t, "0.500", team.AVG)
	assert.Equal(t, "0.667", team.OBP)
	assert.Equal(t, 2, team.Games, "Tigers and Bears")

	all := BattingTotals(seasonLog())
	assert.Equal(t, 6, all.PA)
	assert.Equal(t, 2, all.Games, "records without an opponent are not a game")
}

func TestFilterPitching(t *testing.T) {
	records := []*entities.PitchingRecord{
		{Pitcher: "鈴木", Date: "2025-04-05", Opponent: "Tigers"},
		{Pitcher: "田中", Date: "2025-04-19", Opponent: "Bears"},
		{Pitcher: "鈴木", Date: "2025-05-03", Opponent: "Bears"},
	}
	assert.Len(t, FilterPitching(records, Filter{Player: "鈴木"}), 2)
	assert.Len(t, FilterPitching(records, Filter{Month: "2025-04"}), 2)
	assert.Len(t, FilterPitching(records, Filter{FromMonth: "2025-05"}), 1)
}

func TestMonths(t *testing.T) {
	assert.Equal(t, []string{"2025-05", "2025-04", "2025-03"}, BattingMonths(seasonLog()))

	pitching := []*entities.PitchingRecord{
		{Date: "2025-06-01"},
		{Date: "2025-04-05"},
		{Date: "2025-06-14"},
		{Date: "bad"},
	}
	assert.Equal(t, []string{"2025-04", "2025-06"}, PitchingMonths(pitching))

	assert.Equal(t, "2025-04", MonthOf("2025-04-05"))
	assert.Equal(t, "", MonthOf("2025"))
	assert.Equal(t, []string{"Bears", "Tigers"}, Opponents(seasonLog()))
	assert.Equal(t, []string{"2025-03-29", "2025-04-05", "2025-04-19", "2025-05-03"}, Dates(seasonLog()))
}

func TestPitchingTotals(t *testing.T) {
	team := PitchingTotals([]*entities.PitchingRecord{
		{Pitcher: "鈴木", Date: "2025-04-05", Innings: "5.2", ER: "2", SO: "6"},
		{Pitcher: "田中", Date: "2025-04-05", Innings: "1.1", ER: "1", SO: "1"},
		{Pitcher: "鈴木", Date: "2025-04-12", Innings: "1.2", ER: "0"},
		{Pitcher: "田中", Date: "", Innings: "0.1"},
	})
	assert.Equal(t, 2, team.Games)
	assert.Equal(t, "9", team.InningsPitched)
	assert.Equal(t, "3.00", team.ERA)
	assert.Equal(t, 7, team.SO)
	assert.Equal(t, 3, team.ER)

	empty := PitchingTotals(nil)
	assert.Equal(t, "0", empty.InningsPitched)
	assert.Equal(t, NoData, empty.ERA)
	assert.Equal(t, 0, empty.Games)
}

func TestBattingChart(t *testing.T) {
	stats := AggregateBatting([]*entities.BattingRecord{
		{Player: "佐藤", Result: entities.ResultHit, RBI: "2", Run: "1"},
		{Player: "佐藤", Result: entities.ResultStrikeout},
		{Player: "控え", Result: entities.ResultWalk},
	})
	chart := BattingChart([]string{"山田", "佐藤"}, stats)

	assert.Equal(t, []string{"山田", "佐藤"}, chart.Labels)
	require.Len(t, chart.Series, 6)

	keys := make([]string, 0, len(chart.Series))
	for _, s := range chart.Series {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"h", "ab", "bb", "so", "rbi", "run"}, keys)
	assert.Equal(t, "安打", chart.Series[0].Label)

	assert.Equal(t, []int{0, 1}, chart.Series[0].Data)
	assert.Equal(t, []int{0, 2}, chart.Series[1].Data)
	assert.Equal(t, []int{0, 0}, chart.Series[2].Data, "players off the list are not charted")
	assert.Equal(t, []int{0, 1}, chart.Series[3].Data)
	assert.Equal(t, []int{0, 2}, chart.Series[4].Data)
	assert.Equal(t, []int{0, 1}, chart.Series[5].Data)
}
