package statistics

import (
	"github.com/fadedpez/dugout/pkg/entities"
)

// TeamBatting is the team row of the batting table
type TeamBatting struct {
	Games int `json:"games"`
	entities.BattingAggregate
}

// TeamPitching is the team row of the pitching table
type TeamPitching struct {
	Games int `json:"games"`
	entities.PitchingAggregate
}

// BattingTotals sums the batting log into a team line. Games counts the
// distinct opponents faced. Pass the filtered log: the totals describe
// exactly the records given.
func BattingTotals(records []*entities.BattingRecord) TeamBatting {
	var t TeamBatting
	opponents := make([]string, 0, len(records))
	for _, r := range records {
		if r != nil {
			opponents = append(opponents, r.Opponent)
		}
	}
	t.Games = len(distinct(opponents))

	for _, agg := range AggregateBatting(records) {
		t.PA += agg.PA
		t.AB += agg.AB
		t.H += agg.H
		t.BB += agg.BB
		t.HBP += agg.HBP
		t.SO += agg.SO
		t.SwingSO += agg.SwingSO
		t.LookingSO += agg.LookingSO
		t.RBI += agg.RBI
		t.Run += agg.Run
		t.Single += agg.Single
		t.InfieldHit += agg.InfieldHit
		t.Double += agg.Double
		t.Triple += agg.Triple
		t.HR += agg.HR
		t.SB += agg.SB
		t.Error += agg.Error
	}
	finishBatting(&t.BattingAggregate)
	return t
}

// PitchingTotals sums the outings into a team line. Games counts the
// distinct dates pitched. Each pitcher's innings sum is carried through
// ReduceInnings, and the team ERA uses that same carried total.
func PitchingTotals(records []*entities.PitchingRecord) TeamPitching {
	var t TeamPitching
	dates := make([]string, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		dates = append(dates, r.Date)
	}
	t.Games = len(distinct(dates))

	innings := make([]float64, 0)
	for _, agg := range AggregatePitching(records) {
		innings = append(innings, agg.Innings)
		t.Innings += agg.Innings
		t.Pitches += agg.Pitches
		t.Batters += agg.Batters
		t.Hits += agg.Hits
		t.HR += agg.HR
		t.SO += agg.SO
		t.BB += agg.BB
		t.HBP += agg.HBP
		t.WP += agg.WP
		t.PB += agg.PB
		t.BK += agg.BK
		t.Runs += agg.Runs
		t.ER += agg.ER
	}

	total := ReduceInnings(innings)
	t.InningsPitched = total.String()
	t.ERA = FormatERA(t.ER, total.Effective())
	return t
}
