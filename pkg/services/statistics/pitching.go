package statistics

import (
	"github.com/fadedpez/dugout/pkg/entities"
)

// AggregatePitching folds outings into one line per pitcher.
//
// Innings is summed as a plain decimal. InningsPitched and ERA both read
// that one sum in thirds notation, so the displayed innings are the ones
// the ERA was computed from.
func AggregatePitching(records []*entities.PitchingRecord) map[string]*entities.PitchingAggregate {
	stats := make(map[string]*entities.PitchingAggregate)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		agg, ok := stats[rec.Pitcher]
		if !ok {
			agg = &entities.PitchingAggregate{Pitcher: rec.Pitcher}
			stats[rec.Pitcher] = agg
		}
		agg.Innings += ParseInnings(rec.Innings)
		agg.Pitches += ParseCountOrDefault(rec.Pitches, 0)
		agg.Batters += ParseCountOrDefault(rec.Batters, 0)
		agg.Hits += ParseCountOrDefault(rec.Hits, 0)
		agg.HR += ParseCountOrDefault(rec.HR, 0)
		agg.SO += ParseCountOrDefault(rec.SO, 0)
		agg.BB += ParseCountOrDefault(rec.BB, 0)
		agg.HBP += ParseCountOrDefault(rec.HBP, 0)
		agg.WP += ParseCountOrDefault(rec.WP, 0)
		agg.PB += ParseCountOrDefault(rec.PB, 0)
		agg.BK += ParseCountOrDefault(rec.BK, 0)
		agg.Runs += ParseCountOrDefault(rec.Runs, 0)
		agg.ER += ParseCountOrDefault(rec.ER, 0)
	}

	for _, agg := range stats {
		total := ReduceInnings([]float64{agg.Innings})
		agg.InningsPitched = total.String()
		agg.ERA = FormatERA(agg.ER, total.Effective())
	}
	return stats
}
