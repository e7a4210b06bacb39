package statistics

import (
	"github.com/fadedpez/dugout/pkg/entities"
)

// NoData is the rate placeholder for a zero denominator
const NoData = entities.NoData

// AggregateBatting folds plate appearances into one line per player.
//
// Every counter is order independent. Position is not: the last non-empty
// position in input order wins. Malformed counts degrade to their defaults
// and unknown results are counted as plate appearances without being
// classified, so the function never fails.
func AggregateBatting(records []*entities.BattingRecord) map[string]*entities.BattingAggregate {
	stats := make(map[string]*entities.BattingAggregate)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		agg, ok := stats[rec.Player]
		if !ok {
			agg = &entities.BattingAggregate{Player: rec.Player}
			stats[rec.Player] = agg
		}
		addPlateAppearance(agg, rec)
	}

	for _, agg := range stats {
		finishBatting(agg)
	}
	return stats
}

func addPlateAppearance(agg *entities.BattingAggregate, rec *entities.BattingRecord) {
	// Free passes are always one PA and never an AB, whatever was stored.
	// Other outcomes honour the stored counts so imported corrections stick.
	if rec.Result.IsFreePass() {
		agg.PA++
	} else {
		agg.PA += max(1, ParseCountOrDefault(rec.PA, 1))
		agg.AB += ParseCountOrDefault(rec.AB, 1)
	}

	switch rec.Result {
	case entities.ResultHit:
		agg.H++
		switch rec.HitType {
		case entities.HitTypeSingle:
			agg.Single++
		case entities.HitTypeInfieldHit:
			agg.InfieldHit++
		case entities.HitTypeDouble:
			agg.Double++
		case entities.HitTypeTriple:
			agg.Triple++
		case entities.HitTypeHomeRun:
			agg.HR++
		case entities.HitTypeUnknown:
		}
	case entities.ResultWalk:
		agg.BB++
	case entities.ResultHitByPitch:
		agg.HBP++
	case entities.ResultStrikeout:
		agg.SO++
	case entities.ResultSwingingStrikeout:
		agg.SO++
		agg.SwingSO++
	case entities.ResultCalledStrikeout:
		agg.SO++
		agg.LookingSO++
	case entities.ResultOut, entities.ResultErrorReach, entities.ResultUnknown:
	}

	agg.RBI += ParseCountOrDefault(rec.RBI, 0)
	agg.Run += ParseCountOrDefault(rec.Run, 0)
	agg.SB += ParseCountOrDefault(rec.SB, 0)
	agg.Error += ParseCountOrDefault(rec.Error, 0)

	if rec.Position != "" {
		agg.Position = rec.Position
	}
}

func finishBatting(agg *entities.BattingAggregate) {
	agg.AVG = FormatRate(agg.H, agg.AB)
	agg.OBP = FormatRate(agg.TimesOnBase(), agg.OnBaseDenominator())
}
