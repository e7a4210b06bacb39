package statistics

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/dugout/pkg/entities"
)

func pa(player string, result entities.Result) *entities.BattingRecord {
	return &entities.BattingRecord{Player: player, Result: result}
}

func hit(player string, hitType entities.HitType) *entities.BattingRecord {
	return &entities.BattingRecord{Player: player, Result: entities.ResultHit, HitType: hitType}
}

func TestAggregateBatting_SingleThenWalk(t *testing.T) {
	stats := AggregateBatting([]*entities.BattingRecord{hit("山田", entities.HitTypeSingle)})
	require.Contains(t, stats, "山田")
	agg := stats["山田"]
	assert.Equal(t, 1, agg.PA)
	assert.Equal(t, 1, agg.AB)
	assert.Equal(t, 1, agg.H)
	assert.Equal(t, 1, agg.Single)

	stats = AggregateBatting([]*entities.BattingRecord{
		hit("山田", entities.HitTypeSingle),
		pa("山田", entities.ResultWalk),
	})
	agg = stats["山田"]
	assert.Equal(t, 2, agg.PA)
	assert.Equal(t, 1, agg.AB)
	assert.Equal(t, 1, agg.H)
	assert.Equal(t, 1, agg.BB)
	assert.Equal(t, 1, agg.Single)
	assert.Equal(t, "1.000", agg.AVG)
	assert.Equal(t, "1.000", agg.OBP)
}

func TestAggregateBatting_Outcomes(t *testing.T) {
	records := []*entities.BattingRecord{
		hit("a", entities.HitTypeSingle),
		hit("a", entities.HitTypeInfieldHit),
		hit("a", entities.HitTypeDouble),
		hit("a", entities.HitTypeTriple),
		hit("a", entities.HitTypeHomeRun),
		hit("a", entities.HitTypeUnknown),
		pa("a", entities.ResultWalk),
		pa("a", entities.ResultHitByPitch),
		pa("a", entities.ResultStrikeout),
		pa("a", entities.ResultSwingingStrikeout),
		pa("a", entities.ResultCalledStrikeout),
		pa("a", entities.ResultOut),
		pa("a", entities.ResultErrorReach),
	}
	agg := AggregateBatting(records)["a"]

	assert.Equal(t, 13, agg.PA)
	assert.Equal(t, 11, agg.AB, "walk and hit-by-pitch are not at-bats")
	assert.Equal(t, 6, agg.H, "a hit with no type still counts as a hit")
	assert.Equal(t, 1, agg.Single)
	assert.Equal(t, 1, agg.InfieldHit)
	assert.Equal(t, 1, agg.Double)
	assert.Equal(t, 1, agg.Triple)
	assert.Equal(t, 1, agg.HR)
	assert.Equal(t, 1, agg.BB)
	assert.Equal(t, 1, agg.HBP)
	assert.Equal(t, 3, agg.SO)
	assert.Equal(t, 1, agg.SwingSO)
	assert.Equal(t, 1, agg.LookingSO)
	assert.Equal(t, "0.545", agg.AVG)
	assert.Equal(t, "0.615", agg.OBP)
}

func TestAggregateBatting_UnknownResultCountsOnlyAsPlateAppearance(t *testing.T) {
	agg := AggregateBatting([]*entities.BattingRecord{
		{Player: "a", Result: entities.ParseResult("バント"), RBI: "1"},
	})["a"]

	assert.Equal(t, 1, agg.PA)
	assert.Equal(t, 1, agg.AB)
	assert.Equal(t, 0, agg.H+agg.BB+agg.HBP+agg.SO)
	assert.Equal(t, 1, agg.RBI)
	assert.Equal(t, "0.000", agg.AVG)
}

func TestAggregateBatting_StoredCounts(t *testing.T) {
	agg := AggregateBatting([]*entities.BattingRecord{
		{Player: "a", Result: entities.ResultOut, PA: "3", AB: "2"},
		{Player: "a", Result: entities.ResultOut, PA: "0", AB: "0"},
		{Player: "a", Result: entities.ResultOut, PA: "x", AB: ""},
		{Player: "a", Result: entities.ResultWalk, PA: "5", AB: "5"},
	})["a"]

	assert.Equal(t, 3+1+1+1, agg.PA, "pa is at least one and free passes ignore the stored value")
	assert.Equal(t, 2+0+1, agg.AB)
	assert.Equal(t, "0.000", agg.AVG)
}

func TestAggregateBatting_CountersAndPosition(t *testing.T) {
	agg := AggregateBatting([]*entities.BattingRecord{
		{Player: "a", Result: entities.ResultHit, RBI: "2", Run: "1", SB: "1", Error: "", Position: "遊"},
		{Player: "a", Result: entities.ResultOut, RBI: "abc", Run: "1", Error: "1", Position: ""},
		{Player: "a", Result: entities.ResultOut, Position: "二"},
		{Player: "a", Result: entities.ResultOut},
	})["a"]

	assert.Equal(t, 2, agg.RBI)
	assert.Equal(t, 2, agg.Run)
	assert.Equal(t, 1, agg.SB)
	assert.Equal(t, 1, agg.Error)
	assert.Equal(t, "二", agg.Position, "the last non-empty position wins")
}

func TestAggregateBatting_NoAtBats(t *testing.T) {
	agg := AggregateBatting([]*entities.BattingRecord{
		pa("a", entities.ResultWalk),
		pa("a", entities.ResultHitByPitch),
	})["a"]
	assert.Equal(t, NoData, agg.AVG)
	assert.Equal(t, "1.000", agg.OBP)

	agg = AggregateBatting([]*entities.BattingRecord{
		{Player: "b", Result: entities.ResultOut, AB: "0"},
	})["b"]
	assert.Equal(t, NoData, agg.AVG)
	assert.Equal(t, NoData, agg.OBP)
}

func TestAggregateBatting_OrderIndependent(t *testing.T) {
	var records []*entities.BattingRecord
	results := entities.Results
	for i := 0; i < 60; i++ {
		rec := &entities.BattingRecord{
			Player: []string{"山田", "佐藤", "鈴木"}[i%3],
			Result: results[i%len(results)],
			RBI:    strconv.Itoa(i % 3),
			Run:    strconv.Itoa(i % 2),
		}
		if rec.Result == entities.ResultHit {
			rec.HitType = entities.HitTypes[i%len(entities.HitTypes)]
		}
		records = append(records, rec)
	}
	want := AggregateBatting(records)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]*entities.BattingRecord(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, AggregateBatting(shuffled))
	}

	for _, agg := range want {
		for _, rate := range []string{agg.AVG, agg.OBP} {
			if rate == NoData {
				continue
			}
			v, err := strconv.ParseFloat(rate, 64)
			require.NoError(t, err)
			assert.True(t, v >= 0 && v <= 1, "rate %s out of range", rate)
		}
	}
}

func TestAggregateBatting_Empty(t *testing.T) {
	assert.Empty(t, AggregateBatting(nil))
	assert.Empty(t, AggregateBatting([]*entities.BattingRecord{nil}))
}

func TestAggregatePitching(t *testing.T) {
	stats := AggregatePitching([]*entities.PitchingRecord{
		{Pitcher: "鈴木", Innings: "6.1", ER: "3", SO: "7", Pitches: "98", Hits: "5"},
	})
	agg := stats["鈴木"]
	require.NotNil(t, agg)
	assert.Equal(t, "4.26", agg.ERA)
	assert.Equal(t, "6.1", agg.InningsPitched)
	assert.Equal(t, 7, agg.SO)
	assert.Equal(t, 98, agg.Pitches)

	stats = AggregatePitching([]*entities.PitchingRecord{
		{Pitcher: "田中", Innings: "1.2", ER: "1", BB: "x"},
		{Pitcher: "田中", Innings: "1.2", ER: "1", BB: "2"},
	})
	agg = stats["田中"]
	assert.InDelta(t, 2.4, agg.Innings, 1e-9, "the raw innings are a plain sum")
	assert.Equal(t, "3.1", agg.InningsPitched)
	assert.Equal(t, 2, agg.BB)
	// 2.4 read as thirds is 2 and 4/3 innings
	assert.Equal(t, "5.40", agg.ERA)
}

func TestAggregatePitching_InningsMatchERA(t *testing.T) {
	var recs []*entities.PitchingRecord
	for i := 0; i < 5; i++ {
		recs = append(recs, &entities.PitchingRecord{Pitcher: "佐藤", Innings: "0.2", ER: "1"})
	}

	agg := AggregatePitching(recs)["佐藤"]
	require.NotNil(t, agg)
	// five 0.2 outings sum to 1.0, which is one inning
	assert.Equal(t, "1", agg.InningsPitched)
	assert.Equal(t, "45.00", agg.ERA)

	team := PitchingTotals(recs)
	assert.Equal(t, agg.InningsPitched, team.InningsPitched)
	assert.Equal(t, agg.ERA, team.ERA)

	// two pitchers with three 0.2 outings each: 0.6 reads as two innings
	recs = nil
	for _, p := range []string{"佐藤", "伊藤"} {
		for i := 0; i < 3; i++ {
			recs = append(recs, &entities.PitchingRecord{Pitcher: p, Innings: "0.2", ER: "1"})
		}
	}
	agg = AggregatePitching(recs)["伊藤"]
	assert.Equal(t, "2", agg.InningsPitched)
	assert.Equal(t, "13.50", agg.ERA)

	team = PitchingTotals(recs)
	assert.Equal(t, "4", team.InningsPitched)
	assert.Equal(t, "13.50", team.ERA, "team ERA uses the innings the row shows")
}

func TestAggregatePitching_NoInnings(t *testing.T) {
	agg := AggregatePitching([]*entities.PitchingRecord{
		{Pitcher: "a", Innings: "", ER: "2"},
		{Pitcher: "a", Innings: "abc"},
	})["a"]
	assert.Equal(t, NoData, agg.ERA)
	assert.Equal(t, "0", agg.InningsPitched)
	assert.Equal(t, 2, agg.ER)
}

func TestReduceInnings(t *testing.T) {
	tests := []struct {
		values []float64
		want   string
		outs   int
	}{
		{[]float64{1.2, 1.2}, "3.1", 10},
		{[]float64{0.2, 0.1}, "1", 3},
		{[]float64{3}, "3", 9},
		{[]float64{6.1}, "6.1", 19},
		{[]float64{2.1, 2.1, 2.1}, "7", 21},
		{nil, "0", 0},
		{[]float64{-1, math.NaN(), 1}, "1", 3},
		{[]float64{0.4}, "1.1", 4},
	}
	for _, tt := range tests {
		total := ReduceInnings(tt.values)
		assert.Equal(t, tt.want, total.String(), "%v", tt.values)
		assert.Equal(t, tt.outs, total.Outs(), "%v", tt.values)
		assert.Less(t, total.Thirds, 3)
	}
}

func TestEffectiveInnings(t *testing.T) {
	assert.InDelta(t, 6+1.0/3, EffectiveInnings(6.1), 1e-9)
	assert.InDelta(t, 6+2.0/3, EffectiveInnings(6.2), 1e-9)
	assert.InDelta(t, 7.0, EffectiveInnings(7), 1e-9)
	assert.Equal(t, 0.0, EffectiveInnings(-2))

	whole, thirds := SplitInnings(5.2)
	assert.Equal(t, 5, whole)
	assert.Equal(t, 2, thirds)
}

func TestParseCountOrDefault(t *testing.T) {
	tests := []struct {
		raw  string
		def  int
		want int
	}{
		{"", 1, 1},
		{"  ", 0, 0},
		{"3", 0, 3},
		{" 4 ", 0, 4},
		{"2.0", 0, 2},
		{"2.5", 0, 0},
		{"-1", 1, 1},
		{"abc", 1, 1},
		{"NaN", 0, 0},
		{"Inf", 0, 0},
		{"0", 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCountOrDefault(tt.raw, tt.def), "%q", tt.raw)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, NoData, FormatRate(1, 0))
	assert.Equal(t, "0.333", FormatRate(1, 3))
	assert.Equal(t, "1.000", FormatRate(2, 2))
	assert.Equal(t, NoData, FormatERA(3, 0))
	assert.Equal(t, "0.00", FormatERA(0, 9))
	assert.Equal(t, "4.26", FormatERA(3, EffectiveInnings(6.1)))
	assert.Equal(t, 0.0, ParseInnings("-3"))
	assert.Equal(t, 5.2, ParseInnings("5.2"))
}
