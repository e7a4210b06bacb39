package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fadedpez/dugout/pkg/entities"
)

func TestSortState_Select(t *testing.T) {
	state := DefaultBattingSort()
	assert.Equal(t, BattingSortPA, state.Key)
	assert.False(t, state.Asc)

	state.Select(BattingSortPA)
	assert.True(t, state.Asc, "selecting the current column flips it")
	state.Select(BattingSortPA)
	assert.False(t, state.Asc)

	state.Select(BattingSortPA)
	state.Select(BattingSortAVG)
	assert.Equal(t, BattingSortAVG, state.Key)
	assert.False(t, state.Asc, "a new column starts descending")

	pitching := DefaultPitchingSort()
	assert.Equal(t, PitchingSortInnings, pitching.Key)
	pitching.Select(PitchingSortERA)
	pitching.Select(PitchingSortERA)
	assert.True(t, pitching.Asc)
}

func TestParseSortKeys(t *testing.T) {
	k, ok := ParseBattingSortKey(" AVG ")
	assert.True(t, ok)
	assert.Equal(t, BattingSortAVG, k)

	_, ok = ParseBattingSortKey("era")
	assert.False(t, ok)

	p, ok := ParsePitchingSortKey("era")
	assert.True(t, ok)
	assert.Equal(t, PitchingSortERA, p)
}

func TestSortPlayers_NoDataSortsLast(t *testing.T) {
	stats := AggregateBatting([]*entities.BattingRecord{
		pa("low", entities.ResultOut),
		hit("low", entities.HitTypeSingle),
		pa("low", entities.ResultOut),
		pa("low", entities.ResultOut),
		hit("high", entities.HitTypeSingle),
		pa("high", entities.ResultOut),
		pa("walker", entities.ResultWalk),
	})
	players := []string{"walker", "absent", "low", "high"}

	state := SortState[BattingSortKey]{Key: BattingSortAVG}
	assert.Equal(t, []string{"high", "low", "absent", "walker"}, SortPlayers(players, stats, state))

	state.Asc = true
	got := SortPlayers(players, stats, state)
	assert.Equal(t, []string{"low", "high"}, got[2:], "real averages rank above no data either way")
	assert.Equal(t, []string{"absent", "walker"}, got[:2], "ties break by name")

	assert.Equal(t, []string{"walker", "absent", "low", "high"}, players, "the input is not reordered")
}

func TestSortPlayers_MissingAggregateBelowZero(t *testing.T) {
	stats := AggregateBatting([]*entities.BattingRecord{
		pa("zero", entities.ResultOut),
	})

	got := SortPlayers([]string{"absent", "zero"}, stats, SortState[BattingSortKey]{Key: BattingSortH, Asc: true})
	assert.Equal(t, []string{"absent", "zero"}, got)

	got = SortPlayers([]string{"absent", "zero"}, stats, SortState[BattingSortKey]{Key: BattingSortH})
	assert.Equal(t, []string{"zero", "absent"}, got)
}

func TestSortPlayers_ByName(t *testing.T) {
	players := []string{"さとう", "あべ", "かとう"}
	got := SortPlayers(players, nil, SortState[BattingSortKey]{Key: BattingSortPlayer, Asc: true})
	assert.Equal(t, []string{"あべ", "かとう", "さとう"}, got)

	got = SortPlayers(players, nil, SortState[BattingSortKey]{Key: BattingSortPlayer})
	assert.Equal(t, []string{"さとう", "かとう", "あべ"}, got)
}

func TestSortPitchers(t *testing.T) {
	stats := AggregatePitching([]*entities.PitchingRecord{
		{Pitcher: "a", Innings: "6.2", ER: "2"},
		{Pitcher: "b", Innings: "7"},
		{Pitcher: "c", Innings: "6.1", ER: "1"},
		{Pitcher: "d", Innings: "0", ER: "1"},
	})
	pitchers := []string{"a", "b", "c", "d", "e"}

	got := SortPitchers(pitchers, stats, DefaultPitchingSort())
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, got)

	got = SortPitchers(pitchers, stats, SortState[PitchingSortKey]{Key: PitchingSortERA, Asc: true})
	// d has no ERA and e has no line at all; both sort as -1 and tie by name
	assert.Equal(t, []string{"d", "e", "b", "c", "a"}, got)

	got = SortPitchers(pitchers, stats, SortState[PitchingSortKey]{Key: PitchingSortER})
	assert.Equal(t, []string{"a", "c", "d", "b", "e"}, got)
}
