package statistics

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fadedpez/dugout/pkg/entities"
)

// BattingSortKey names a column of the batting table
type BattingSortKey string

const (
	BattingSortPlayer     BattingSortKey = "player"
	BattingSortPA         BattingSortKey = "pa"
	BattingSortAB         BattingSortKey = "ab"
	BattingSortH          BattingSortKey = "h"
	BattingSortBB         BattingSortKey = "bb"
	BattingSortHBP        BattingSortKey = "hbp"
	BattingSortSO         BattingSortKey = "so"
	BattingSortSwingSO    BattingSortKey = "swingSo"
	BattingSortLookingSO  BattingSortKey = "lookingSo"
	BattingSortRBI        BattingSortKey = "rbi"
	BattingSortRun        BattingSortKey = "run"
	BattingSortSingle     BattingSortKey = "single"
	BattingSortInfieldHit BattingSortKey = "infieldHit"
	BattingSortDouble     BattingSortKey = "double"
	BattingSortTriple     BattingSortKey = "triple"
	BattingSortHR         BattingSortKey = "hr"
	BattingSortSB         BattingSortKey = "sb"
	BattingSortError      BattingSortKey = "error"
	BattingSortAVG        BattingSortKey = "avg"
	BattingSortOBP        BattingSortKey = "obp"
)

// BattingSortKeys lists the batting columns in table order
var BattingSortKeys = []BattingSortKey{
	BattingSortPlayer, BattingSortPA, BattingSortAB, BattingSortH, BattingSortBB,
	BattingSortHBP, BattingSortSO, BattingSortSwingSO, BattingSortLookingSO,
	BattingSortRBI, BattingSortRun, BattingSortSingle, BattingSortInfieldHit,
	BattingSortDouble, BattingSortTriple, BattingSortHR, BattingSortSB,
	BattingSortError, BattingSortAVG, BattingSortOBP,
}

// PitchingSortKey names a column of the pitching table
type PitchingSortKey string

const (
	PitchingSortPitcher PitchingSortKey = "pitcher"
	PitchingSortInnings PitchingSortKey = "innings"
	PitchingSortPitches PitchingSortKey = "pitches"
	PitchingSortBatters PitchingSortKey = "batters"
	PitchingSortHits    PitchingSortKey = "hits"
	PitchingSortHR      PitchingSortKey = "hr"
	PitchingSortSO      PitchingSortKey = "so"
	PitchingSortBB      PitchingSortKey = "bb"
	PitchingSortHBP     PitchingSortKey = "hbp"
	PitchingSortWP      PitchingSortKey = "wp"
	PitchingSortPB      PitchingSortKey = "pb"
	PitchingSortBK      PitchingSortKey = "bk"
	PitchingSortRuns    PitchingSortKey = "runs"
	PitchingSortER      PitchingSortKey = "er"
	PitchingSortERA     PitchingSortKey = "era"
)

// PitchingSortKeys lists the pitching columns in table order
var PitchingSortKeys = []PitchingSortKey{
	PitchingSortPitcher, PitchingSortInnings, PitchingSortPitches, PitchingSortBatters,
	PitchingSortHits, PitchingSortHR, PitchingSortSO, PitchingSortBB, PitchingSortHBP,
	PitchingSortWP, PitchingSortPB, PitchingSortBK, PitchingSortRuns, PitchingSortER,
	PitchingSortERA,
}

// ParseBattingSortKey matches raw case-insensitively against the batting columns
func ParseBattingSortKey(raw string) (BattingSortKey, bool) {
	for _, k := range BattingSortKeys {
		if strings.EqualFold(string(k), strings.TrimSpace(raw)) {
			return k, true
		}
	}
	return "", false
}

// ParsePitchingSortKey matches raw case-insensitively against the pitching columns
func ParsePitchingSortKey(raw string) (PitchingSortKey, bool) {
	for _, k := range PitchingSortKeys {
		if strings.EqualFold(string(k), strings.TrimSpace(raw)) {
			return k, true
		}
	}
	return "", false
}

// SortState is the selected column and direction of a table
type SortState[K comparable] struct {
	Key K    `json:"key"`
	Asc bool `json:"asc"`
}

// Select picks a column. Picking the current column flips the direction,
// picking a new one sorts it descending.
func (s *SortState[K]) Select(key K) {
	if s.Key == key {
		s.Asc = !s.Asc
		return
	}
	s.Key = key
	s.Asc = false
}

// DefaultBattingSort sorts by plate appearances, most first
func DefaultBattingSort() SortState[BattingSortKey] {
	return SortState[BattingSortKey]{Key: BattingSortPA}
}

// DefaultPitchingSort sorts by innings pitched, most first
func DefaultPitchingSort() SortState[PitchingSortKey] {
	return SortState[PitchingSortKey]{Key: PitchingSortInnings}
}

// newCollator returns a Japanese collator. Collators keep scratch buffers
// and must not be shared between goroutines.
func newCollator() *collate.Collator {
	return collate.New(language.Japanese)
}

// SortPlayers returns a sorted copy of players. Players missing from stats
// sort as -1 on numeric columns, below any real value, and a "-" rate sorts
// the same way. Ties fall back to the name in ascending order.
func SortPlayers(players []string, stats map[string]*entities.BattingAggregate, state SortState[BattingSortKey]) []string {
	out := append([]string(nil), players...)
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if state.Key == BattingSortPlayer {
			c := col.CompareString(a, b)
			if state.Asc {
				return c < 0
			}
			return c > 0
		}
		va, vb := battingValue(stats[a], state.Key), battingValue(stats[b], state.Key)
		if va == vb {
			return col.CompareString(a, b) < 0
		}
		if state.Asc {
			return va < vb
		}
		return va > vb
	})
	return out
}

// SortPitchers returns a sorted copy of pitchers, following the same rules
// as SortPlayers. Innings compare as effective innings so 6.2 ranks above
// 6.1 and below 7.
func SortPitchers(pitchers []string, stats map[string]*entities.PitchingAggregate, state SortState[PitchingSortKey]) []string {
	out := append([]string(nil), pitchers...)
	col := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if state.Key == PitchingSortPitcher {
			c := col.CompareString(a, b)
			if state.Asc {
				return c < 0
			}
			return c > 0
		}
		va, vb := pitchingValue(stats[a], state.Key), pitchingValue(stats[b], state.Key)
		if va == vb {
			return col.CompareString(a, b) < 0
		}
		if state.Asc {
			return va < vb
		}
		return va > vb
	})
	return out
}

func battingValue(agg *entities.BattingAggregate, key BattingSortKey) float64 {
	if agg == nil {
		return -1
	}
	switch key {
	case BattingSortPA:
		return float64(agg.PA)
	case BattingSortAB:
		return float64(agg.AB)
	case BattingSortH:
		return float64(agg.H)
	case BattingSortBB:
		return float64(agg.BB)
	case BattingSortHBP:
		return float64(agg.HBP)
	case BattingSortSO:
		return float64(agg.SO)
	case BattingSortSwingSO:
		return float64(agg.SwingSO)
	case BattingSortLookingSO:
		return float64(agg.LookingSO)
	case BattingSortRBI:
		return float64(agg.RBI)
	case BattingSortRun:
		return float64(agg.Run)
	case BattingSortSingle:
		return float64(agg.Single)
	case BattingSortInfieldHit:
		return float64(agg.InfieldHit)
	case BattingSortDouble:
		return float64(agg.Double)
	case BattingSortTriple:
		return float64(agg.Triple)
	case BattingSortHR:
		return float64(agg.HR)
	case BattingSortSB:
		return float64(agg.SB)
	case BattingSortError:
		return float64(agg.Error)
	case BattingSortAVG:
		return rateValue(agg.AVG)
	case BattingSortOBP:
		return rateValue(agg.OBP)
	}
	return 0
}

func pitchingValue(agg *entities.PitchingAggregate, key PitchingSortKey) float64 {
	if agg == nil {
		return -1
	}
	switch key {
	case PitchingSortInnings:
		return EffectiveInnings(agg.Innings)
	case PitchingSortPitches:
		return float64(agg.Pitches)
	case PitchingSortBatters:
		return float64(agg.Batters)
	case PitchingSortHits:
		return float64(agg.Hits)
	case PitchingSortHR:
		return float64(agg.HR)
	case PitchingSortSO:
		return float64(agg.SO)
	case PitchingSortBB:
		return float64(agg.BB)
	case PitchingSortHBP:
		return float64(agg.HBP)
	case PitchingSortWP:
		return float64(agg.WP)
	case PitchingSortPB:
		return float64(agg.PB)
	case PitchingSortBK:
		return float64(agg.BK)
	case PitchingSortRuns:
		return float64(agg.Runs)
	case PitchingSortER:
		return float64(agg.ER)
	case PitchingSortERA:
		return rateValue(agg.ERA)
	}
	return 0
}
