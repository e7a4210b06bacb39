package entities

import "strings"

// Result is the outcome of a single plate appearance
type Result string

// Plate appearance outcomes
const (
	ResultUnknown           Result = ""
	ResultHit               Result = "HIT"
	ResultWalk              Result = "WALK"
	ResultHitByPitch        Result = "HIT_BY_PITCH"
	ResultSwingingStrikeout Result = "SWINGING_STRIKEOUT"
	ResultCalledStrikeout   Result = "CALLED_STRIKEOUT"
	ResultStrikeout         Result = "STRIKEOUT"
	ResultOut               Result = "OUT"
	ResultErrorReach        Result = "ERROR_REACH"
)

// Results lists every known outcome in form order
var Results = []Result{
	ResultHit,
	ResultWalk,
	ResultHitByPitch,
	ResultSwingingStrikeout,
	ResultCalledStrikeout,
	ResultStrikeout,
	ResultOut,
	ResultErrorReach,
}

var resultLabels = map[Result]string{
	ResultHit:               "ヒット",
	ResultWalk:              "四球",
	ResultHitByPitch:        "死球",
	ResultSwingingStrikeout: "空振三振",
	ResultCalledStrikeout:   "見逃三振",
	ResultStrikeout:         "三振",
	ResultOut:               "アウト",
	ResultErrorReach:        "エラー出塁",
}

// String returns the canonical code of the result
func (r Result) String() string {
	return string(r)
}

// Label returns the team's display label, or "" for an unknown result
func (r Result) Label() string {
	return resultLabels[r]
}

// IsKnown reports whether r is one of the enumerated outcomes
func (r Result) IsKnown() bool {
	_, ok := resultLabels[r]
	return ok
}

// IsFreePass reports whether the outcome is a walk or hit-by-pitch.
// Free passes count one plate appearance and no at-bat.
func (r Result) IsFreePass() bool {
	return r == ResultWalk || r == ResultHitByPitch
}

// ParseResult maps a code or label to a Result. Anything unrecognised
// becomes ResultUnknown, which the aggregators count but never classify.
func ParseResult(raw string) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ResultUnknown
	}
	for r, label := range resultLabels {
		if raw == label || strings.EqualFold(raw, string(r)) {
			return r
		}
	}
	return ResultUnknown
}

// HitType classifies a hit
type HitType string

// Hit types
const (
	HitTypeUnknown    HitType = ""
	HitTypeSingle     HitType = "SINGLE"
	HitTypeInfieldHit HitType = "INFIELD_HIT"
	HitTypeDouble     HitType = "DOUBLE"
	HitTypeTriple     HitType = "TRIPLE"
	HitTypeHomeRun    HitType = "HOME_RUN"
)

// HitTypes lists every known hit type in form order
var HitTypes = []HitType{
	HitTypeSingle,
	HitTypeInfieldHit,
	HitTypeDouble,
	HitTypeTriple,
	HitTypeHomeRun,
}

var hitTypeLabels = map[HitType]string{
	HitTypeSingle:     "単打",
	HitTypeInfieldHit: "内野安打",
	HitTypeDouble:     "二塁打",
	HitTypeTriple:     "三塁打",
	HitTypeHomeRun:    "本塁打",
}

// String returns the canonical code of the hit type
func (h HitType) String() string {
	return string(h)
}

// Label returns the team's display label, or "" for an unknown hit type
func (h HitType) Label() string {
	return hitTypeLabels[h]
}

// ParseHitType maps a code or label to a HitType
func ParseHitType(raw string) HitType {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return HitTypeUnknown
	}
	for h, label := range hitTypeLabels {
		if raw == label || strings.EqualFold(raw, string(h)) {
			return h
		}
	}
	return HitTypeUnknown
}

// BattingRecord is one plate appearance as entered on the form or read
// from an import. Count fields hold the raw text; the statistics package
// coerces them.
type BattingRecord struct {
	ID              string  `json:"id"`
	Player          string  `json:"player"`
	Opponent        string  `json:"opponent"`
	Date            string  `json:"date"`
	PA              string  `json:"pa"`
	AB              string  `json:"ab"`
	Result          Result  `json:"result"`
	HitType         HitType `json:"hitType"`
	RBI             string  `json:"rbi"`
	BattedDirection string  `json:"battedDirection"`
	Run             string  `json:"run"`
	SB              string  `json:"sb"`
	Position        string  `json:"position"`
	Error           string  `json:"error"`
}

// Clone returns a copy of the record
func (r *BattingRecord) Clone() *BattingRecord {
	c := *r
	return &c
}
