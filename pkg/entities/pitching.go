package entities

// PitchingRecord is one pitching outing. Innings uses the thirds notation
// where .1 is one out and .2 is two outs.
type PitchingRecord struct {
	ID       string `json:"id"`
	Pitcher  string `json:"pitcher"`
	Opponent string `json:"opponent"`
	Date     string `json:"date"`
	Innings  string `json:"innings"`
	Pitches  string `json:"pitches"`
	Batters  string `json:"batters"`
	Hits     string `json:"hits"`
	HR       string `json:"hr"`
	SO       string `json:"so"`
	BB       string `json:"bb"`
	HBP      string `json:"hbp"`
	WP       string `json:"wp"`
	PB       string `json:"pb"`
	BK       string `json:"bk"`
	Runs     string `json:"runs"`
	ER       string `json:"er"`
}

// Clone returns a copy of the record
func (r *PitchingRecord) Clone() *PitchingRecord {
	c := *r
	return &c
}

// RosterKind selects which name list a roster operation applies to
type RosterKind string

const (
	RosterBatters  RosterKind = "batters"
	RosterPitchers RosterKind = "pitchers"
)

// IsValid reports whether k names a known roster
func (k RosterKind) IsValid() bool {
	return k == RosterBatters || k == RosterPitchers
}

// DefaultBatters seeds the batter roster before the team saves its own
var DefaultBatters = []string{
	"山田",
	"佐藤",
	"鈴木",
	"田中",
}
