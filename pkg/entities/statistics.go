package entities

// NoData is shown in place of a rate whose denominator is zero
const NoData = "-"

// BattingAggregate holds a player's cumulative batting line. It is always
// derived from the record log and never stored.
type BattingAggregate struct {
	Player     string `json:"player"`
	PA         int    `json:"pa"`
	AB         int    `json:"ab"`
	H          int    `json:"h"`
	BB         int    `json:"bb"`
	HBP        int    `json:"hbp"`
	SO         int    `json:"so"`
	SwingSO    int    `json:"swingSo"`
	LookingSO  int    `json:"lookingSo"`
	RBI        int    `json:"rbi"`
	Run        int    `json:"run"`
	Single     int    `json:"single"`
	InfieldHit int    `json:"infieldHit"`
	Double     int    `json:"double"`
	Triple     int    `json:"triple"`
	HR         int    `json:"hr"`
	SB         int    `json:"sb"`
	Error      int    `json:"error"`
	Position   string `json:"position"`
	AVG        string `json:"avg"`
	OBP        string `json:"obp"`
}

// OnBaseDenominator returns AB + BB + HBP
func (a *BattingAggregate) OnBaseDenominator() int {
	return a.AB + a.BB + a.HBP
}

// TimesOnBase returns H + BB + HBP
func (a *BattingAggregate) TimesOnBase() int {
	return a.H + a.BB + a.HBP
}

// PitchingAggregate holds a pitcher's cumulative line. Innings is the plain
// decimal sum of the outings; InningsPitched is the same total with thirds
// carried into whole innings, and ERA is computed from that carried total.
type PitchingAggregate struct {
	Pitcher        string  `json:"pitcher"`
	Innings        float64 `json:"innings"`
	InningsPitched string  `json:"inningsPitched"`
	Pitches        int     `json:"pitches"`
	Batters        int     `json:"batters"`
	Hits           int     `json:"hits"`
	HR             int     `json:"hr"`
	SO             int     `json:"so"`
	BB             int     `json:"bb"`
	HBP            int     `json:"hbp"`
	WP             int     `json:"wp"`
	PB             int     `json:"pb"`
	BK             int     `json:"bk"`
	Runs           int     `json:"runs"`
	ER             int     `json:"er"`
	ERA            string  `json:"era"`
}
