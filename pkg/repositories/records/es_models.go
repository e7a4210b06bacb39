package records

import (
	"time"

	"github.com/fadedpez/dugout/pkg/entities"
)

// ESBattingDoc is a plate appearance document in Elasticsearch
type ESBattingDoc struct {
	ID              string    `json:"id"`
	Player          string    `json:"player"`
	Opponent        string    `json:"opponent"`
	Date            string    `json:"date"`
	Month           string    `json:"month"`
	PA              string    `json:"pa"`
	AB              string    `json:"ab"`
	Result          string    `json:"result"`
	ResultLabel     string    `json:"result_label"`
	HitType         string    `json:"hit_type,omitempty"`
	RBI             string    `json:"rbi"`
	BattedDirection string    `json:"batted_direction,omitempty"`
	Run             string    `json:"run"`
	SB              string    `json:"sb"`
	Position        string    `json:"position,omitempty"`
	Error           string    `json:"error"`
	IndexedAt       time.Time `json:"indexed_at"`
}

// ESPitchingDoc is an outing document in Elasticsearch
type ESPitchingDoc struct {
	ID        string    `json:"id"`
	Pitcher   string    `json:"pitcher"`
	Opponent  string    `json:"opponent"`
	Date      string    `json:"date"`
	Month     string    `json:"month"`
	Innings   string    `json:"innings"`
	Pitches   string    `json:"pitches"`
	Batters   string    `json:"batters"`
	Hits      string    `json:"hits"`
	HR        string    `json:"hr"`
	SO        string    `json:"so"`
	BB        string    `json:"bb"`
	HBP       string    `json:"hbp"`
	WP        string    `json:"wp"`
	PB        string    `json:"pb"`
	BK        string    `json:"bk"`
	Runs      string    `json:"runs"`
	ER        string    `json:"er"`
	IndexedAt time.Time `json:"indexed_at"`
}

func toBattingDoc(rec *entities.BattingRecord, now time.Time) ESBattingDoc {
	return ESBattingDoc{
		ID:              rec.ID,
		Player:          rec.Player,
		Opponent:        rec.Opponent,
		Date:            rec.Date,
		Month:           monthOf(rec.Date),
		PA:              rec.PA,
		AB:              rec.AB,
		Result:          string(rec.Result),
		ResultLabel:     rec.Result.Label(),
		HitType:         string(rec.HitType),
		RBI:             rec.RBI,
		BattedDirection: rec.BattedDirection,
		Run:             rec.Run,
		SB:              rec.SB,
		Position:        rec.Position,
		Error:           rec.Error,
		IndexedAt:       now,
	}
}

func toPitchingDoc(rec *entities.PitchingRecord, now time.Time) ESPitchingDoc {
	return ESPitchingDoc{
		ID:        rec.ID,
		Pitcher:   rec.Pitcher,
		Opponent:  rec.Opponent,
		Date:      rec.Date,
		Month:     monthOf(rec.Date),
		Innings:   rec.Innings,
		Pitches:   rec.Pitches,
		Batters:   rec.Batters,
		Hits:      rec.Hits,
		HR:        rec.HR,
		SO:        rec.SO,
		BB:        rec.BB,
		HBP:       rec.HBP,
		WP:        rec.WP,
		PB:        rec.PB,
		BK:        rec.BK,
		Runs:      rec.Runs,
		ER:        rec.ER,
		IndexedAt: now,
	}
}

func monthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
