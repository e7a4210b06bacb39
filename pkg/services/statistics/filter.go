package statistics

import (
	"sort"
	"strings"

	"github.com/fadedpez/dugout/pkg/entities"
)

// Filter narrows a record log before aggregation. Empty fields match
// everything. Month matches a "YYYY-MM" prefix of the record date;
// FromMonth and ToMonth bound the month inclusively.
type Filter struct {
	Month     string `json:"month,omitempty"`
	FromMonth string `json:"from,omitempty"`
	ToMonth   string `json:"to,omitempty"`
	Player    string `json:"player,omitempty"`
	Opponent  string `json:"opponent,omitempty"`
	Date      string `json:"date,omitempty"`
}

// IsZero reports whether the filter matches every record
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// MonthOf truncates a date to "YYYY-MM". Dates shorter than seven
// characters have no month.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

func (f Filter) matches(name, opponent, date string) bool {
	if f.Player != "" && name != f.Player {
		return false
	}
	if f.Opponent != "" && opponent != f.Opponent {
		return false
	}
	if f.Date != "" && date != f.Date {
		return false
	}
	if f.Month != "" && !strings.HasPrefix(date, f.Month) {
		return false
	}
	if f.FromMonth == "" && f.ToMonth == "" {
		return true
	}
	month := MonthOf(date)
	if month == "" {
		return false
	}
	if f.FromMonth != "" && month < f.FromMonth {
		return false
	}
	if f.ToMonth != "" && month > f.ToMonth {
		return false
	}
	return true
}

// FilterBatting returns the records matching f, keeping their order
func FilterBatting(records []*entities.BattingRecord, f Filter) []*entities.BattingRecord {
	out := make([]*entities.BattingRecord, 0, len(records))
	for _, r := range records {
		if r != nil && f.matches(r.Player, r.Opponent, r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// FilterPitching returns the outings matching f, keeping their order. The
// Player field is matched against the pitcher.
func FilterPitching(records []*entities.PitchingRecord, f Filter) []*entities.PitchingRecord {
	out := make([]*entities.PitchingRecord, 0, len(records))
	for _, r := range records {
		if r != nil && f.matches(r.Pitcher, r.Opponent, r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// BattingMonths lists the distinct months in the batting log, newest first
func BattingMonths(records []*entities.BattingRecord) []string {
	dates := make([]string, 0, len(records))
	for _, r := range records {
		if r != nil {
			dates = append(dates, r.Date)
		}
	}
	months := distinctMonths(dates)
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// PitchingMonths lists the distinct months in the pitching log, oldest first
func PitchingMonths(records []*entities.PitchingRecord) []string {
	dates := make([]string, 0, len(records))
	for _, r := range records {
		if r != nil {
			dates = append(dates, r.Date)
		}
	}
	months := distinctMonths(dates)
	sort.Strings(months)
	return months
}

// Opponents lists the distinct non-empty opponents in the batting log, sorted
func Opponents(records []*entities.BattingRecord) []string {
	values := make([]string, 0, len(records))
	for _, r := range records {
		if r != nil {
			values = append(values, r.Opponent)
		}
	}
	out := distinct(values)
	sort.Strings(out)
	return out
}

// Dates lists the distinct non-empty dates in the batting log, sorted
func Dates(records []*entities.BattingRecord) []string {
	values := make([]string, 0, len(records))
	for _, r := range records {
		if r != nil {
			values = append(values, r.Date)
		}
	}
	out := distinct(values)
	sort.Strings(out)
	return out
}

func distinctMonths(dates []string) []string {
	months := make([]string, 0, len(dates))
	for _, d := range dates {
		months = append(months, MonthOf(d))
	}
	return distinct(months)
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
