package statistics

import (
	"math"
	"strconv"
)

// InningsTotal is a count of innings pitched in whole innings plus thirds.
// After Normalize, Thirds is always 0, 1 or 2.
type InningsTotal struct {
	Whole  int `json:"whole"`
	Thirds int `json:"thirds"`
}

// SplitInnings splits a thirds-notation value into its whole innings and
// its fraction digit. The digit is read as a count of thirds, so 1.2 is
// one inning and two outs. Digits above 2 are not rejected: they carry
// like any other thirds (0.4 is one and one-third innings).
func SplitInnings(v float64) (whole, thirds int) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0
	}
	w := math.Floor(v)
	return int(w), int(math.Round((v - w) * 10))
}

// EffectiveInnings converts a thirds-notation value into true innings
// (6.1 becomes 6.333...).
func EffectiveInnings(v float64) float64 {
	whole, thirds := SplitInnings(v)
	return float64(whole) + float64(thirds)/3
}

// Add accumulates one thirds-notation value without carrying
func (t *InningsTotal) Add(v float64) {
	whole, thirds := SplitInnings(v)
	t.Whole += whole
	t.Thirds += thirds
}

// Normalize carries every three thirds into a whole inning
func (t *InningsTotal) Normalize() {
	t.Whole += t.Thirds / 3
	t.Thirds = t.Thirds % 3
}

// Effective returns the total as true innings
func (t InningsTotal) Effective() float64 {
	return float64(t.Whole) + float64(t.Thirds)/3
}

// Outs returns the total as a count of outs recorded
func (t InningsTotal) Outs() int {
	return t.Whole*3 + t.Thirds
}

// String renders the total in thirds notation: "7", "7.1" or "7.2"
func (t InningsTotal) String() string {
	t.Normalize()
	s := strconv.Itoa(t.Whole)
	switch t.Thirds {
	case 1:
		s += ".1"
	case 2:
		s += ".2"
	}
	return s
}

// ReduceInnings sums thirds-notation values. Whole innings and thirds are
// accumulated separately and carried once at the end, so 1.2 + 1.2 is 3.1
// rather than the decimal 2.4.
func ReduceInnings(values []float64) InningsTotal {
	var total InningsTotal
	for _, v := range values {
		total.Add(v)
	}
	total.Normalize()
	return total
}
