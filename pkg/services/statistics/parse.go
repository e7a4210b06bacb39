package statistics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseCountOrDefault coerces a raw count field. Empty, non-numeric,
// fractional, negative or non-finite input yields def.
func ParseCountOrDefault(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return def
		}
		return n
	}
	// Spreadsheets like to write "2.0"
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return def
	}
	return int(f)
}

// ParseInnings coerces a raw innings field in thirds notation. Empty,
// non-numeric, negative or non-finite input yields 0.
func ParseInnings(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// FormatRate renders num/den to three decimals, or NoData when den is 0
func FormatRate(num, den int) string {
	if den <= 0 {
		return NoData
	}
	return strconv.FormatFloat(float64(num)/float64(den), 'f', 3, 64)
}

// FormatERA renders er*9/innings to two decimals, or NoData when the
// effective innings are 0
func FormatERA(er int, effectiveInnings float64) string {
	if effectiveInnings <= 0 {
		return NoData
	}
	return fmt.Sprintf("%.2f", float64(er)*9/effectiveInnings)
}

// rateValue orders a formatted rate; NoData sorts below every real value
func rateValue(s string) float64 {
	if s == NoData || s == "" {
		return -1
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return -1
	}
	return f
}
