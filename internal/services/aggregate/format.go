package aggregate

import (
	"math"
	"strconv"
	"strings"
)

const NotAvailable = "N/A"

// FormatNumber prints v in its shortest form with at least one decimal,
// e.g. 13 -> "13.0", 1.25 -> "1.25".
func FormatNumber(v float64) string {
	if v == 0 {
		// also folds -0
		return "0.0"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatTrend renders a trend value: "N/A" when absent, a leading "+" when
// positive.
func FormatTrend(trend *float64) string {
	if trend == nil || math.IsNaN(*trend) {
		return NotAvailable
	}

	v := *trend
	if v > 0 {
		return "+" + FormatNumber(v)
	}
	return FormatNumber(v)
}
