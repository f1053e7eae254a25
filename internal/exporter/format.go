package exporter

import (
	"strconv"
)

// formatValue formats a share for CSV output: up to six decimal places with
// trailing zeros trimmed, so 0.25 stays "0.25" and not "0.250000".
func formatValue(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// formatYear formats a year for CSV output.
func formatYear(y int) string {
	return strconv.Itoa(y)
}
