package dataset

import (
	"strconv"
	"strings"
	"time"
)

// parseNumber coerces a locale-formatted numeric string to a float64.
// Thousands separators are stripped and a decimal comma becomes a decimal
// point, so "1.234,56" yields 1234.56. Unparsable values yield 0.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	hasComma := strings.Contains(s, ",")
	dots := strings.Count(s, ".")

	switch {
	case hasComma && dots > 0:
		// Dots group thousands, the comma is the decimal separator
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		if strings.Count(s, ",") > 1 {
			// Multiple commas can only be thousands grouping
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCount coerces a numeric string to a non-negative integer count.
func parseCount(s string) int {
	v := parseNumber(s)
	if v <= 0 {
		return 0
	}
	return int(v)
}

// timestampLayouts is tried in order; day-first dotted forms come before
// the ISO forms because that is what the exports predominantly contain.
var timestampLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02.01.2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// parseTimestamp parses a source timestamp cell. Unparsable values yield
// nil; the record itself is kept.
func parseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// cleanText normalizes free-text cells: surrounding whitespace is
// trimmed and export placeholder values become the empty string.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "none", "null", "-":
		return ""
	}
	return s
}
