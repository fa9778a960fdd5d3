package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberLocaleFormats(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"1.234.567", 1234567},
		{"1.234", 1.234},
		{"1,5", 1.5},
		{"1,234,567", 1234567},
		{"42", 42},
		{" 42 ", 42},
		{"1 234", 1234},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseNumber(tc.in), "input %q", tc.in)
	}
}

func TestParseCountNeverNegative(t *testing.T) {
	assert.Equal(t, 0, parseCount("-50"))
	assert.Equal(t, 0, parseCount("not a number"))
	assert.Equal(t, 1234, parseCount("1.234,0"))
	assert.Equal(t, 120, parseCount("120"))
}

func TestParseTimestampDayFirst(t *testing.T) {
	ts := parseTimestamp("07.11.2024 18:30")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 11, 7, 18, 30, 0, 0, time.UTC), *ts)

	ts = parseTimestamp("07.11.2024")
	require.NotNil(t, ts)
	assert.Equal(t, 7, ts.Day())
	assert.Equal(t, time.November, ts.Month())

	ts = parseTimestamp("2024-11-07 08:15:00")
	require.NotNil(t, ts)
	assert.Equal(t, 8, ts.Hour())
}

func TestParseTimestampUnparsableIsNil(t *testing.T) {
	assert.Nil(t, parseTimestamp(""))
	assert.Nil(t, parseTimestamp("not a date"))
	assert.Nil(t, parseTimestamp("99.99.2024"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "", cleanText("nan"))
	assert.Equal(t, "", cleanText("NaN"))
	assert.Equal(t, "", cleanText("-"))
	assert.Equal(t, "", cleanText("  "))
	assert.Equal(t, "merhaba", cleanText("  merhaba "))
}
