// Package buckets derives fixed categorical time buckets from post
// timestamps. The bucket domains are closed sets: consumers grouping over
// them iterate the full domain so empty buckets report zero instead of
// silently disappearing.
package buckets

import (
	"fmt"
	"time"
)

// HourLabels is the fixed 4-hour interval domain, in display order.
var HourLabels = []string{
	"00-04:00",
	"04-08:00",
	"08-12:00",
	"12-16:00",
	"16-20:00",
	"20-24:00",
}

// HourBucketIndex maps an hour of day (0-23) to its 4-hour interval index.
func HourBucketIndex(hour int) int {
	if hour < 0 {
		return 0
	}
	if hour > 23 {
		return len(HourLabels) - 1
	}
	return hour / 4
}

// HourBucket returns the 4-hour interval label for a timestamp.
func HourBucket(t time.Time) string {
	return HourLabels[HourBucketIndex(t.Hour())]
}

// DayIndex maps a timestamp to its Monday-first weekday index (0-6).
func DayIndex(t time.Time) int {
	// time.Weekday is Sunday-first
	return (int(t.Weekday()) + 6) % 7
}

// DaysInWeek is the size of the weekday domain.
const DaysInWeek = 7

// Locale carries the display names used for chart labels. Bucket domains
// themselves are locale-independent.
type Locale struct {
	Days   [7]string  // Monday first
	Months [12]string // January first
}

// Turkish is the display locale of the source exports.
var Turkish = Locale{
	Days:   [7]string{"Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi", "Pazar"},
	Months: [12]string{"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"},
}

// DayName returns the localized display name for a Monday-first day index.
func (l Locale) DayName(idx int) string {
	if idx < 0 || idx >= DaysInWeek {
		return ""
	}
	return l.Days[idx]
}

// DayNames returns the full ordered weekday label domain.
func (l Locale) DayNames() []string {
	out := make([]string, DaysInWeek)
	copy(out, l.Days[:])
	return out
}

// FormatDayMonth renders a date as "7 Kasım" style day-month label.
func (l Locale) FormatDayMonth(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), l.Months[int(t.Month())-1])
}
