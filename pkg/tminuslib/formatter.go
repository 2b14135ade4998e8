package tminuslib

import (
	"strconv"
	"strings"
)

// Millisecond unit constants used for duration decomposition.
const (
	// SecondMs is one second in milliseconds.
	SecondMs int64 = 1000
	// MinuteMs is one minute in milliseconds.
	MinuteMs = 60 * SecondMs
	// HourMs is one hour in milliseconds.
	HourMs = 60 * MinuteMs
	// DayMs is one day in milliseconds.
	DayMs = 24 * HourMs
	// MonthMs is one month in milliseconds. Calendar-naive: 28 days.
	MonthMs = 28 * DayMs
	// YearMs is one year in milliseconds. Calendar-naive: 365 days.
	YearMs = 365 * DayMs
)

type timeUnit struct {
	name string
	ms   int64
	// showZero forces the unit into the output even when its value is 0.
	// Only seconds set this, so a duration that decomposes to nothing
	// still renders as "0 seconds" instead of an empty string.
	showZero bool
}

// Decomposition order is strictly descending; each unit consumes its share
// before the next is computed. The divisors are deliberately calendar-naive.
var timeUnits = []timeUnit{
	{"year", YearMs, false},
	{"month", MonthMs, false},
	{"day", DayMs, false},
	{"hour", HourMs, false},
	{"minute", MinuteMs, false},
	{"second", SecondMs, true},
}

// FormatDuration renders a non-negative millisecond duration as a
// human-readable breakdown, e.g. "1 year, 2 days, 3 seconds".
// Units with a zero value are omitted, except seconds which always appear.
// Unit names are pluralized unless the value is exactly 1.
//
// The caller must guarantee ms >= 0; behavior for negative input is
// undefined.
func FormatDuration(ms int64) string {
	var b strings.Builder
	rem := ms
	for _, u := range timeUnits {
		v := rem / u.ms
		rem -= v * u.ms
		if v == 0 && !u.showZero {
			continue
		}
		b.WriteString(strconv.FormatInt(v, 10))
		b.WriteByte(' ')
		b.WriteString(u.name)
		if v != 1 {
			b.WriteByte('s')
		}
		b.WriteString(", ")
	}
	return strings.TrimSuffix(b.String(), ", ")
}
