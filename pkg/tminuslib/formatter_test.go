package tminuslib

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"zero", 0, "0 seconds"},
		{"sub second", 999, "0 seconds"},
		{"one second", 1000, "1 second"},
		{"two seconds", 2000, "2 seconds"},
		{"minute and second", 61000, "1 minute, 1 second"},
		{"just under a minute", 59999, "59 seconds"},
		{"exact minute keeps zero seconds", MinuteMs, "1 minute, 0 seconds"},
		{"exact hour", HourMs, "1 hour, 0 seconds"},
		{"hour skips zero minutes", HourMs + 5*SecondMs, "1 hour, 5 seconds"},
		{"exact month", MonthMs, "1 month, 0 seconds"},
		{"year with days", YearMs + 2*DayMs + 3*SecondMs, "1 year, 2 days, 3 seconds"},
		{
			"full chain singular",
			YearMs + MonthMs + DayMs + HourMs + MinuteMs + SecondMs,
			"1 year, 1 month, 1 day, 1 hour, 1 minute, 1 second",
		},
		{
			"full chain plural",
			2*YearMs + 3*MonthMs + 4*DayMs + 5*HourMs + 6*MinuteMs + 7*SecondMs,
			"2 years, 3 months, 4 days, 5 hours, 6 minutes, 7 seconds",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.ms); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestFormatDurationLeapYearStaysNaive(t *testing.T) {
	// 366 days overflows the fixed 365-day year into an extra day.
	got := FormatDuration(366 * DayMs)
	want := "1 year, 1 day, 0 seconds"
	if got != want {
		t.Errorf("FormatDuration(366 days) = %q, want %q", got, want)
	}
}

func TestFormatDurationMonthIsTwentyEightDays(t *testing.T) {
	got := FormatDuration(30 * DayMs)
	want := "1 month, 2 days, 0 seconds"
	if got != want {
		t.Errorf("FormatDuration(30 days) = %q, want %q", got, want)
	}
}
