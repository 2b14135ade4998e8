package tminuslib

import (
	"errors"
	"testing"
	"time"
)

func TestParseTargetEmptyMeansUnset(t *testing.T) {
	for _, in := range []string{"", "   "} {
		got, err := ParseTarget(in)
		if err != nil {
			t.Fatalf("ParseTarget(%q) error: %v", in, err)
		}
		if got != 0 {
			t.Errorf("ParseTarget(%q) = %d, want 0", in, got)
		}
	}
}

func TestParseTargetMilliseconds(t *testing.T) {
	got, err := ParseTarget("1735689600000")
	if err != nil {
		t.Fatalf("ParseTarget error: %v", err)
	}
	if got != 1735689600000 {
		t.Errorf("ParseTarget = %d, want 1735689600000", got)
	}
}

func TestParseTargetDateTimeLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{
			"2030-06-01T12:30:00Z",
			time.Date(2030, 6, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			"2030-06-01 12:30:45",
			time.Date(2030, 6, 1, 12, 30, 45, 0, time.Local),
		},
		{
			"2030-06-01 12:30",
			time.Date(2030, 6, 1, 12, 30, 0, 0, time.Local),
		},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if err != nil {
			t.Fatalf("ParseTarget(%q) error: %v", tt.in, err)
		}
		if want := tt.want.UnixMilli(); got != want {
			t.Errorf("ParseTarget(%q) = %d, want %d", tt.in, got, want)
		}
	}
}

func TestParseTargetInvalid(t *testing.T) {
	for _, in := range []string{"not-a-date", "2030/06/01 12:30", "12:30", "tomorrow"} {
		_, err := ParseTarget(in)
		if !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("ParseTarget(%q) error = %v, want ErrInvalidTarget", in, err)
		}
	}
}
