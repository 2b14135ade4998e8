package tminuslib

import (
	"strconv"
	"strings"
	"time"
)

// Accepted date/time layouts for target input, tried in order.
// Non-RFC3339 layouts are interpreted in local time.
var targetLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTarget converts raw target input into a millisecond timestamp.
// Empty input means unset and maps to 0. A decimal integer is used as a
// millisecond timestamp as-is. Anything else must parse as one of the
// accepted date/time layouts, otherwise ErrInvalidTarget is returned.
func ParseTarget(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return ms, nil
	}
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, ErrInvalidTarget
}
