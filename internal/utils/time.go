package utils

import (
	"fmt"
	"time"
)

// DatetimeFormat is the wire format for meal timestamps
const DatetimeFormat = "2006-01-02T15:04:05"

// ParseDatetime parses an ISO 8601 timestamp, with or without a zone offset
func ParseDatetime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DatetimeFormat, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q, expected ISO 8601", value)
}

// FormatDatetime renders a timestamp in the wire format
func FormatDatetime(t time.Time) string {
	return t.Format(DatetimeFormat)
}
