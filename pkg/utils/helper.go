package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// SlotStart combines a slot's calendar date and start time in loc.
func SlotStart(date, startTime string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+startTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot start %s %s: %w", date, startTime, err)
	}
	return t, nil
}

// MinutesOfDay parses an HH:MM string into minutes since midnight.
func MinutesOfDay(value string) (int, error) {
	t, err := time.Parse(TimeLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// TrimToNil returns nil for blank strings so optional columns store NULL.
func TrimToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
