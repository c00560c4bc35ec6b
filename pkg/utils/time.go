package utils

import (
	"fmt"
	"time"
)

// ParseUserTime parses a time string that can be either RFC3339 or YYYY-MM-DD format.
// For YYYY-MM-DD format, if isEndTime is true, it will set the time to end of day (23:59:59).
func ParseUserTime(timeStr string, isEndTime bool) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02", timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format, expected RFC3339 or YYYY-MM-DD, got %s", timeStr)
	}

	if isEndTime {
		t = t.Add(24*time.Hour - time.Second)
	}

	return t, nil
}

// WindowStart truncates t (in UTC) to the nearest lower multiple of windowMinutes.
// All callers inside the same window compute the same start and therefore share
// one counter row.
func WindowStart(t time.Time, windowMinutes int) time.Time {
	return t.UTC().Truncate(time.Duration(windowMinutes) * time.Minute)
}
