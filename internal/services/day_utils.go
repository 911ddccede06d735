package services

import (
	"strings"
	"time"
)

const DateKeyLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DateKey renders the local calendar date of value. Entries are
// partitioned by this key, never by the UTC date.
func DateKey(value time.Time, location *time.Location) string {
	if value.IsZero() {
		return ""
	}
	return DateAtLocation(value, location).Format(DateKeyLayout)
}

func ParseDateKey(raw string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(DateKeyLayout, strings.TrimSpace(raw), location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// NoonAtLocation places a date key at local noon so chart points never
// drift to a neighbouring day when rendered in another offset.
func NoonAtLocation(key string, location *time.Location) (time.Time, bool) {
	day, err := ParseDateKey(key, location)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(12 * time.Hour), true
}
