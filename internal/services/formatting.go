package services

import (
	"fmt"
	"time"
)

var ratingEmoji = map[int]string{
	1:  "😴",
	2:  "🥱",
	3:  "😐",
	4:  "🙂",
	5:  "😊",
	6:  "😀",
	7:  "😃",
	8:  "😁",
	9:  "🤩",
	10: "💯",
}

// FormatClock renders a 12-hour time such as "7:05 AM".
func FormatClock(value time.Time) string {
	return value.Format("3:04 PM")
}

// FormatDuration renders "45 min", "2 hr" or "7 hr 30 min". Partial
// minutes are dropped and negative spans render as "0 min".
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	hours := int(duration / time.Hour)
	minutes := int((duration % time.Hour) / time.Minute)

	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, minutes)
	}
}

// FormatDateFull renders a date key as "Monday, April 11".
func FormatDateFull(key string, location *time.Location) string {
	day, err := ParseDateKey(key, location)
	if err != nil {
		return key
	}
	return day.Format("Monday, January 2")
}

func RatingLabel(rating int) string {
	emoji, ok := ratingEmoji[rating]
	if !ok {
		return "unrated"
	}
	return fmt.Sprintf("%d/10 %s", rating, emoji)
}
