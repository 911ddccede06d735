package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Meridiem string

const (
	MeridiemAM Meridiem = "AM"
	MeridiemPM Meridiem = "PM"
)

const (
	maxAmbiguousSpan = 16 * time.Hour
	maxIntervalSpan  = 24 * time.Hour
)

func ParseMeridiem(raw string) (Meridiem, error) {
	switch Meridiem(strings.ToUpper(strings.TrimSpace(raw))) {
	case MeridiemAM:
		return MeridiemAM, nil
	case MeridiemPM:
		return MeridiemPM, nil
	default:
		return "", fmt.Errorf("%w: meridiem %q", ErrInvalidInput, raw)
	}
}

func (meridiem *Meridiem) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseMeridiem(raw)
	if err != nil {
		return err
	}
	*meridiem = parsed
	return nil
}

// ClockTime is a 12-hour picker value.
type ClockTime struct {
	Hour     int      `json:"hour" validate:"gte=1,lte=12"`
	Minute   int      `json:"minute" validate:"oneof=0 15 30 45"`
	Meridiem Meridiem `json:"meridiem" validate:"oneof=AM PM"`
}

func (clock ClockTime) Hour24() int {
	hour := clock.Hour % 12
	if clock.Meridiem == MeridiemPM {
		hour += 12
	}
	return hour
}

// On keeps the calendar date of reference and replaces its time of day.
func (clock ClockTime) On(reference time.Time) time.Time {
	year, month, day := reference.Date()
	return time.Date(year, month, day, clock.Hour24(), clock.Minute, 0, 0, reference.Location())
}

func (clock ClockTime) String() string {
	return fmt.Sprintf("%d:%02d %s", clock.Hour, clock.Minute, clock.Meridiem)
}

func ValidateClockTime(clock ClockTime) error {
	if err := inputValidator.Struct(clock); err != nil {
		return fmt.Errorf("%w: clock time %s", ErrInvalidInput, clock)
	}
	return nil
}

// ClockTimeFromInstant prefills a picker from a stored instant. Minutes
// are rounded down to the quarter hour.
func ClockTimeFromInstant(value time.Time) ClockTime {
	hour24 := value.Hour()
	meridiem := MeridiemAM
	if hour24 >= 12 {
		meridiem = MeridiemPM
	}
	hour := hour24 % 12
	if hour == 0 {
		hour = 12
	}
	return ClockTime{
		Hour:     hour,
		Minute:   value.Minute() / 15 * 15,
		Meridiem: meridiem,
	}
}

// ResolveClockRange turns two picker values into instants on the
// reference date. An end earlier than the start is read as an overnight
// span and moved to the next day, except for AM-to-AM pairs that would
// then exceed 16 hours. A span over 24 hours is clamped to 16 hours.
func ResolveClockRange(start ClockTime, end ClockTime, reference time.Time) (time.Time, time.Time) {
	startInstant := start.On(reference)
	endInstant := end.On(reference)

	if endInstant.Before(startInstant) {
		candidate := endInstant.AddDate(0, 0, 1).Sub(startInstant)
		bothAM := start.Meridiem == MeridiemAM && end.Meridiem == MeridiemAM
		switch {
		case bothAM && candidate > maxAmbiguousSpan:
		case maxIntervalSpan-startInstant.Sub(endInstant) <= maxIntervalSpan:
			endInstant = endInstant.AddDate(0, 0, 1)
		}
	}

	if endInstant.Sub(startInstant) > maxIntervalSpan {
		endInstant = startInstant.Add(maxAmbiguousSpan)
	}
	return startInstant, endInstant
}
