package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

// Collections are persisted as JSON arrays. Instants are written as epoch
// milliseconds; older records may hold numeric strings or RFC 3339 text,
// and ids may be numbers.

type storedInstant struct {
	time.Time
}

func (instant storedInstant) MarshalJSON() ([]byte, error) {
	if instant.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(instant.UnixMilli(), 10)), nil
}

func (instant *storedInstant) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		instant.Time = time.Time{}
		return nil
	}

	if trimmed[0] != '"' {
		millis, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return fmt.Errorf("parse instant %s: %w", trimmed, err)
		}
		instant.Time = time.UnixMilli(int64(millis))
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		instant.Time = time.Time{}
		return nil
	}
	if millis, err := strconv.ParseInt(text, 10, 64); err == nil {
		instant.Time = time.UnixMilli(millis)
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return fmt.Errorf("parse instant %q: %w", text, err)
	}
	instant.Time = parsed
	return nil
}

type storedNumber struct {
	value int
}

func (number *storedNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		number.value = 0
		return nil
	}
	raw := string(trimmed)
	if trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		number.value = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", raw, err)
	}
	number.value = int(math.Round(parsed))
	return nil
}

func (number storedNumber) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(number.value)), nil
}

type storedID string

func (id *storedID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*id = storedID(strings.TrimSpace(text))
		return nil
	}
	*id = storedID(string(trimmed))
	return nil
}

type storedCaffeine struct {
	ID        storedID      `json:"id"`
	Amount    storedNumber  `json:"amount"`
	Timestamp storedInstant `json:"timestamp"`
	Date      string        `json:"date"`
}

type storedInterval struct {
	ID        storedID      `json:"id"`
	StartTime storedInstant `json:"startTime"`
	EndTime   storedInstant `json:"endTime"`
	IsNap     bool          `json:"isNap"`
	Rating    *storedNumber `json:"rating,omitempty"`
	Date      string        `json:"date"`
}

func decodeCaffeineEntries(raw string, location *time.Location) ([]models.CaffeineEntry, error) {
	records := make([]storedCaffeine, 0)
	if err := decodeStoredArray(raw, &records); err != nil {
		return nil, err
	}

	entries := make([]models.CaffeineEntry, 0, len(records))
	for _, record := range records {
		timestamp := localizeInstant(record.Timestamp.Time, location)
		entries = append(entries, models.CaffeineEntry{
			ID:        string(record.ID),
			Amount:    record.Amount.value,
			Timestamp: timestamp,
			Date:      derivedDate(record.Date, timestamp, location),
		})
	}
	return entries, nil
}

func decodeIntervalEntries(raw string, isNap bool, location *time.Location) ([]models.SleepEntry, error) {
	records := make([]storedInterval, 0)
	if err := decodeStoredArray(raw, &records); err != nil {
		return nil, err
	}

	entries := make([]models.SleepEntry, 0, len(records))
	for _, record := range records {
		start := localizeInstant(record.StartTime.Time, location)
		rating := 0
		if record.Rating != nil {
			rating = record.Rating.value
		} else if isNap {
			rating = models.DefaultNapRating
		}
		entries = append(entries, models.SleepEntry{
			ID: string(record.ID),
			Interval: models.Interval{
				StartTime: start,
				EndTime:   localizeInstant(record.EndTime.Time, location),
			},
			IsNap:  isNap,
			Rating: rating,
			Date:   derivedDate(record.Date, start, location),
		})
	}
	return entries, nil
}

func decodeNapEntries(raw string, location *time.Location) ([]models.NapEntry, error) {
	intervals, err := decodeIntervalEntries(raw, true, location)
	if err != nil {
		return nil, err
	}
	naps := make([]models.NapEntry, 0, len(intervals))
	for _, interval := range intervals {
		naps = append(naps, models.NapEntry(interval))
	}
	return naps, nil
}

func decodeSleepEntries(raw string, location *time.Location) ([]models.SleepEntry, error) {
	return decodeIntervalEntries(raw, false, location)
}

func encodeCaffeineEntries(entries []models.CaffeineEntry) (string, error) {
	records := make([]storedCaffeine, 0, len(entries))
	for _, entry := range entries {
		records = append(records, storedCaffeine{
			ID:        storedID(entry.ID),
			Amount:    storedNumber{value: entry.Amount},
			Timestamp: storedInstant{Time: entry.Timestamp},
			Date:      entry.Date,
		})
	}
	return encodeStoredArray(records)
}

func encodeSleepEntries(entries []models.SleepEntry) (string, error) {
	records := make([]storedInterval, 0, len(entries))
	for _, entry := range entries {
		records = append(records, intervalRecord(entry))
	}
	return encodeStoredArray(records)
}

func encodeNapEntries(entries []models.NapEntry) (string, error) {
	records := make([]storedInterval, 0, len(entries))
	for _, entry := range entries {
		records = append(records, intervalRecord(models.SleepEntry(entry)))
	}
	return encodeStoredArray(records)
}

func intervalRecord(entry models.SleepEntry) storedInterval {
	return storedInterval{
		ID:        storedID(entry.ID),
		StartTime: storedInstant{Time: entry.StartTime},
		EndTime:   storedInstant{Time: entry.EndTime},
		IsNap:     entry.IsNap,
		Rating:    &storedNumber{value: entry.Rating},
		Date:      entry.Date,
	}
}

func decodeStoredArray(raw string, target any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if err := json.Unmarshal([]byte(trimmed), target); err != nil {
		return fmt.Errorf("decode collection: %w", err)
	}
	return nil
}

func encodeStoredArray(records any) (string, error) {
	encoded, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode collection: %w", err)
	}
	return string(encoded), nil
}

func localizeInstant(value time.Time, location *time.Location) time.Time {
	if value.IsZero() {
		return time.Time{}
	}
	if location == nil {
		location = time.UTC
	}
	return value.In(location)
}

func derivedDate(stored string, primary time.Time, location *time.Location) string {
	if key := strings.TrimSpace(stored); key != "" {
		return key
	}
	return DateKey(primary, location)
}

// normalizeInstant matches the precision and zone of decoded records.
func normalizeInstant(value time.Time, location *time.Location) time.Time {
	return localizeInstant(value.Truncate(time.Millisecond), location)
}
