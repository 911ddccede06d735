package models

import "time"

type EntryType string

const (
	EntryTypeCaffeine EntryType = "caffeine"
	EntryTypeSleep    EntryType = "sleep"
	EntryTypeNap      EntryType = "nap"
)

const DefaultNapRating = 5

var EntryTypes = []EntryType{EntryTypeCaffeine, EntryTypeSleep, EntryTypeNap}

func (kind EntryType) Valid() bool {
	switch kind {
	case EntryTypeCaffeine, EntryTypeSleep, EntryTypeNap:
		return true
	default:
		return false
	}
}

// Entry is implemented by every logged record kind.
type Entry interface {
	EntryID() string
	Kind() EntryType
	PrimaryTime() time.Time
	DateKey() string
}

type CaffeineEntry struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
}

func (entry CaffeineEntry) EntryID() string        { return entry.ID }
func (entry CaffeineEntry) Kind() EntryType        { return EntryTypeCaffeine }
func (entry CaffeineEntry) PrimaryTime() time.Time { return entry.Timestamp }
func (entry CaffeineEntry) DateKey() string        { return entry.Date }

// Interval is the start/end pair shared by sleep and nap records.
type Interval struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

func (interval Interval) Duration() time.Duration {
	if interval.StartTime.IsZero() || interval.EndTime.IsZero() {
		return 0
	}
	if !interval.EndTime.After(interval.StartTime) {
		return 0
	}
	return interval.EndTime.Sub(interval.StartTime)
}

type SleepEntry struct {
	ID string `json:"id"`
	Interval
	IsNap  bool   `json:"isNap"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
}

func (entry SleepEntry) EntryID() string        { return entry.ID }
func (entry SleepEntry) Kind() EntryType        { return EntryTypeSleep }
func (entry SleepEntry) PrimaryTime() time.Time { return entry.StartTime }
func (entry SleepEntry) DateKey() string        { return entry.Date }

type NapEntry struct {
	ID string `json:"id"`
	Interval
	IsNap  bool   `json:"isNap"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
}

func (entry NapEntry) EntryID() string        { return entry.ID }
func (entry NapEntry) Kind() EntryType        { return EntryTypeNap }
func (entry NapEntry) PrimaryTime() time.Time { return entry.StartTime }
func (entry NapEntry) DateKey() string        { return entry.Date }

// EntryCollections groups the three collections, either in full or
// filtered to a single day.
type EntryCollections struct {
	Caffeine []CaffeineEntry `json:"caffeine"`
	Sleep    []SleepEntry    `json:"sleep"`
	Naps     []NapEntry      `json:"naps"`
}

func (collections EntryCollections) Len() int {
	return len(collections.Caffeine) + len(collections.Sleep) + len(collections.Naps)
}

// Entries flattens the collections in caffeine, sleep, nap order.
func (collections EntryCollections) Entries() []Entry {
	result := make([]Entry, 0, collections.Len())
	for _, entry := range collections.Caffeine {
		result = append(result, entry)
	}
	for _, entry := range collections.Sleep {
		result = append(result, entry)
	}
	for _, entry := range collections.Naps {
		result = append(result, entry)
	}
	return result
}
