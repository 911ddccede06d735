package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/doze/internal/models"
)

var (
	ErrEntryNotFound    = errors.New("entry not found")
	ErrNoData           = errors.New("no data stored for entry type")
	ErrStorage          = errors.New("storage failure")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownEntryType = errors.New("unknown entry type")
)

var inputValidator = validator.New()

// EntryDraft carries the user supplied fields of a new entry. Caffeine
// uses Amount and Timestamp, sleep and nap use StartTime, EndTime and
// Rating.
type EntryDraft struct {
	Amount    int
	Timestamp time.Time
	StartTime time.Time
	EndTime   time.Time
	Rating    int
}

// EntryPatch is a shallow partial update. Nil fields are left unchanged
// and fields that do not apply to the entry kind are ignored.
type EntryPatch struct {
	Amount    *int
	Timestamp *time.Time
	StartTime *time.Time
	EndTime   *time.Time
	Rating    *int
}

func (patch EntryPatch) Empty() bool {
	return patch.Amount == nil &&
		patch.Timestamp == nil &&
		patch.StartTime == nil &&
		patch.EndTime == nil &&
		patch.Rating == nil
}

// CheckApplies rejects fields that do not belong to kind.
func (patch EntryPatch) CheckApplies(kind models.EntryType) error {
	switch kind {
	case models.EntryTypeCaffeine:
		if patch.StartTime != nil || patch.EndTime != nil || patch.Rating != nil {
			return fmt.Errorf("%w: start, end and rating do not apply to caffeine entries", ErrInvalidInput)
		}
	case models.EntryTypeSleep, models.EntryTypeNap:
		if patch.Amount != nil || patch.Timestamp != nil {
			return fmt.Errorf("%w: amount and timestamp do not apply to %s entries", ErrInvalidInput, kind)
		}
	}
	return nil
}

type caffeineRules struct {
	Amount int `validate:"gt=0"`
}

type ratingRules struct {
	Rating int `validate:"gte=1,lte=10"`
}

func ParseEntryType(raw string) (models.EntryType, error) {
	kind := models.EntryType(raw)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntryType, raw)
	}
	return kind, nil
}

func ValidateCaffeine(amount int, timestamp time.Time) error {
	if err := inputValidator.Struct(caffeineRules{Amount: amount}); err != nil {
		return fmt.Errorf("%w: caffeine amount must be positive, got %d", ErrInvalidInput, amount)
	}
	if timestamp.IsZero() {
		return fmt.Errorf("%w: caffeine timestamp is required", ErrInvalidInput)
	}
	return nil
}

func ValidateInterval(start time.Time, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end times are required", ErrInvalidInput)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}
	if end.Sub(start) > maxIntervalSpan {
		return fmt.Errorf("%w: interval longer than 24 hours", ErrInvalidInput)
	}
	return nil
}

func ValidateRating(rating int) error {
	if err := inputValidator.Struct(ratingRules{Rating: rating}); err != nil {
		return fmt.Errorf("%w: rating must be between 1 and 10, got %d", ErrInvalidInput, rating)
	}
	return nil
}

// NormalizeRating applies the nap default and validates the result.
func NormalizeRating(kind models.EntryType, rating int) (int, error) {
	if kind == models.EntryTypeNap && rating == 0 {
		rating = models.DefaultNapRating
	}
	if err := ValidateRating(rating); err != nil {
		return 0, err
	}
	return rating, nil
}
