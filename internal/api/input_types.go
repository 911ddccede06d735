package api

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/terraincognita07/doze/internal/services"
)

var payloadValidator = validator.New()

// entryPayload accepts either explicit RFC 3339 instants or picker values.
// Picker values are resolved against reference_date, or today when it is
// empty.
type entryPayload struct {
	Amount        *int                `json:"amount" validate:"omitempty,gt=0"`
	Timestamp     *time.Time          `json:"timestamp"`
	StartTime     *time.Time          `json:"start_time"`
	EndTime       *time.Time          `json:"end_time"`
	Rating        *int                `json:"rating" validate:"omitempty,gte=1,lte=10"`
	Clock         *services.ClockTime `json:"clock"`
	Start         *services.ClockTime `json:"start"`
	End           *services.ClockTime `json:"end"`
	ReferenceDate string              `json:"reference_date" validate:"omitempty,datetime=2006-01-02"`
}

type clockRangePayload struct {
	Start         services.ClockTime `json:"start"`
	End           services.ClockTime `json:"end"`
	ReferenceDate string             `json:"reference_date" validate:"omitempty,datetime=2006-01-02"`
}
