package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/doze/internal/models"
	"github.com/terraincognita07/doze/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	kind, err := parseEntryTypeParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	entries, err := handler.entries.GetAll(c.UserContext(), kind)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"type":    kind,
		"entries": entries,
	})
}

func (handler *Handler) GetEntry(c *fiber.Ctx) error {
	kind, err := parseEntryTypeParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	entry, err := handler.entries.GetByID(c.UserContext(), kind, c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	kind, err := parseEntryTypeParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	payload, err := handler.parseEntryPayload(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	draft, err := handler.buildEntryDraft(kind, payload)
	if err != nil {
		return handler.serviceError(c, err)
	}

	entry, err := handler.entries.Save(c.UserContext(), kind, draft)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateEntry(c *fiber.Ctx) error {
	kind, err := parseEntryTypeParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	payload, err := handler.parseEntryPayload(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	// Picker values on an edit resolve against the stored entry's own date.
	if strings.TrimSpace(payload.ReferenceDate) == "" && (payload.Start != nil || payload.Clock != nil) {
		existing, err := handler.entries.GetByID(c.UserContext(), kind, c.Params("id"))
		if err != nil {
			return handler.serviceError(c, err)
		}
		payload.ReferenceDate = services.DateKey(existing.PrimaryTime(), handler.location)
	}

	patch, err := handler.buildEntryPatch(payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if patch.Empty() {
		return apiError(c, fiber.StatusBadRequest, "no fields to update")
	}

	entry, err := handler.entries.Update(c.UserContext(), kind, c.Params("id"), patch)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	kind, err := parseEntryTypeParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	deleted, err := handler.entries.DeleteByID(c.UserContext(), kind, c.Params("id"))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (handler *Handler) parseEntryPayload(c *fiber.Ctx) (entryPayload, error) {
	payload := entryPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return entryPayload{}, fmt.Errorf("%w: invalid payload", services.ErrInvalidInput)
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return entryPayload{}, fmt.Errorf("%w: %s", services.ErrInvalidInput, describeValidationError(err))
	}
	if (payload.Start == nil) != (payload.End == nil) {
		return entryPayload{}, fmt.Errorf("%w: start and end must be sent together", services.ErrInvalidInput)
	}
	return payload, nil
}

func (handler *Handler) referenceDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return services.DateAtLocation(handler.today(), handler.location), nil
	}
	day, err := services.ParseDateKey(raw, handler.location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reference_date %q", services.ErrInvalidInput, raw)
	}
	return day, nil
}

// resolveInterval prefers picker values over explicit instants.
func (handler *Handler) resolveInterval(payload entryPayload) (*time.Time, *time.Time, error) {
	if payload.Start == nil {
		return payload.StartTime, payload.EndTime, nil
	}

	reference, err := handler.referenceDay(payload.ReferenceDate)
	if err != nil {
		return nil, nil, err
	}
	start, end := services.ResolveClockRange(*payload.Start, *payload.End, reference)
	return &start, &end, nil
}

func (handler *Handler) resolveTimestamp(payload entryPayload) (*time.Time, error) {
	if payload.Clock == nil {
		return payload.Timestamp, nil
	}

	reference, err := handler.referenceDay(payload.ReferenceDate)
	if err != nil {
		return nil, err
	}
	timestamp := payload.Clock.On(reference)
	return &timestamp, nil
}

func (handler *Handler) buildEntryDraft(kind models.EntryType, payload entryPayload) (services.EntryDraft, error) {
	draft := services.EntryDraft{}

	switch kind {
	case models.EntryTypeCaffeine:
		if payload.Amount == nil {
			return services.EntryDraft{}, fmt.Errorf("%w: amount is required", services.ErrInvalidInput)
		}
		draft.Amount = *payload.Amount

		timestamp, err := handler.resolveTimestamp(payload)
		if err != nil {
			return services.EntryDraft{}, err
		}
		if timestamp == nil {
			draft.Timestamp = handler.now()
		} else {
			draft.Timestamp = *timestamp
		}

	default:
		start, end, err := handler.resolveInterval(payload)
		if err != nil {
			return services.EntryDraft{}, err
		}
		if start == nil || end == nil {
			return services.EntryDraft{}, fmt.Errorf("%w: start and end are required", services.ErrInvalidInput)
		}
		draft.StartTime = *start
		draft.EndTime = *end
		if payload.Rating != nil {
			draft.Rating = *payload.Rating
		}
	}
	return draft, nil
}

func (handler *Handler) buildEntryPatch(payload entryPayload) (services.EntryPatch, error) {
	timestamp, err := handler.resolveTimestamp(payload)
	if err != nil {
		return services.EntryPatch{}, err
	}
	start, end, err := handler.resolveInterval(payload)
	if err != nil {
		return services.EntryPatch{}, err
	}

	return services.EntryPatch{
		Amount:    payload.Amount,
		Timestamp: timestamp,
		StartTime: start,
		EndTime:   end,
		Rating:    payload.Rating,
	}, nil
}

func describeValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid payload"
	}

	first := validationErrors[0]
	return fmt.Sprintf("%s failed %s", strings.ToLower(first.Field()), first.Tag())
}
