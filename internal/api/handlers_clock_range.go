package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/doze/internal/services"
)

// ClockDefaults returns picker values prefilled from the current time.
func (handler *Handler) ClockDefaults(c *fiber.Ctx) error {
	now := handler.today()
	return c.JSON(fiber.Map{
		"reference_date": services.DateKey(now, handler.location),
		"clock":          services.ClockTimeFromInstant(now),
	})
}

func (handler *Handler) ResolveClockRange(c *fiber.Ctx) error {
	payload := clockRangePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return handler.serviceError(c, fmt.Errorf("%w: %s", services.ErrInvalidInput, describeValidationError(err)))
	}

	reference, err := handler.referenceDay(payload.ReferenceDate)
	if err != nil {
		return handler.serviceError(c, err)
	}

	start, end := services.ResolveClockRange(payload.Start, payload.End, reference)
	duration := end.Sub(start)
	return c.JSON(fiber.Map{
		"start":            start,
		"end":              end,
		"duration_minutes": int(duration.Minutes()),
		"duration_label":   services.FormatDuration(duration),
	})
}
