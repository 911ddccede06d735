package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/doze/internal/models"
	"github.com/terraincognita07/doze/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps service sentinels to HTTP responses. Storage and
// unexpected failures are logged and reported without details.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEntryNotFound):
		return apiError(c, fiber.StatusNotFound, "entry not found")
	case errors.Is(err, services.ErrNoData):
		return apiError(c, fiber.StatusNotFound, "no entries stored")
	case errors.Is(err, services.ErrUnknownEntryType):
		return apiError(c, fiber.StatusBadRequest, "unknown entry type")
	case errors.Is(err, services.ErrInvalidInput):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	handler.logger.Error("request failed",
		zap.String("request_id", requestID(c)),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	if errors.Is(err, services.ErrStorage) {
		return apiError(c, fiber.StatusInternalServerError, "storage failure")
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

// queryInt returns fallback for an absent parameter and ok=false for a
// malformed one.
func queryInt(c *fiber.Ctx, name string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseEntryTypeParam(c *fiber.Ctx) (models.EntryType, error) {
	return services.ParseEntryType(strings.ToLower(strings.TrimSpace(c.Params("type"))))
}

// ErrorHandler renders errors escaping the handlers, including panics
// caught by the recover middleware, as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = strings.ToLower(fiberErr.Message)
	}
	return apiError(c, status, message)
}
