package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/doze/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	exportRange, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	summary, err := handler.exports.BuildSummary(c.UserContext(), exportRange)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	exportRange, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	entries, err := handler.exports.BuildEntries(c.UserContext(), exportRange)
	if err != nil {
		return handler.serviceError(c, err)
	}

	var output bytes.Buffer
	if err := handler.exports.WriteCSV(&output, entries); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", services.BuildExportFilename(handler.today(), "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	exportRange, rangeError := handler.parseExportRange(c)
	if rangeError != "" {
		return apiError(c, fiber.StatusBadRequest, rangeError)
	}

	entries, err := handler.exports.BuildEntries(c.UserContext(), exportRange)
	if err != nil {
		return handler.serviceError(c, err)
	}
	now := handler.today()

	serialized, err := json.MarshalIndent(fiber.Map{
		"exported_at": now.Format(time.RFC3339),
		"entries":     entries,
	}, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, services.BuildExportFilename(now, "json"))
	return c.Send(serialized)
}

func (handler *Handler) parseExportRange(c *fiber.Ctx) (services.ExportRange, string) {
	exportRange, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExportFromDateInvalid):
			return services.ExportRange{}, "invalid from date"
		case errors.Is(err, services.ErrExportToDateInvalid):
			return services.ExportRange{}, "invalid to date"
		default:
			return services.ExportRange{}, "invalid range"
		}
	}
	return exportRange, ""
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
