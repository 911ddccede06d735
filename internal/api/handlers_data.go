package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.entries.ClearAll(c.UserContext()); err != nil {
		return handler.serviceError(c, err)
	}

	handler.logger.Info("all entries cleared", zap.String("request_id", requestID(c)))
	return c.JSON(fiber.Map{"ok": true})
}
