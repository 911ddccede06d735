package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp wires the middleware chain and routes around handler.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Doze",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: handler.stackTrace}))
	app.Use(RequestID)
	app.Use(AccessLog(handler.logger))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
		ExposeHeaders: requestIDHeader,
	}))

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
