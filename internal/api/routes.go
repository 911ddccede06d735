package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	entries := api.Group("/entries")
	entries.Get("/:type", handler.ListEntries)
	entries.Post("/:type", handler.CreateEntry)
	entries.Get("/:type/:id", handler.GetEntry)
	entries.Patch("/:type/:id", handler.UpdateEntry)
	entries.Delete("/:type/:id", handler.DeleteEntry)

	api.Get("/clock-range/defaults", handler.ClockDefaults)
	api.Post("/clock-range/resolve", handler.ResolveClockRange)

	api.Get("/days/:date", handler.GetDay)
	api.Get("/summary", handler.GetSummary)
	api.Get("/dashboard", handler.GetDashboard)
	api.Get("/timeline", handler.GetTimeline)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	api.Delete("/data", handler.ClearAllData)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
