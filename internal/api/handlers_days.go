package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/doze/internal/models"
	"github.com/terraincognita07/doze/internal/services"
)

const (
	defaultSummaryDays = 7
	maxSummaryDays     = 366
)

type dayBucketView struct {
	models.DayBucket
	Fill models.BucketFill `json:"fill"`
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	day, err := services.ParseDateKey(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	summary, err := handler.summaries.DaySummary(c.UserContext(), day)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) GetSummary(c *fiber.Ctx) error {
	days, ok := queryInt(c, "days", handler.summaryDays)
	if !ok || days < 1 || days > maxSummaryDays {
		return apiError(c, fiber.StatusBadRequest, "invalid days")
	}

	buckets, err := handler.summaries.RecentDays(c.UserContext(), handler.today(), days)
	if err != nil {
		return handler.serviceError(c, err)
	}

	views := make([]dayBucketView, 0, len(buckets))
	for _, bucket := range buckets {
		views = append(views, dayBucketView{
			DayBucket: bucket,
			Fill:      services.BucketFill(bucket),
		})
	}
	return c.JSON(fiber.Map{
		"days":   views,
		"series": services.SeriesFromBuckets(buckets, handler.location),
		"maxima": fiber.Map{
			"caffeine_mg":   services.MaxCaffeineMg,
			"sleep_hours":   services.MaxSleepHours,
			"naps":          services.MaxNapsPerDay,
			"sleep_quality": services.MaxSleepQuality,
		},
	})
}

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	windowSize, ok := queryInt(c, "window_size", handler.windowSize)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid window_size")
	}

	var windowStart *int
	if c.Query("window_start") != "" {
		start, ok := queryInt(c, "window_start", 0)
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "invalid window_start")
		}
		windowStart = &start
	}

	window, err := handler.summaries.Dashboard(c.UserContext(), windowStart, windowSize)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(window)
}

func (handler *Handler) GetTimeline(c *fiber.Ctx) error {
	sections, err := handler.summaries.Timeline(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"sections": sections})
}
