package services

import (
	"context"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

type EntryCollectionsReader interface {
	LoadAll(ctx context.Context) (models.EntryCollections, error)
}

// SummaryService derives day summaries, buckets, chart windows and the
// timeline from the stored collections. Nothing it computes is cached.
type SummaryService struct {
	entries  EntryCollectionsReader
	location *time.Location
}

func NewSummaryService(entries EntryCollectionsReader, location *time.Location) *SummaryService {
	if location == nil {
		location = time.UTC
	}
	return &SummaryService{
		entries:  entries,
		location: location,
	}
}

func (service *SummaryService) DaySummary(ctx context.Context, day time.Time) (models.DaySummary, error) {
	all, err := service.entries.LoadAll(ctx)
	if err != nil {
		return models.DaySummary{}, err
	}

	key := DateKey(day, service.location)
	entries := FilterByDateKey(all, key)
	total := 0
	for _, entry := range entries.Caffeine {
		if entry.Amount > 0 {
			total += entry.Amount
		}
	}
	return models.DaySummary{
		Date:            key,
		TotalCaffeineMg: total,
		SleepCount:      len(entries.Sleep),
		NapCount:        len(entries.Naps),
		Entries:         entries,
	}, nil
}

func (service *SummaryService) RecentDays(ctx context.Context, today time.Time, days int) ([]models.DayBucket, error) {
	all, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDayBuckets(all, today, days, service.location), nil
}

// Dashboard builds the chart window over every day that has entries. A
// nil windowStart selects the most recent window.
func (service *SummaryService) Dashboard(ctx context.Context, windowStart *int, windowSize int) (models.ChartWindow, error) {
	all, err := service.entries.LoadAll(ctx)
	if err != nil {
		return models.ChartWindow{}, err
	}
	series := SeriesFromTotals(NormalizeDays(all, service.location), service.location)

	start := LatestWindowStart(series.Len(), windowSize)
	if windowStart != nil {
		start = *windowStart
	}
	return BuildChartWindow(series, start, windowSize), nil
}

func (service *SummaryService) Timeline(ctx context.Context) ([]models.TimelineSection, error) {
	all, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(all, service.location), nil
}
