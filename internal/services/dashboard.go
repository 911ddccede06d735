package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

const DefaultChartWindowSize = 7

type dayAccumulator struct {
	caffeineMg int
	sleepMs    int64
	napMs      int64
}

// NormalizeDays groups every entry by date key. Sleep and nap durations
// are summed in milliseconds, not counted, and only dates that have entries are emitted,
// oldest first.
func NormalizeDays(collections models.EntryCollections, location *time.Location) []models.DayTotals {
	accumulators := make(map[string]*dayAccumulator)
	accumulatorFor := func(key string) *dayAccumulator {
		accumulator, ok := accumulators[key]
		if !ok {
			accumulator = &dayAccumulator{}
			accumulators[key] = accumulator
		}
		return accumulator
	}

	for _, entry := range collections.Caffeine {
		key := entryDateKey(entry.Date, entry.Timestamp, location)
		if key == "" {
			continue
		}
		accumulator := accumulatorFor(key)
		if entry.Amount > 0 {
			accumulator.caffeineMg += entry.Amount
		}
	}
	for _, entry := range collections.Sleep {
		key := entryDateKey(entry.Date, entry.StartTime, location)
		if key == "" {
			continue
		}
		accumulatorFor(key).sleepMs += entry.Duration().Milliseconds()
	}
	for _, entry := range collections.Naps {
		key := entryDateKey(entry.Date, entry.StartTime, location)
		if key == "" {
			continue
		}
		accumulatorFor(key).napMs += entry.Duration().Milliseconds()
	}

	keys := make([]string, 0, len(accumulators))
	for key := range accumulators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	totals := make([]models.DayTotals, 0, len(keys))
	for _, key := range keys {
		accumulator := accumulators[key]
		totals = append(totals, models.DayTotals{
			Date:       key,
			CaffeineMg: accumulator.caffeineMg,
			HoursSlept: float64(accumulator.sleepMs) / millisecondsPerHour,
			NapHours:   float64(accumulator.napMs) / millisecondsPerHour,
		})
	}
	return totals
}

func SeriesFromTotals(totals []models.DayTotals, location *time.Location) models.ChartSeries {
	series := newChartSeries(len(totals))
	for _, day := range totals {
		noon, ok := NoonAtLocation(day.Date, location)
		if !ok {
			continue
		}
		series.Dates = append(series.Dates, noon)
		series.HoursSlept = append(series.HoursSlept, day.HoursSlept)
		series.Naps = append(series.Naps, day.NapHours)
		series.Caffeine = append(series.Caffeine, float64(day.CaffeineMg))
	}
	return series
}

// SeriesFromBuckets charts pre-aggregated buckets, keeping empty days.
func SeriesFromBuckets(buckets []models.DayBucket, location *time.Location) models.ChartSeries {
	series := newChartSeries(len(buckets))
	for _, bucket := range buckets {
		noon, ok := NoonAtLocation(bucket.Date, location)
		if !ok {
			continue
		}
		series.Dates = append(series.Dates, noon)
		series.HoursSlept = append(series.HoursSlept, bucket.SleepHours)
		series.Naps = append(series.Naps, bucket.NapHours)
		series.Caffeine = append(series.Caffeine, float64(bucket.TotalCaffeineMg))
	}
	return series
}

func newChartSeries(capacity int) models.ChartSeries {
	return models.ChartSeries{
		Dates:      make([]time.Time, 0, capacity),
		HoursSlept: make([]float64, 0, capacity),
		Naps:       make([]float64, 0, capacity),
		Caffeine:   make([]float64, 0, capacity),
	}
}

// LatestWindowStart is the offset that shows the most recent window.
func LatestWindowStart(length int, size int) int {
	if size <= 0 {
		size = DefaultChartWindowSize
	}
	if length <= size {
		return 0
	}
	return length - size
}

// BuildChartWindow slices [start, start+size) out of series. start is
// clamped to [0, len-1] and a non-positive size falls back to the default.
func BuildChartWindow(series models.ChartSeries, start int, size int) models.ChartWindow {
	if size <= 0 {
		size = DefaultChartWindowSize
	}
	length := series.Len()
	start = clampWindowStart(start, length)
	end := start + size
	if end > length {
		end = length
	}

	visible := models.ChartSeries{
		Dates:      sliceWindow(series.Dates, start, end),
		HoursSlept: sliceWindow(series.HoursSlept, start, end),
		Naps:       sliceWindow(series.Naps, start, end),
		Caffeine:   sliceWindow(series.Caffeine, start, end),
	}

	return models.ChartWindow{
		Start:           start,
		Size:            size,
		Total:           length,
		Series:          visible,
		CanPageForward:  start+size < length,
		CanPageBack:     start > 0,
		WindowAverages:  SeriesAveragesOf(visible),
		OverallAverages: SeriesAveragesOf(series),
	}
}

func SeriesAveragesOf(series models.ChartSeries) models.SeriesAverages {
	return models.SeriesAverages{
		HoursSlept: mean(series.HoursSlept),
		Naps:       mean(series.Naps),
		Caffeine:   mean(series.Caffeine),
	}
}

func clampWindowStart(start int, length int) int {
	if length == 0 || start < 0 {
		return 0
	}
	if start > length-1 {
		return length - 1
	}
	return start
}

func sliceWindow[T any](values []T, start int, end int) []T {
	if start >= end || start >= len(values) {
		return []T{}
	}
	if end > len(values) {
		end = len(values)
	}
	result := make([]T, end-start)
	copy(result, values[start:end])
	return result
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, value := range values {
		total += value
	}
	return total / float64(len(values))
}
