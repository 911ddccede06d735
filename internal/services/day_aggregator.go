package services

import (
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

// Dashboard maxima used to scale bucket values into progress fractions.
const (
	MaxCaffeineMg   = 300
	MaxSleepHours   = 10
	MaxNapsPerDay   = 3
	MaxSleepQuality = 10
)

const millisecondsPerHour = float64(time.Hour / time.Millisecond)

// BuildDayBuckets returns exactly days buckets ending at the local date of
// today, oldest first. Days without entries keep zero values.
func BuildDayBuckets(collections models.EntryCollections, today time.Time, days int, location *time.Location) []models.DayBucket {
	if days < 1 {
		return []models.DayBucket{}
	}
	if location == nil {
		location = time.UTC
	}

	last := DateAtLocation(today, location)
	buckets := make([]models.DayBucket, days)
	indexByKey := make(map[string]int, days)
	for offset := 0; offset < days; offset++ {
		day := last.AddDate(0, 0, offset-(days-1))
		key := day.Format(DateKeyLayout)
		buckets[offset] = models.DayBucket{
			Date:    key,
			Label:   fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			Weekday: day.Weekday().String()[:3],
		}
		indexByKey[key] = offset
	}

	for _, entry := range collections.Caffeine {
		index, ok := bucketIndex(indexByKey, entry.Date, entry.Timestamp, location)
		if !ok || entry.Amount <= 0 {
			continue
		}
		buckets[index].TotalCaffeineMg += entry.Amount
	}

	// Multiple sleep entries on one day: the last one in stored order wins.
	for _, entry := range collections.Sleep {
		index, ok := bucketIndex(indexByKey, entry.Date, entry.StartTime, location)
		if !ok {
			continue
		}
		buckets[index].SleepHours = durationHours(entry.Interval)
		buckets[index].SleepQuality = clampRating(entry.Rating)
	}

	napCounts := countNapsPerDay(collections.Naps, location)
	napHours := sumNapDurationPerDay(collections.Naps, location)
	for key, index := range indexByKey {
		buckets[index].NapCount = napCounts[key]
		buckets[index].NapHours = napHours[key]
	}

	return buckets
}

// countNapsPerDay counts nap occurrences per date key. The headline day
// buckets report this count.
func countNapsPerDay(naps []models.NapEntry, location *time.Location) map[string]int {
	counts := make(map[string]int)
	for _, nap := range naps {
		key := entryDateKey(nap.Date, nap.StartTime, location)
		if key == "" {
			continue
		}
		counts[key]++
	}
	return counts
}

// sumNapDurationPerDay sums nap hours per date key. Charts plot this sum
// rather than the count.
func sumNapDurationPerDay(naps []models.NapEntry, location *time.Location) map[string]float64 {
	sums := make(map[string]float64)
	for _, nap := range naps {
		key := entryDateKey(nap.Date, nap.StartTime, location)
		if key == "" {
			continue
		}
		sums[key] += durationHours(nap.Interval)
	}
	return sums
}

func BucketFill(bucket models.DayBucket) models.BucketFill {
	return models.BucketFill{
		Caffeine:     fraction(float64(bucket.TotalCaffeineMg), MaxCaffeineMg),
		Sleep:        fraction(bucket.SleepHours, MaxSleepHours),
		Naps:         fraction(float64(bucket.NapCount), MaxNapsPerDay),
		SleepQuality: fraction(float64(bucket.SleepQuality), MaxSleepQuality),
	}
}

func bucketIndex(indexByKey map[string]int, date string, primary time.Time, location *time.Location) (int, bool) {
	key := entryDateKey(date, primary, location)
	if key == "" {
		return 0, false
	}
	index, ok := indexByKey[key]
	return index, ok
}

func entryDateKey(date string, primary time.Time, location *time.Location) string {
	if date != "" {
		return date
	}
	return DateKey(primary, location)
}

func durationHours(interval models.Interval) float64 {
	return float64(interval.Duration().Milliseconds()) / millisecondsPerHour
}

func clampRating(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > MaxSleepQuality {
		return MaxSleepQuality
	}
	return rating
}

func fraction(value float64, maximum float64) float64 {
	if maximum <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	return math.Min(value/maximum, 1)
}
