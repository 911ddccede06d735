package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

// BuildTimeline merges all entries newest first and groups them into
// sections by date key, newest date first.
func BuildTimeline(collections models.EntryCollections, location *time.Location) []models.TimelineSection {
	if location == nil {
		location = time.UTC
	}
	items := make([]models.TimelineItem, 0, collections.Len())
	for _, entry := range collections.Caffeine {
		items = append(items, models.TimelineItem{
			ID:      entry.ID,
			Type:    models.EntryTypeCaffeine,
			SortKey: entry.Timestamp,
			Title:   fmt.Sprintf("%dmg - %s", entry.Amount, FormatClock(entry.Timestamp.In(location))),
			Entry:   entry,
		})
	}
	for _, entry := range collections.Sleep {
		items = append(items, intervalTimelineItem(entry, "Sleep", RatingLabel(entry.Rating), location))
	}
	for _, entry := range collections.Naps {
		items = append(items, intervalTimelineItem(entry, "Nap", "", location))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortKey.After(items[j].SortKey)
	})

	sections := make([]models.TimelineSection, 0)
	indexByDate := make(map[string]int)
	for _, item := range items {
		key := entryDateKey(item.Entry.DateKey(), item.SortKey, location)
		index, ok := indexByDate[key]
		if !ok {
			index = len(sections)
			indexByDate[key] = index
			sections = append(sections, models.TimelineSection{
				Date:  key,
				Title: FormatDateFull(key, location),
				Items: []models.TimelineItem{},
			})
		}
		sections[index].Items = append(sections[index].Items, item)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Date > sections[j].Date
	})
	return sections
}

type intervalEntry interface {
	models.Entry
	Duration() time.Duration
}

func intervalTimelineItem(entry intervalEntry, label string, rating string, location *time.Location) models.TimelineItem {
	start := entry.PrimaryTime().In(location)
	end := start.Add(entry.Duration())
	detail := "Duration: " + FormatDuration(entry.Duration())
	if rating != "" {
		detail += " · Quality " + rating
	}
	return models.TimelineItem{
		ID:      entry.EntryID(),
		Type:    entry.Kind(),
		SortKey: start,
		Title:   fmt.Sprintf("%s: %s - %s", label, FormatClock(start), FormatClock(end)),
		Detail:  detail,
		Entry:   entry,
	}
}
