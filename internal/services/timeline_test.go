package services

import (
	"testing"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

func TestBuildTimelineGroupsByLocalDate(t *testing.T) {
	t.Parallel()

	location := time.FixedZone("UTC-5", -5*60*60)
	collections := models.EntryCollections{
		Caffeine: []models.CaffeineEntry{
			{ID: "late", Amount: 50, Timestamp: time.Date(2026, 1, 6, 2, 0, 0, 0, time.UTC)},
			{ID: "morning", Amount: 120, Timestamp: time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC), Date: "2026-01-06"},
		},
		Sleep: []models.SleepEntry{
			{
				ID:       "night",
				Interval: interval(time.Date(2026, 1, 6, 4, 0, 0, 0, time.UTC), 7*time.Hour+30*time.Minute),
				Rating:   8,
				Date:     "2026-01-05",
			},
		},
		Naps: []models.NapEntry{
			{ID: "nap", Interval: interval(time.Date(2026, 1, 6, 19, 0, 0, 0, time.UTC), 20*time.Minute), IsNap: true, Rating: 5, Date: "2026-01-06"},
		},
	}

	sections := BuildTimeline(collections, location)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	newest := sections[0]
	if newest.Date != "2026-01-06" || newest.Title != "Tuesday, January 6" {
		t.Fatalf("unexpected newest section %#v", newest)
	}
	if len(newest.Items) != 2 || newest.Items[0].ID != "nap" || newest.Items[1].ID != "morning" {
		t.Fatalf("unexpected newest items %#v", newest.Items)
	}
	if newest.Items[0].Title != "Nap: 2:00 PM - 2:20 PM" || newest.Items[0].Detail != "Duration: 20 min" {
		t.Fatalf("unexpected nap display %q / %q", newest.Items[0].Title, newest.Items[0].Detail)
	}
	if newest.Items[1].Title != "120mg - 9:00 AM" {
		t.Fatalf("unexpected caffeine title %q", newest.Items[1].Title)
	}

	older := sections[1]
	if older.Date != "2026-01-05" || len(older.Items) != 2 {
		t.Fatalf("unexpected older section %#v", older)
	}
	if older.Items[0].ID != "night" || older.Items[1].ID != "late" {
		t.Fatalf("expected sleep before the late caffeine, got %#v", older.Items)
	}
	if older.Items[0].Title != "Sleep: 11:00 PM - 6:30 AM" || older.Items[0].Detail != "Duration: 7 hr 30 min · Quality 8/10 😁" {
		t.Fatalf("unexpected sleep display %q / %q", older.Items[0].Title, older.Items[0].Detail)
	}
	if older.Items[1].Title != "50mg - 9:00 PM" {
		t.Fatalf("unexpected late caffeine title %q", older.Items[1].Title)
	}
}

func TestBuildTimelineEmpty(t *testing.T) {
	t.Parallel()

	if sections := BuildTimeline(models.EntryCollections{}, nil); len(sections) != 0 {
		t.Fatalf("expected no sections, got %#v", sections)
	}
}
