package services

import (
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

func TestDecodeCaffeineAcceptsLegacyShapes(t *testing.T) {
	t.Parallel()

	raw := `[
		{"id":"1717400000000","amount":120,"timestamp":1717405200000,"date":"2024-06-03"},
		{"id":1717400000001,"amount":"80","timestamp":"2024-06-04T08:00:00Z"},
		{"id":"x","amount":64.6,"timestamp":"1717574400000"}
	]`
	entries, err := decodeCaffeineEntries(raw, time.UTC)
	if err != nil {
		t.Fatalf("decodeCaffeineEntries() unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Date != "2024-06-03" || entries[0].Amount != 120 {
		t.Fatalf("unexpected first entry %#v", entries[0])
	}
	if entries[1].ID != "1717400000001" || entries[1].Amount != 80 || entries[1].Date != "2024-06-04" {
		t.Fatalf("expected numeric id and derived date, got %#v", entries[1])
	}
	if entries[2].Amount != 65 || entries[2].Date != "2024-06-05" {
		t.Fatalf("expected rounded amount and derived date, got %#v", entries[2])
	}
}

func TestDecodeIntervalsFillDefaults(t *testing.T) {
	t.Parallel()

	raw := `[{"id":"n1","startTime":1717416000000,"endTime":1717419600000}]`
	naps, err := decodeNapEntries(raw, time.UTC)
	if err != nil {
		t.Fatalf("decodeNapEntries() unexpected error: %v", err)
	}
	if len(naps) != 1 || !naps[0].IsNap || naps[0].Rating != models.DefaultNapRating || naps[0].Date == "" {
		t.Fatalf("expected nap defaults to be filled, got %#v", naps)
	}

	sleep, err := decodeSleepEntries(`[{"id":"s1","startTime":1717416000000,"endTime":1717444800000,"isNap":true}]`, time.UTC)
	if err != nil {
		t.Fatalf("decodeSleepEntries() unexpected error: %v", err)
	}
	if sleep[0].IsNap || sleep[0].Rating != 0 {
		t.Fatalf("expected collection to decide isNap and no default sleep rating, got %#v", sleep[0])
	}
	if sleep[0].Duration() != 8*time.Hour {
		t.Fatalf("expected 8h sleep, got %s", sleep[0].Duration())
	}
}

func TestDecodeEmptyPayloads(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "null", "[]"} {
		entries, err := decodeCaffeineEntries(raw, time.UTC)
		if err != nil || len(entries) != 0 {
			t.Fatalf("decodeCaffeineEntries(%q) = %#v, %v", raw, entries, err)
		}
	}
	if _, err := decodeCaffeineEntries(`{"id":"1"}`, time.UTC); err == nil {
		t.Fatal("expected error for non array payload")
	}
}

func TestEncodeWritesEpochMilliseconds(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	encoded, err := encodeNapEntries([]models.NapEntry{{
		ID:       "n1",
		Interval: models.Interval{StartTime: start, EndTime: start.Add(time.Hour)},
		IsNap:    true,
		Rating:   5,
		Date:     "2024-06-03",
	}})
	if err != nil {
		t.Fatalf("encodeNapEntries() unexpected error: %v", err)
	}
	want := `[{"id":"n1","startTime":1717416000000,"endTime":1717419600000,"isNap":true,"rating":5,"date":"2024-06-03"}]`
	if encoded != want {
		t.Fatalf("unexpected encoding:\n got %s\nwant %s", encoded, want)
	}

	encoded, err = encodeCaffeineEntries([]models.CaffeineEntry{{ID: "c1", Amount: 90}})
	if err != nil {
		t.Fatalf("encodeCaffeineEntries() unexpected error: %v", err)
	}
	if !strings.Contains(encoded, `"timestamp":null`) {
		t.Fatalf("expected zero timestamp to encode as null, got %s", encoded)
	}
}
