package api

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
)

func TestExportCSV(t *testing.T) {
	t.Parallel()

	app := newSeededTestApp(t)

	response := doRequest(t, app, http.MethodGet, "/api/export/csv?from=2026-03-01", "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if disposition := response.Header.Get("Content-Disposition"); disposition != "attachment; filename=doze-export-2026-03-02.csv" {
		t.Fatalf("unexpected content disposition %q", disposition)
	}
	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("unexpected content type %q", contentType)
	}

	records, err := csv.NewReader(response.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header plus four rows, got %d", len(records))
	}
	if records[1][1] != "sleep" || records[1][0] != "2026-03-01" {
		t.Fatalf("expected sleep row first, got %#v", records[1])
	}
}

func TestExportJSONAndSummary(t *testing.T) {
	t.Parallel()

	app := newSeededTestApp(t)

	exported := decodeJSON[struct {
		ExportedAt string `json:"exported_at"`
		Entries    []struct {
			Type string `json:"type"`
		} `json:"entries"`
	}](t, doRequest(t, app, http.MethodGet, "/api/export/json", "").Body)
	if exported.ExportedAt != "2026-03-02T12:00:00Z" || len(exported.Entries) != 5 {
		t.Fatalf("unexpected json export %#v", exported)
	}

	summary := decodeJSON[map[string]any](t, doRequest(t, app, http.MethodGet, "/api/export/summary?to=2026-02-28", "").Body)
	if summary["total_entries"] != float64(1) || summary["has_data"] != true || summary["date_from"] != "2026-02-28" {
		t.Fatalf("unexpected export summary %#v", summary)
	}
}

func TestExportRejectsInvalidRange(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	tests := []struct {
		query   string
		message string
	}{
		{query: "from=bad", message: "invalid from date"},
		{query: "to=2026-02-30", message: "invalid to date"},
		{query: "from=2026-03-02&to=2026-03-01", message: "invalid range"},
	}
	for _, tt := range tests {
		response := doRequest(t, app, http.MethodGet, "/api/export/csv?"+tt.query, "")
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", tt.query, response.StatusCode)
		}
		if message := readAPIError(t, response.Body); message != tt.message {
			t.Fatalf("%s: expected %q, got %q", tt.query, tt.message, message)
		}
	}
}
