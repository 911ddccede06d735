package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/doze/internal/models"
	"github.com/terraincognita07/doze/internal/services"
)

type clearerStub struct {
	collections models.EntryCollections
	cleared     bool
}

func (stub *clearerStub) LoadAll(context.Context) (models.EntryCollections, error) {
	return stub.collections, nil
}

func (stub *clearerStub) ClearAll(context.Context) error {
	stub.cleared = true
	stub.collections = models.EntryCollections{}
	return nil
}

func sampleCollections() models.EntryCollections {
	start := time.Date(2026, 1, 5, 22, 0, 0, 0, time.UTC)
	return models.EntryCollections{
		Caffeine: []models.CaffeineEntry{
			{ID: "1", Amount: 90, Timestamp: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), Date: "2026-01-05"},
		},
		Sleep: []models.SleepEntry{
			{ID: "2", Interval: models.Interval{StartTime: start, EndTime: start.Add(8 * time.Hour)}, Rating: 7, Date: "2026-01-05"},
		},
	}
}

func TestRunClearDataCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		confirmed   bool
		stdin       string
		wantCleared bool
		wantErr     error
	}{
		{name: "confirmed flag", confirmed: true, wantCleared: true},
		{name: "typed yes", stdin: "YES\n", wantCleared: true},
		{name: "typed no", stdin: "no\n", wantErr: ErrClearAborted},
		{name: "empty input", stdin: "", wantErr: ErrClearAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &clearerStub{collections: sampleCollections()}
			var stdout bytes.Buffer

			err := RunClearDataCommand(context.Background(), stub, tt.confirmed, strings.NewReader(tt.stdin), &stdout)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if stub.cleared != tt.wantCleared {
				t.Fatalf("expected cleared=%v, got %v", tt.wantCleared, stub.cleared)
			}
			if tt.wantCleared && !strings.Contains(stdout.String(), "Deleted 2 entries.") {
				t.Fatalf("unexpected output %q", stdout.String())
			}
		})
	}
}

func TestRunClearDataCommandWithNothingStored(t *testing.T) {
	t.Parallel()

	stub := &clearerStub{}
	var stdout bytes.Buffer
	if err := RunClearDataCommand(context.Background(), stub, false, nil, &stdout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.cleared || !strings.Contains(stdout.String(), "Nothing to clear.") {
		t.Fatalf("expected no-op, got cleared=%v output=%q", stub.cleared, stdout.String())
	}
}

func TestRunExportCommand(t *testing.T) {
	t.Parallel()

	exports := services.NewExportService(&clearerStub{collections: sampleCollections()}, time.UTC)

	var csvOutput bytes.Buffer
	if err := RunExportCommand(context.Background(), exports, ExportOptions{Location: time.UTC}, &csvOutput); err != nil {
		t.Fatalf("csv export failed: %v", err)
	}
	records, err := csv.NewReader(&csvOutput).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 || records[1][1] != "caffeine" || records[2][1] != "sleep" {
		t.Fatalf("unexpected csv records %#v", records)
	}

	var jsonOutput bytes.Buffer
	if err := RunExportCommand(context.Background(), exports, ExportOptions{Format: "JSON", From: "2026-01-06", Location: time.UTC}, &jsonOutput); err != nil {
		t.Fatalf("json export failed: %v", err)
	}
	if strings.TrimSpace(jsonOutput.String()) != "{\n  \"entries\": []\n}" {
		t.Fatalf("expected empty json export, got %q", jsonOutput.String())
	}

	if err := RunExportCommand(context.Background(), exports, ExportOptions{Format: "xml", Location: time.UTC}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected unsupported format error")
	}
	if err := RunExportCommand(context.Background(), exports, ExportOptions{From: "nope", Location: time.UTC}, &bytes.Buffer{}); !errors.Is(err, services.ErrExportFromDateInvalid) {
		t.Fatalf("expected invalid from date, got %v", err)
	}
}
