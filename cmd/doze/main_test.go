package main

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/doze/internal/config"
)

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args        []string
		wantCommand string
		wantRest    []string
	}{
		{args: nil, wantCommand: "serve"},
		{args: []string{"export", "--format", "json"}, wantCommand: "export", wantRest: []string{"--format", "json"}},
		{args: []string{"clear-data"}, wantCommand: "clear-data", wantRest: []string{}},
	}

	for _, tt := range tests {
		command, rest := splitCommand(tt.args)
		if command != tt.wantCommand {
			t.Fatalf("splitCommand(%v) command = %q, want %q", tt.args, command, tt.wantCommand)
		}
		if len(rest) != 0 || len(tt.wantRest) != 0 {
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Fatalf("splitCommand(%v) rest = %v, want %v", tt.args, rest, tt.wantRest)
			}
		}
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	t.Parallel()

	err := run([]string{"migrate"}, nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExportAndClearWithMemoryStorage(t *testing.T) {
	deps, err := setup(context.Background(), config.Config{
		StorageBackend: config.BackendMemory,
		Timezone:       "UTC",
		SnowflakeNode:  3,
		LoggerLevel:    "ERROR",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { _ = deps.closeStore() })

	timestamp := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	if _, err := deps.entries.SaveCaffeine(context.Background(), 75, timestamp); err != nil {
		t.Fatalf("seed caffeine: %v", err)
	}

	var exported bytes.Buffer
	if err := runExport(deps, []string{"--format", "csv", "--from", "2026-02-01"}, &exported); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(exported.String(), "2026-02-01,caffeine,") {
		t.Fatalf("expected caffeine row in export, got %q", exported.String())
	}

	var cleared bytes.Buffer
	if err := runClearData(deps, []string{"--yes"}, nil, &cleared); err != nil {
		t.Fatalf("clear-data: %v", err)
	}
	if !strings.Contains(cleared.String(), "Deleted 1 entries.") {
		t.Fatalf("unexpected clear output %q", cleared.String())
	}

	all, err := deps.entries.LoadAll(context.Background())
	if err != nil || all.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d entries, err %v", all.Len(), err)
	}
}
