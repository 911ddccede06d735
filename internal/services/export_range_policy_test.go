package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseExportRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    string
		to      string
		want    ExportRange
		wantErr error
	}{
		{name: "open range", want: ExportRange{}},
		{name: "both bounds", from: "2026-01-01", to: " 2026-01-31 ", want: ExportRange{From: "2026-01-01", To: "2026-01-31"}},
		{name: "single day", from: "2026-01-05", to: "2026-01-05", want: ExportRange{From: "2026-01-05", To: "2026-01-05"}},
		{name: "bad from", from: "01/05/2026", wantErr: ErrExportFromDateInvalid},
		{name: "bad to", to: "2026-13-01", wantErr: ErrExportToDateInvalid},
		{name: "inverted", from: "2026-02-01", to: "2026-01-01", wantErr: ErrExportRangeInvalid},
	}

	for _, tt := range tests {
		got, err := ParseExportRange(tt.from, tt.to, time.UTC)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s: expected %v, got %v", tt.name, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %#v, got %#v", tt.name, tt.want, got)
		}
	}
}

func TestExportRangeContains(t *testing.T) {
	t.Parallel()

	exportRange := ExportRange{From: "2026-01-02", To: "2026-01-04"}
	for key, want := range map[string]bool{
		"2026-01-01": false,
		"2026-01-02": true,
		"2026-01-04": true,
		"2026-01-05": false,
		"":           false,
	} {
		if got := exportRange.Contains(key); got != want {
			t.Fatalf("Contains(%q) = %v, want %v", key, got, want)
		}
	}
	if !(ExportRange{}).Contains("1999-12-31") {
		t.Fatal("expected open range to contain any date")
	}
}
