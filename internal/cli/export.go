package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/doze/internal/services"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

type ExportOptions struct {
	Format   string
	From     string
	To       string
	Location *time.Location
}

func RunExportCommand(ctx context.Context, exports *services.ExportService, options ExportOptions, stdout io.Writer) error {
	exportRange, err := services.ParseExportRange(options.From, options.To, options.Location)
	if err != nil {
		return fmt.Errorf("invalid export range: %w", err)
	}

	entries, err := exports.BuildEntries(ctx, exportRange)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(options.Format)) {
	case "", ExportFormatCSV:
		return exports.WriteCSV(stdout, entries)
	case ExportFormatJSON:
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{"entries": entries})
	default:
		return fmt.Errorf("unsupported export format %q", options.Format)
	}
}
