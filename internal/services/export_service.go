package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/terraincognita07/doze/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Type",
	"ID",
	"Start",
	"End",
	"Amount (mg)",
	"Duration (hours)",
	"Rating",
}

type ExportService struct {
	entries  EntryCollectionsReader
	location *time.Location
}

type ExportSummary struct {
	TotalEntries    int    `json:"total_entries"`
	CaffeineEntries int    `json:"caffeine_entries"`
	SleepEntries    int    `json:"sleep_entries"`
	NapEntries      int    `json:"nap_entries"`
	HasData         bool   `json:"has_data"`
	DateFrom        string `json:"date_from"`
	DateTo          string `json:"date_to"`
}

// ExportEntry is one exported record. Caffeine rows leave End, Duration
// and Rating empty, interval rows leave AmountMg empty.
type ExportEntry struct {
	Date          string           `json:"date"`
	Type          models.EntryType `json:"type"`
	ID            string           `json:"id"`
	Start         time.Time        `json:"start"`
	End           *time.Time       `json:"end,omitempty"`
	AmountMg      *int             `json:"amount_mg,omitempty"`
	DurationHours *float64         `json:"duration_hours,omitempty"`
	Rating        *int             `json:"rating,omitempty"`
}

func NewExportService(entries EntryCollectionsReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{
		entries:  entries,
		location: location,
	}
}

// BuildEntries returns the entries inside exportRange, oldest first.
func (service *ExportService) BuildEntries(ctx context.Context, exportRange ExportRange) ([]ExportEntry, error) {
	all, err := service.entries.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ExportEntry, 0, all.Len())
	for _, entry := range all.Caffeine {
		date := entryDateKey(entry.Date, entry.Timestamp, service.location)
		if !exportRange.Contains(date) {
			continue
		}
		amount := entry.Amount
		result = append(result, ExportEntry{
			Date:     date,
			Type:     models.EntryTypeCaffeine,
			ID:       entry.ID,
			Start:    entry.Timestamp,
			AmountMg: &amount,
		})
	}
	for _, entry := range all.Sleep {
		if exported, ok := service.intervalEntry(entry, exportRange); ok {
			result = append(result, exported)
		}
	}
	for _, entry := range all.Naps {
		if exported, ok := service.intervalEntry(models.SleepEntry(entry), exportRange); ok {
			exported.Type = models.EntryTypeNap
			result = append(result, exported)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start.Before(result[j].Start)
	})
	return result, nil
}

func (service *ExportService) intervalEntry(entry models.SleepEntry, exportRange ExportRange) (ExportEntry, bool) {
	date := entryDateKey(entry.Date, entry.StartTime, service.location)
	if !exportRange.Contains(date) {
		return ExportEntry{}, false
	}
	end := entry.EndTime
	hours := durationHours(entry.Interval)
	rating := entry.Rating
	return ExportEntry{
		Date:          date,
		Type:          models.EntryTypeSleep,
		ID:            entry.ID,
		Start:         entry.StartTime,
		End:           &end,
		DurationHours: &hours,
		Rating:        &rating,
	}, true
}

func (service *ExportService) BuildSummary(ctx context.Context, exportRange ExportRange) (ExportSummary, error) {
	entries, err := service.BuildEntries(ctx, exportRange)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(entries) == 0 {
		return ExportSummary{}, nil
	}

	summary := ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		DateFrom:     entries[0].Date,
		DateTo:       entries[0].Date,
	}
	for _, entry := range entries {
		switch entry.Type {
		case models.EntryTypeCaffeine:
			summary.CaffeineEntries++
		case models.EntryTypeSleep:
			summary.SleepEntries++
		case models.EntryTypeNap:
			summary.NapEntries++
		}
		if entry.Date < summary.DateFrom {
			summary.DateFrom = entry.Date
		}
		if entry.Date > summary.DateTo {
			summary.DateTo = entry.Date
		}
	}
	return summary, nil
}

func (service *ExportService) WriteCSV(writer io.Writer, entries []ExportEntry) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportCSVHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		if err := csvWriter.Write(service.csvRow(entry)); err != nil {
			return fmt.Errorf("write csv row %s: %w", entry.ID, err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (service *ExportService) csvRow(entry ExportEntry) []string {
	row := []string{
		entry.Date,
		string(entry.Type),
		entry.ID,
		entry.Start.In(service.location).Format(time.RFC3339),
		"",
		"",
		"",
		"",
	}
	if entry.End != nil {
		row[4] = entry.End.In(service.location).Format(time.RFC3339)
	}
	if entry.AmountMg != nil {
		row[5] = strconv.Itoa(*entry.AmountMg)
	}
	if entry.DurationHours != nil {
		row[6] = strconv.FormatFloat(*entry.DurationHours, 'f', 2, 64)
	}
	if entry.Rating != nil {
		row[7] = strconv.Itoa(*entry.Rating)
	}
	return row
}

func BuildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("doze-export-%s.%s", now.Format(DateKeyLayout), extension)
}
