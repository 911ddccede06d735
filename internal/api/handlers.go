package api

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/terraincognita07/doze/internal/services"
)

type Handler struct {
	entries     *services.EntryRepository
	summaries   *services.SummaryService
	exports     *services.ExportService
	location    *time.Location
	logger      *zap.Logger
	windowSize  int
	summaryDays int
	now         func() time.Time
	stackTrace  bool
}

type Dependencies struct {
	Entries     *services.EntryRepository
	Summaries   *services.SummaryService
	Exports     *services.ExportService
	Location    *time.Location
	Logger      *zap.Logger
	WindowSize  int
	SummaryDays int
	Now         func() time.Time
	// StackTrace makes the recover middleware print panic stacks.
	StackTrace bool
}

func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Entries == nil {
		return nil, errors.New("entry repository is required")
	}
	location := deps.Location
	if location == nil {
		location = deps.Entries.Location()
	}

	handler := &Handler{
		entries:     deps.Entries,
		summaries:   deps.Summaries,
		exports:     deps.Exports,
		location:    location,
		logger:      deps.Logger,
		windowSize:  deps.WindowSize,
		summaryDays: deps.SummaryDays,
		now:         deps.Now,
		stackTrace:  deps.StackTrace,
	}
	if handler.summaries == nil {
		handler.summaries = services.NewSummaryService(deps.Entries, location)
	}
	if handler.exports == nil {
		handler.exports = services.NewExportService(deps.Entries, location)
	}
	if handler.logger == nil {
		handler.logger = zap.NewNop()
	}
	if handler.windowSize <= 0 {
		handler.windowSize = services.DefaultChartWindowSize
	}
	if handler.summaryDays <= 0 {
		handler.summaryDays = defaultSummaryDays
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	return handler, nil
}

func (handler *Handler) today() time.Time {
	return handler.now().In(handler.location)
}
