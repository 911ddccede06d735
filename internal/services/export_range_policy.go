package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ExportRange bounds an export by inclusive local date keys. Empty bounds
// are open.
type ExportRange struct {
	From string
	To   string
}

func (exportRange ExportRange) Contains(key string) bool {
	if key == "" {
		return false
	}
	if exportRange.From != "" && key < exportRange.From {
		return false
	}
	if exportRange.To != "" && key > exportRange.To {
		return false
	}
	return true
}

func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (ExportRange, error) {
	var exportRange ExportRange

	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		from, err := ParseDateKey(fromRaw, location)
		if err != nil {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		exportRange.From = from.Format(DateKeyLayout)
	}

	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		to, err := ParseDateKey(toRaw, location)
		if err != nil {
			return ExportRange{}, ErrExportToDateInvalid
		}
		exportRange.To = to.Format(DateKeyLayout)
	}

	if exportRange.From != "" && exportRange.To != "" && exportRange.To < exportRange.From {
		return ExportRange{}, ErrExportRangeInvalid
	}
	return exportRange, nil
}
