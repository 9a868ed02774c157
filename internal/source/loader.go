// Package source loads tabular label sources and normalizes them into
// record.Record sequences. Supported formats are keyed on file extension:
// .xlsx, .csv, .jsonl/.json (one object per line), and .parquet.
//
// The validation here is a gate, not a schema check: a source is rejected
// only when it yields zero rows or is missing the required marker column.
// Column-level semantics stay with the caller.
package source

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/industrial-labels/qrtag/internal/record"
)

// InvalidInputError reports a source that is not processable at all:
// empty, missing the marker column, or structurally unreadable.
type InvalidInputError struct {
	Path   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Reason)
}

// Loader reads one tabular source file.
type Loader struct {
	path   string
	marker string
}

// NewLoader creates a loader for path. markerColumn must appear in the
// source headers for the input to validate.
func NewLoader(path, markerColumn string) *Loader {
	return &Loader{
		path:   path,
		marker: markerColumn,
	}
}

// Load reads and normalizes every row. All cell values are coerced to
// their string form; row and column order are preserved.
func (l *Loader) Load() ([]record.Record, error) {
	return l.load(0)
}

// LoadSample loads at most limit rows (useful for previews). limit <= 0
// means no limit.
func (l *Loader) LoadSample(limit int) ([]record.Record, error) {
	return l.load(limit)
}

func (l *Loader) load(limit int) ([]record.Record, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	var (
		headers []string
		records []record.Record
		err     error
	)

	switch ext {
	case ".xlsx":
		headers, records, err = l.loadXLSX(limit)
	case ".csv":
		headers, records, err = l.loadCSV(limit)
	case ".jsonl", ".json":
		headers, records, err = l.loadJSONL(limit)
	case ".parquet":
		headers, records, err = l.loadParquet(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .xlsx, .csv, .jsonl, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := l.validate(headers, records); err != nil {
		return nil, err
	}

	slog.Debug("Source loaded", "path", l.path, "format", ext, "rows", len(records), "columns", len(headers))
	return records, nil
}

func (l *Loader) validate(headers []string, records []record.Record) error {
	if len(records) == 0 {
		return &InvalidInputError{Path: l.path, Reason: "source contains no data rows"}
	}

	for _, h := range headers {
		if h == l.marker {
			return nil
		}
	}
	return &InvalidInputError{
		Path:   l.path,
		Reason: fmt.Sprintf("required column %q not found in headers", l.marker),
	}
}

// buildRecord pairs one raw row with the header set. Rows shorter than
// the header list simply lack the trailing fields; no placeholder is
// inserted.
func buildRecord(headers []string, cells []string) record.Record {
	rec := record.New()
	for i, h := range headers {
		if h == "" || i >= len(cells) {
			continue
		}
		rec.Set(h, cells[i])
	}
	return rec
}
