package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/industrial-labels/qrtag/internal/record"
)

// loadCSV reads a comma-separated source. The first row is the header
// row. Ragged rows are allowed; short rows lack their trailing fields.
func (l *Loader) loadCSV(limit int) ([]string, []record.Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, &InvalidInputError{Path: l.path, Reason: fmt.Sprintf("failed to read header row: %v", err)}
	}

	var records []record.Record
	for {
		if limit > 0 && len(records) >= limit {
			break
		}

		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading csv: %w", err)
		}
		records = append(records, buildRecord(headers, cells))
	}

	return headers, records, nil
}
