package source

import (
	"fmt"
	"log/slog"

	"github.com/industrial-labels/qrtag/internal/record"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads the first sheet of an Excel workbook. excelize returns
// every cell as its formatted string, which is exactly the coercion the
// pipeline wants.
func (l *Loader) loadXLSX(limit int) ([]string, []record.Record, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, nil, &InvalidInputError{Path: l.path, Reason: fmt.Sprintf("failed to open workbook: %v", err)}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Error("Unable to close workbook", "path", l.path, "err", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &InvalidInputError{Path: l.path, Reason: "workbook contains no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	headers := rows[0]
	var records []record.Record
	for _, cells := range rows[1:] {
		if limit > 0 && len(records) >= limit {
			break
		}
		records = append(records, buildRecord(headers, cells))
	}

	slog.Debug("Read XLSX sheet", "sheet", sheets[0], "rows", len(records))
	return headers, records, nil
}
