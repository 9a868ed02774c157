package source

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/industrial-labels/qrtag/internal/record"
	"github.com/parquet-go/parquet-go"
)

// loadParquet reads a flat parquet file. Each leaf column becomes a
// field; null values mean the field is absent from that record.
func (l *Loader) loadParquet(limit int) ([]string, []record.Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, nil, &InvalidInputError{Path: l.path, Reason: fmt.Sprintf("failed to open parquet: %v", err)}
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	fields := pf.Schema().Fields()
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = f.Name()
	}

	var records []record.Record
	buf := make([]parquet.Row, 128) // Read in batches

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()

		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				if limit > 0 && len(records) >= limit {
					break
				}
				records = append(records, parquetRecord(headers, row))
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					rows.Close()
					return nil, nil, fmt.Errorf("error reading parquet rows: %w", err)
				}
				break
			}
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		rows.Close()

		if limit > 0 && len(records) >= limit {
			break
		}
	}

	slog.Debug("Finished reading parquet file", "total_records", len(records))
	return headers, records, nil
}

func parquetRecord(headers []string, row parquet.Row) record.Record {
	rec := record.New()
	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= len(headers) || v.IsNull() {
			continue
		}
		rec.Set(headers[col], parquetString(v))
	}
	return rec
}

func parquetString(v parquet.Value) string {
	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	default:
		return v.String()
	}
}
