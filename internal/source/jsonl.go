package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/industrial-labels/qrtag/internal/record"
)

// loadJSONL reads one JSON object per line. Keys are taken in their
// literal order from the line, so the first record's key order stands in
// for the header row. Null values mean the field is absent from that
// record.
func (l *Loader) loadJSONL(limit int) ([]string, []record.Record, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	var (
		headers []string
		records []record.Record
	)

	scanner := bufio.NewScanner(file)

	// Increase buffer size for large JSON lines
	const maxCapacity = 10 * 1024 * 1024 // 10MB per line
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}
		if limit > 0 && len(records) >= limit {
			break
		}

		rec, err := decodeOrderedObject(line)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		if headers == nil {
			headers = rec.Fields()
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading source: %w", err)
	}

	return headers, records, nil
}

// decodeOrderedObject parses one JSON object keeping key order, which the
// stock map decoding would throw away.
func decodeOrderedObject(line []byte) (record.Record, error) {
	rec := record.New()

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return rec, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return rec, fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return rec, fmt.Errorf("expected object key, got %v", keyTok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return rec, err
		}
		if raw == nil {
			continue
		}
		rec.Set(key, coerceValue(raw))
	}

	return rec, nil
}

func coerceValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		// Nested arrays/objects are opaque to the label pipeline; carry
		// them as their compact JSON form.
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
