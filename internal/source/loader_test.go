package source

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempFile(t, "items.csv",
		"WOCO,ID,LOTE,PESO Kg\n"+
			"1001,14X00.004,241105-9246,50\n"+
			"1002,14X00.005,241105-9247,75\n")

	records, err := NewLoader(path, "WOCO").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	expected := []string{"WOCO", "ID", "LOTE", "PESO Kg"}
	if !reflect.DeepEqual(records[0].Fields(), expected) {
		t.Errorf("Expected fields %v, got %v", expected, records[0].Fields())
	}
	if got := records[0].Get("LOTE"); got != "241105-9246" {
		t.Errorf("Expected LOTE 241105-9246, got %q", got)
	}
	if got := records[1].Get("PESO Kg"); got != "75" {
		t.Errorf("Expected PESO Kg 75, got %q", got)
	}
}

func TestLoadCSVShortRowLacksTrailingFields(t *testing.T) {
	path := writeTempFile(t, "items.csv",
		"WOCO,ID,LOTE\n"+
			"1001,14X00.004\n")

	records, err := NewLoader(path, "WOCO").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if records[0].Has("LOTE") {
		t.Error("Expected LOTE to be absent, not set to a placeholder")
	}
	if got := records[0].Get("LOTE"); got != "" {
		t.Errorf("Expected empty lookup for absent field, got %q", got)
	}
}

func TestLoadRejectsEmptySource(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "header only", file: "items.csv", content: "WOCO,ID\n"},
		{name: "completely empty", file: "items.csv", content: ""},
		{name: "empty jsonl", file: "items.jsonl", content: "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, tt.file, tt.content)

			_, err := NewLoader(path, "WOCO").Load()
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("Expected InvalidInputError, got %T: %v", err, err)
			}
		})
	}
}

func TestLoadRejectsMissingMarkerColumn(t *testing.T) {
	path := writeTempFile(t, "items.csv",
		"ID,LOTE\n"+
			"14X00.004,241105-9246\n")

	_, err := NewLoader(path, "WOCO").Load()
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidInputError, got %T: %v", err, err)
	}
}

func TestLoadRejectsUnsupportedFormat(t *testing.T) {
	path := writeTempFile(t, "items.txt", "WOCO\n1001\n")

	_, err := NewLoader(path, "WOCO").Load()
	if err == nil {
		t.Fatal("Expected error for unsupported format")
	}
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		t.Error("Unsupported format should not be an InvalidInputError")
	}
}

func TestLoadJSONL(t *testing.T) {
	path := writeTempFile(t, "items.jsonl",
		`{"WOCO":"1001","ID":"14X00.004","PESO Kg":50,"activo":true,"nota":null}`+"\n"+
			`{"WOCO":"1002","ID":"14X00.005","PESO Kg":7.5,"activo":false}`+"\n")

	records, err := NewLoader(path, "WOCO").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	// Key order from the JSON line, null field absent.
	expected := []string{"WOCO", "ID", "PESO Kg", "activo"}
	if !reflect.DeepEqual(records[0].Fields(), expected) {
		t.Errorf("Expected fields %v, got %v", expected, records[0].Fields())
	}

	// All values coerced to strings.
	if got := records[0].Get("PESO Kg"); got != "50" {
		t.Errorf("Expected PESO Kg 50, got %q", got)
	}
	if got := records[1].Get("PESO Kg"); got != "7.5" {
		t.Errorf("Expected PESO Kg 7.5, got %q", got)
	}
	if got := records[0].Get("activo"); got != "true" {
		t.Errorf("Expected activo true, got %q", got)
	}
	if records[0].Has("nota") {
		t.Error("Expected null field to be absent")
	}
}

func TestLoadSampleLimit(t *testing.T) {
	path := writeTempFile(t, "items.csv",
		"WOCO,ID\n"+
			"1,a\n2,b\n3,c\n4,d\n5,e\n")

	records, err := NewLoader(path, "WOCO").LoadSample(3)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected 3 records, got %d", len(records))
	}

	all, err := NewLoader(path, "WOCO").LoadSample(0)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected all 5 records with no limit, got %d", len(all))
	}
}
