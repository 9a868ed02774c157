package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()

	if p.MarkerColumn != "WOCO" {
		t.Errorf("Expected marker column WOCO, got %q", p.MarkerColumn)
	}
	if p.TitleField != "nombre" {
		t.Errorf("Expected title field nombre, got %q", p.TitleField)
	}
	if p.Prefix != "AR-QR" || p.Separator != "|" {
		t.Errorf("Expected AR-QR / | payload settings, got %q / %q", p.Prefix, p.Separator)
	}
	if p.ModuleSize != 10 {
		t.Errorf("Expected module size 10, got %d", p.ModuleSize)
	}
	if len(p.Fields) == 0 {
		t.Error("Expected a default field selection")
	}
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "marker_column: SKU\nfields:\n  - SKU\n  - BATCH\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if p.MarkerColumn != "SKU" {
		t.Errorf("Expected overridden marker column SKU, got %q", p.MarkerColumn)
	}
	if !reflect.DeepEqual(p.Fields, []string{"SKU", "BATCH"}) {
		t.Errorf("Expected overridden fields, got %v", p.Fields)
	}

	// Unset fields keep their defaults.
	if p.TitleField != "nombre" || p.Separator != "|" || p.ModuleSize != 10 {
		t.Errorf("Expected defaults for unset fields, got %+v", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing profile file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("fields: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for malformed YAML")
	}
}
