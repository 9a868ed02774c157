package payload

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/industrial-labels/qrtag/internal/record"
)

func testRecord() record.Record {
	rec := record.New()
	rec.Set("WOCO", "1001")
	rec.Set("ID", "14X00.004")
	rec.Set("LOTE", "241105-9246")
	rec.Set("PESO Kg", "50")
	return rec
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		fields   []string
		expected string
	}{
		{
			name:     "concatenates selected fields in order",
			fields:   []string{"ID", "LOTE", "PESO Kg"},
			expected: "AR-QR|14X00.004|241105-9246|50|",
		},
		{
			name:     "selection order wins over record order",
			fields:   []string{"LOTE", "ID"},
			expected: "AR-QR|241105-9246|14X00.004|",
		},
		{
			name:     "absent field keeps its position as an empty segment",
			fields:   []string{"ID", "MISSING", "PESO Kg"},
			expected: "AR-QR|14X00.004||50|",
		},
		{
			name:     "empty selection yields prefix and separator only",
			fields:   nil,
			expected: "AR-QR|",
		},
	}

	builder := New("AR-QR", "|", 10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := builder.Build(testRecord(), tt.fields)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	builder := New("AR-QR", "|", 10)
	fields := []string{"ID", "LOTE", "PESO Kg"}

	first := builder.Build(testRecord(), fields)
	second := builder.Build(testRecord(), fields)
	if first != second {
		t.Errorf("Expected identical payloads, got %q and %q", first, second)
	}
}

func TestBuildSegmentCount(t *testing.T) {
	builder := New("AR-QR", "|", 10)
	fields := []string{"ID", "MISSING", "LOTE", "ALSO MISSING"}

	data := builder.Build(testRecord(), fields)

	// Prefix segment + one segment per selected field + the empty segment
	// after the trailing separator.
	segments := strings.Split(data, "|")
	if len(segments) != len(fields)+2 {
		t.Errorf("Expected %d segments, got %d (%q)", len(fields)+2, len(segments), data)
	}
	if segments[0] != "AR-QR" {
		t.Errorf("Expected prefix segment AR-QR, got %q", segments[0])
	}
	if segments[len(segments)-1] != "" {
		t.Errorf("Expected trailing empty segment, got %q", segments[len(segments)-1])
	}
}

func TestRenderReturnsImageAndPayload(t *testing.T) {
	builder := New("AR-QR", "|", 10)
	fields := []string{"ID", "LOTE"}

	imgData, data, err := builder.Render(testRecord(), fields)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if expected := builder.Build(testRecord(), fields); data != expected {
		t.Errorf("Expected payload %q alongside image, got %q", expected, data)
	}

	img, err := png.Decode(bytes.NewReader(imgData))
	if err != nil {
		t.Fatalf("Rendered image is not valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != bounds.Dy() {
		t.Errorf("Expected square QR image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() == 0 {
		t.Error("Expected non-empty QR image")
	}
}

func TestRenderOversizedPayload(t *testing.T) {
	rec := record.New()
	rec.Set("BLOB", strings.Repeat("x", 4000))

	builder := New("AR-QR", "|", 10)
	_, data, err := builder.Render(rec, []string{"BLOB"})
	if err == nil {
		t.Fatal("Expected error for payload above QR capacity")
	}

	var renderErr *CodeRenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("Expected CodeRenderError, got %T: %v", err, err)
	}
	if renderErr.Payload != data {
		t.Error("Expected error to carry the offending payload")
	}
}
