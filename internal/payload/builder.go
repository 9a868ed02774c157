// Package payload builds the scannable code content for one record and
// renders it as a QR symbol.
//
// A payload is the fixed prefix tag, then each selected field's value, each
// followed by the separator: "AR-QR|14X00.004|241105-9246|50|". A field
// absent from a record contributes an empty segment so positions stay
// aligned across records with different field sets. Values are encoded
// verbatim; a value containing the separator character makes segment
// boundaries ambiguous for the scanner, which is a documented limitation
// of the label format, not something this package rewrites.
package payload

import (
	"fmt"
	"strings"

	"github.com/industrial-labels/qrtag/internal/record"
	qrcode "github.com/skip2/go-qrcode"
)

// CodeRenderError reports a payload the QR encoder rejected, normally
// because it exceeds the symbology's capacity at the configured
// error-correction level. The remedy is selecting fewer fields.
type CodeRenderError struct {
	Payload string
	Err     error
}

func (e *CodeRenderError) Error() string {
	return fmt.Sprintf("cannot encode payload (%d bytes): %v", len(e.Payload), e.Err)
}

func (e *CodeRenderError) Unwrap() error {
	return e.Err
}

// Builder assembles payloads and renders QR images. The zero value is not
// usable; construct with New.
type Builder struct {
	prefix     string
	separator  string
	moduleSize int
}

// New returns a Builder. moduleSize is the rendered pixel size of one QR
// module; the symbol version (and therefore image size) grows with the
// payload.
func New(prefix, separator string, moduleSize int) *Builder {
	return &Builder{
		prefix:     prefix,
		separator:  separator,
		moduleSize: moduleSize,
	}
}

// Build concatenates the selected fields of rec into the payload string.
// The result is deterministic for a given record and selection.
func (b *Builder) Build(rec record.Record, fields []string) string {
	var sb strings.Builder
	sb.WriteString(b.prefix)
	sb.WriteString(b.separator)
	for _, field := range fields {
		sb.WriteString(rec.Get(field))
		sb.WriteString(b.separator)
	}
	return sb.String()
}

// Render builds the payload for rec and encodes it as a QR symbol at
// error-correction level L with automatic version fit. It returns the PNG
// image bytes together with the literal payload string; the two belong
// together because the label footnote must echo exactly what was encoded.
func (b *Builder) Render(rec record.Record, fields []string) ([]byte, string, error) {
	data := b.Build(rec, fields)

	q, err := qrcode.New(data, qrcode.Low)
	if err != nil {
		return nil, data, &CodeRenderError{Payload: data, Err: err}
	}

	// Negative size renders each module at a fixed pixel size instead of
	// scaling to a fixed image size.
	png, err := q.PNG(-b.moduleSize)
	if err != nil {
		return nil, data, &CodeRenderError{Payload: data, Err: err}
	}

	return png, data, nil
}
