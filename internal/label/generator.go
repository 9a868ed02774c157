// Package label assembles the printable batch document: one fixed-size A6
// card per record, each carrying an optional title, the record's QR code,
// an attribute table, and a footnote echoing the encoded payload.
package label

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/industrial-labels/qrtag/internal/payload"
	"github.com/industrial-labels/qrtag/internal/profile"
	"github.com/industrial-labels/qrtag/internal/record"
)

// DocumentBuildError reports a failure of the final document assembly.
// No partial artifact accompanies it.
type DocumentBuildError struct {
	Err error
}

func (e *DocumentBuildError) Error() string {
	return fmt.Sprintf("failed to build label document: %v", e.Err)
}

func (e *DocumentBuildError) Unwrap() error {
	return e.Err
}

// Request is one self-contained generation call: the normalized records
// and the batch's ordered field selection.
type Request struct {
	Records []record.Record
	Fields  []string
}

// Diagnostic describes one record that was skipped during generation.
type Diagnostic struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result is the generated artifact plus per-record diagnostics. Pages can
// be smaller than the request's record count when records were skipped.
type Result struct {
	PDF     []byte
	Pages   int
	Skipped []Diagnostic
}

// Generator renders label batches. Safe to reuse across requests; each
// call owns its document buffer exclusively.
type Generator struct {
	profile profile.Profile
	codes   *payload.Builder
}

// New creates a Generator for the given profile.
func New(p profile.Profile) *Generator {
	return &Generator{
		profile: p,
		codes:   payload.New(p.Prefix, p.Separator, p.ModuleSize),
	}
}

// Generate renders one page per record, in input order. A record whose QR
// code cannot be rendered is skipped and reported in Result.Skipped; the
// rest of the batch continues. Failure to serialize the finished document
// is fatal for the whole request and yields a DocumentBuildError.
func (g *Generator) Generate(req Request) (*Result, error) {
	doc := newDocument()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	result := &Result{}
	for i, rec := range req.Records {
		png, data, err := g.codes.Render(rec, req.Fields)
		if err != nil {
			slog.Warn("Skipping record", "index", i, "err", err)
			result.Skipped = append(result.Skipped, Diagnostic{Index: i, Reason: err.Error()})
			continue
		}
		g.renderPage(doc, tr, i, rec, req.Fields, png, data)
	}

	if doc.PageCount() == 0 {
		return nil, &DocumentBuildError{
			Err: fmt.Errorf("no records could be rendered (%d skipped)", len(result.Skipped)),
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &DocumentBuildError{Err: err}
	}

	result.PDF = buf.Bytes()
	result.Pages = doc.PageCount()
	return result, nil
}

func newDocument() *fpdf.Fpdf {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	return doc
}

func (g *Generator) renderPage(doc *fpdf.Fpdf, tr func(string) string, index int, rec record.Record, fields []string, png []byte, data string) {
	doc.AddPage()

	if title, ok := rec.Lookup(g.profile.TitleField); ok {
		doc.SetFont("Helvetica", "B", titleFontSize)
		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(0, titleRowHeight, tr(title), "", 1, "C", false, 0, "")
	}
	doc.Ln(sectionGap)

	imageName := fmt.Sprintf("qr-%d", index)
	doc.RegisterImageOptionsReader(imageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	qrY := doc.GetY()
	doc.ImageOptions(imageName, (pageWidth-qrSide)/2, qrY, qrSide, qrSide, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	doc.SetY(qrY + qrSide + sectionGap)

	rows := attributeRows(rec, fields, g.profile.TitleField)
	if len(rows) > 0 {
		doc.SetFont("Helvetica", "", bodyFontSize)
		doc.SetTextColor(0, 0, 0)
		doc.SetFillColor(labelFillGrey, labelFillGrey, labelFillGrey)
		doc.SetDrawColor(gridGrey, gridGrey, gridGrey)
		doc.SetLineWidth(gridLineWidth)

		tableX := (pageWidth - labelColWidth - valueColWidth) / 2
		for _, row := range rows {
			doc.SetX(tableX)
			doc.CellFormat(labelColWidth, rowHeight, tr(capitalize(row[0])+":"), "1", 0, "R", true, 0, "")
			doc.CellFormat(valueColWidth, rowHeight, tr(row[1]), "1", 1, "L", false, 0, "")
		}
	}

	doc.Ln(footnoteGap)
	doc.SetFont("Helvetica", "I", footnoteFontSize)
	doc.SetTextColor(footnoteGrey, footnoteGrey, footnoteGrey)
	doc.CellFormat(0, footnoteRowHeight, tr("QR: "+data), "", 1, "C", false, 0, "")
}

// attributeRows orders the table: selected fields present in the record
// first, in selection order, then every remaining field except the title
// field, in record order.
func attributeRows(rec record.Record, fields []string, titleField string) [][2]string {
	selected := make(map[string]bool, len(fields))
	var rows [][2]string

	for _, f := range fields {
		selected[f] = true
		if v, ok := rec.Lookup(f); ok {
			rows = append(rows, [2]string{f, v})
		}
	}

	for _, f := range rec.Fields() {
		if selected[f] || f == titleField {
			continue
		}
		rows = append(rows, [2]string{f, rec.Get(f)})
	}

	return rows
}

// capitalize mirrors the label convention of the legacy tool: first rune
// upper, the rest lower ("PESO Kg" renders as "Peso kg").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}
