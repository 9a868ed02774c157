package label

// Fixed A6 card layout. All lengths are millimeters; font sizes are
// points. These are shared batch-wide and never vary per call.
const (
	pageWidth  = 105.0
	pageHeight = 148.0
	pageMargin = 2.0

	qrSide = 70.0

	labelColWidth = 25.0
	valueColWidth = 65.0
	rowHeight     = 5.0

	titleFontSize    = 10.0
	bodyFontSize     = 8.0
	footnoteFontSize = 3.0

	titleRowHeight    = 6.0
	footnoteRowHeight = 3.0
	sectionGap        = 3.0
	footnoteGap       = 2.0

	gridLineWidth = 0.2
)

// Label column fill and grid/footnote grey levels.
const (
	labelFillGrey = 211
	gridGrey      = 128
	footnoteGrey  = 128
)
