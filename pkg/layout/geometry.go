package layout

// =============================================================================
// Page Geometry - Physical Constants
// =============================================================================

// All dimensions are in points (72 per inch), applied consistently
// through the engine, the renderer, and the height estimators. The
// values mirror the IEEE conference template the exporter produces:
// US Letter, 0.75in margins, 9.5pt serif body text in two columns
// separated by a 0.25in gutter.

// Geometry holds the immutable physical page constants consumed by the
// normalizer, the height estimators, the paginator, and the renderer.
// Obtain one from Letter; the zero value is not usable.
type Geometry struct {
	// Page and margin dimensions.
	PageWidth  float64 // 612pt = 8.5in
	PageHeight float64 // 792pt = 11in
	Margin     float64 // 54pt = 0.75in, all four sides

	// Two-column body region.
	ColumnGap float64 // 18pt = 0.25in gutter

	// Font sizes and leadings.
	TitleSize      float64 // 24pt bold, centered
	TitleLeading   float64
	BodySize       float64 // 9.5pt serif
	BodyLeading    float64 // 10pt exact line spacing
	CaptionSize    float64 // 9pt
	CaptionLeading float64

	// Vertical spacing between elements.
	TitleSpacing      float64 // after the title block
	ParagraphSpacing  float64 // after body paragraphs
	HeadingSpacing    float64 // before section/subsection headings
	AuthorLineSpacing float64 // between author detail lines
	AuthorSpacing     float64 // after the author block
	FigureSpacing     float64 // around a figure image
	CaptionSpacing    float64 // after a figure caption

	// Figure constraints.
	MaxFigureHeight float64 // 288pt = 4.0in
}

// Letter returns the geometry of the IEEE two-column conference layout
// on US-Letter paper. These constants are the de facto file format the
// engine must honor: they must visually match the externally generated
// DOCX/PDF export.
func Letter() Geometry {
	return Geometry{
		PageWidth:  612,
		PageHeight: 792,
		Margin:     54,

		ColumnGap: 18,

		TitleSize:      24,
		TitleLeading:   28.8,
		BodySize:       9.5,
		BodyLeading:    10,
		CaptionSize:    9,
		CaptionLeading: 10,

		TitleSpacing:      12,
		ParagraphSpacing:  12,
		HeadingSpacing:    10,
		AuthorLineSpacing: 2,
		AuthorSpacing:     12,
		FigureSpacing:     12,
		CaptionSpacing:    12,

		MaxFigureHeight: 288,
	}
}

// ContentWidth returns the usable width between the left and right
// margins (504pt on Letter).
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// ContentHeight returns the usable height between the top and bottom
// margins (684pt on Letter).
func (g Geometry) ContentHeight() float64 {
	return g.PageHeight - 2*g.Margin
}

// ColumnWidth returns the width of one body column (243pt on Letter).
func (g Geometry) ColumnWidth() float64 {
	return (g.ContentWidth() - g.ColumnGap) / 2
}

// FigureWidth maps a named figure size to its display width. Unknown
// names fall back to the medium bucket, matching the exporter.
func (g Geometry) FigureWidth(size string) float64 {
	switch size {
	case "very-small":
		return 86.4 // 1.2in
	case "small":
		return 129.6 // 1.8in
	case "medium":
		return 180 // 2.5in
	case "large":
		return 230.4 // 3.2in
	default:
		return 180
	}
}
