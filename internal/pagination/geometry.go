package pagination

// Geometry holds the physical page constants in points (1/72 inch). All
// content budgets derive from these; nothing downstream hard-codes a height.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	// Padding is applied on all four page edges
	Padding float64
	// HeaderHeight is reserved on page 1 only
	HeaderHeight float64
	// FooterHeight is reserved on every page
	FooterHeight float64
	// LineHeight is the spacing of ruled answer lines
	LineHeight float64
	// SafetyBuffer absorbs measurement rounding differences between the
	// measurement pass and the final render
	SafetyBuffer float64
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
)

// DefaultGeometry returns the A4 defaults
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    PageSizeA4Width,
		PageHeight:   PageSizeA4Height,
		Padding:      36,
		HeaderHeight: 110,
		FooterHeight: 28,
		LineHeight:   24,
		SafetyBuffer: 6,
	}
}

// ContentWidth returns the horizontal space available to items
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Padding
}

// ContentHeight returns the vertical budget for the given 1-indexed page.
// Page 1 additionally reserves the document header block.
func (g Geometry) ContentHeight(pageNumber int) float64 {
	h := g.PageHeight - 2*g.Padding - g.FooterHeight - g.SafetyBuffer
	if pageNumber == 1 {
		h -= g.HeaderHeight
	}
	return h
}
