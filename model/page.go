package model

// Page represents a single page of a PDF document
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	// Glyphs holds one fragment per drawn character, in content-stream order.
	Glyphs []TextFragment

	// RawText holds the glyphs assembled into words and phrases.
	RawText []TextFragment

	// Rects holds the rectangles drawn on the page (cell borders, boxes).
	Rects []BBox

	// RawLines holds every ruling segment, including the edges of Rects.
	RawLines []Line
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number:   number,
		Width:    width,
		Height:   height,
		Glyphs:   make([]TextFragment, 0),
		RawText:  make([]TextFragment, 0),
		Rects:    make([]BBox, 0),
		RawLines: make([]Line, 0),
	}
}

// AddRect records a drawn rectangle and its four edges
func (p *Page) AddRect(b BBox) {
	p.Rects = append(p.Rects, b)
	p.RawLines = append(p.RawLines, RectEdges(b)...)
}

// HasRulings reports whether anything was drawn that could outline a table
func (p *Page) HasRulings() bool {
	return len(p.RawLines) > 0
}
