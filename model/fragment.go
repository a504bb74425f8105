package model

import "math"

// TextFragment is a run of text with its position on the page. Depending on
// the producer it holds a single glyph or an assembled word/phrase.
type TextFragment struct {
	Text     string
	BBox     BBox
	FontSize float64
	FontName string
}

// Line represents a ruling segment. Rectangles drawn on the page are split
// into their four edges, each with IsRect set.
type Line struct {
	Start  Point
	End    Point
	IsRect bool
}

// Length returns the segment length
func (l Line) Length() float64 {
	return l.Start.Distance(l.End)
}

// IsHorizontal reports whether the segment is horizontal within tolerance
func (l Line) IsHorizontal(tolerance float64) bool {
	return math.Abs(l.End.Y-l.Start.Y) <= tolerance && math.Abs(l.End.X-l.Start.X) > tolerance
}

// IsVertical reports whether the segment is vertical within tolerance
func (l Line) IsVertical(tolerance float64) bool {
	return math.Abs(l.End.X-l.Start.X) <= tolerance && math.Abs(l.End.Y-l.Start.Y) > tolerance
}

// RectEdges splits a rectangle into its bottom, top, left and right edges.
func RectEdges(b BBox) []Line {
	bl := Point{X: b.Left(), Y: b.Bottom()}
	br := Point{X: b.Right(), Y: b.Bottom()}
	tl := Point{X: b.Left(), Y: b.Top()}
	tr := Point{X: b.Right(), Y: b.Top()}
	return []Line{
		{Start: bl, End: br, IsRect: true},
		{Start: tl, End: tr, IsRect: true},
		{Start: bl, End: tl, IsRect: true},
		{Start: br, End: tr, IsRect: true},
	}
}
