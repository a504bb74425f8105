package reader

import (
	"github.com/ledongthuc/pdf"

	"github.com/tsawler/rostermerge/model"
)

// layoutGlyphs converts library text items into positioned glyphs. Runs of
// zero-width glyphs sharing one origin are advanced by estimated widths.
func layoutGlyphs(items []pdf.Text) []model.TextFragment {
	glyphs := make([]model.TextFragment, 0, len(items))

	var runX, runY, cursor float64
	inRun := false

	for _, item := range items {
		x, w := item.X, item.W

		if w <= 0 {
			if inRun && item.X == runX && item.Y == runY {
				x = cursor
			} else {
				runX, runY = item.X, item.Y
				inRun = true
			}
			w = estimateWidth(item.S, item.FontSize)
			cursor = x + w
		} else {
			inRun = false
		}

		glyphs = append(glyphs, model.TextFragment{
			Text:     item.S,
			BBox:     model.NewBBox(x, item.Y, w, item.FontSize),
			FontSize: item.FontSize,
			FontName: item.Font,
		})
	}

	return glyphs
}

// estimateWidth approximates a glyph advance from Helvetica proportions
func estimateWidth(s string, fontSize float64) float64 {
	switch {
	case s == " ":
		return fontSize * 0.278
	case s == "i" || s == "l" || s == "j" || s == "." || s == "," || s == ":" || s == "I":
		return fontSize * 0.25
	case s == "m" || s == "w" || s == "M" || s == "W" || s == "@":
		return fontSize * 0.85
	case len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z':
		return fontSize * 0.667
	default:
		return fontSize * 0.556
	}
}
