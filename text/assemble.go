package text

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/rostermerge/model"
)

// ColumnGap is the gap, in space widths, beyond which two glyphs on the same
// line belong to different fragments.
const ColumnGap = 3.0

// Assemble merges glyphs into word and phrase fragments. Fragments are
// returned line by line from the top of the page, in reading order within
// each line. Whitespace-only fragments are dropped.
func Assemble(glyphs []model.TextFragment) []model.TextFragment {
	result := make([]model.TextFragment, 0)

	for _, line := range groupFragmentsByLine(glyphs) {
		dir := detectLineDirection(line)
		ordered := reorderFragmentsForReading(line, dir)

		var sb strings.Builder
		var current model.TextFragment
		flush := func() {
			s := norm.NFC.String(strings.TrimSpace(sb.String()))
			if s != "" {
				current.Text = s
				result = append(result, current)
			}
			sb.Reset()
		}

		for i, g := range ordered {
			if i == 0 {
				current = g
				sb.WriteString(g.Text)
				continue
			}

			prev := ordered[i-1]
			gap := calculateHorizontalDistance(prev, g, dir)
			if gap > getSpaceWidth(prev.FontSize)*ColumnGap {
				flush()
				current = g
				sb.WriteString(g.Text)
				continue
			}

			if shouldInsertSpace(prev, g, gap) {
				sb.WriteString(" ")
			}
			sb.WriteString(g.Text)
			current.BBox = current.BBox.Union(g.BBox)
		}
		flush()
	}

	return result
}

// Join renders glyphs as one string. Lines are separated by "\n" and
// leading and trailing whitespace is removed from each line.
func Join(glyphs []model.TextFragment) string {
	lines := groupFragmentsByLine(glyphs)
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		dir := detectLineDirection(line)
		ordered := reorderFragmentsForReading(line, dir)

		var sb strings.Builder
		for i, g := range ordered {
			if i > 0 {
				prev := ordered[i-1]
				if shouldInsertSpace(prev, g, calculateHorizontalDistance(prev, g, dir)) {
					sb.WriteString(" ")
				}
			}
			sb.WriteString(g.Text)
		}

		if s := strings.TrimSpace(sb.String()); s != "" {
			out = append(out, s)
		}
	}

	return norm.NFC.String(strings.Join(out, "\n"))
}

// groupFragmentsByLine groups fragments into lines based on their baseline,
// topmost line first.
func groupFragmentsByLine(fragments []model.TextFragment) [][]model.TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y > sorted[j].BBox.Y
	})

	lines := make([][]model.TextFragment, 0)
	currentLine := []model.TextFragment{sorted[0]}
	baseline := sorted[0].BBox.Y

	for _, frag := range sorted[1:] {
		if abs(baseline-frag.BBox.Y) <= lineTolerance(currentLine[0]) {
			currentLine = append(currentLine, frag)
			continue
		}
		lines = append(lines, currentLine)
		currentLine = []model.TextFragment{frag}
		baseline = frag.BBox.Y
	}

	return append(lines, currentLine)
}

func lineTolerance(frag model.TextFragment) float64 {
	h := frag.BBox.Height
	if h <= 0 {
		h = frag.FontSize
	}
	if h <= 0 {
		h = 1
	}
	return h * 0.5
}

// detectLineDirection determines the dominant direction of a line
func detectLineDirection(fragments []model.TextFragment) Direction {
	var sb strings.Builder
	for _, frag := range fragments {
		sb.WriteString(frag.Text)
	}
	if DetectDirection(sb.String()) == RTL {
		return RTL
	}
	return LTR
}

// reorderFragmentsForReading sorts a copy of the line by X coordinate,
// descending for RTL lines.
func reorderFragmentsForReading(fragments []model.TextFragment, lineDir Direction) []model.TextFragment {
	ordered := make([]model.TextFragment, len(fragments))
	copy(ordered, fragments)

	sort.SliceStable(ordered, func(i, j int) bool {
		if lineDir == RTL {
			return ordered[i].BBox.X > ordered[j].BBox.X
		}
		return ordered[i].BBox.X < ordered[j].BBox.X
	})

	return ordered
}

// calculateHorizontalDistance calculates the gap between two fragments
// accounting for text direction
func calculateHorizontalDistance(frag, nextFrag model.TextFragment, lineDir Direction) float64 {
	if lineDir == RTL {
		return frag.BBox.Left() - nextFrag.BBox.Right()
	}
	return nextFrag.BBox.Left() - frag.BBox.Right()
}

// shouldInsertSpace determines if a space should be inserted between two
// fragments based on the horizontal gap and font size
func shouldInsertSpace(frag, nextFrag model.TextFragment, horizontalDist float64) bool {
	// The stream already carries the space
	if strings.HasSuffix(frag.Text, " ") || strings.HasPrefix(nextFrag.Text, " ") {
		return false
	}

	if horizontalDist < 0 || horizontalDist < frag.FontSize*0.05 {
		return false
	}

	// Insert space if gap is >= 50% of a space character width
	return horizontalDist >= getSpaceWidth(frag.FontSize)*0.5
}

// getSpaceWidth estimates the width of a space as 25% of the font size
func getSpaceWidth(fontSize float64) float64 {
	if fontSize <= 0 {
		fontSize = 10
	}
	return fontSize * 0.25
}

// abs returns the absolute value of a float64
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
