package tables

import (
	"math"
	"sort"

	"github.com/tsawler/rostermerge/model"
	"github.com/tsawler/rostermerge/text"
)

// LatticeDetector detects tables outlined by ruled cells. Each drawn cell
// rectangle is mapped onto a grid built from the aligned cell edges;
// positions no cell starts at (the tail of a merged cell, or a gap in the
// ruling) are null.
type LatticeDetector struct {
	config Config
}

// NewLatticeDetector creates a lattice detector. Single-row and
// single-column tables are accepted.
func NewLatticeDetector() *LatticeDetector {
	config := DefaultConfig()
	config.MinRows = 1
	config.MinCols = 1
	config.MinConfidence = 0
	return &LatticeDetector{config: config}
}

// Name returns the detector's identifier ("lattice").
func (d *LatticeDetector) Name() string {
	return "lattice"
}

// Configure sets the detector configuration.
func (d *LatticeDetector) Configure(config Config) error {
	d.config = config
	return nil
}

// GridHypothesis represents a table grid built from one group of touching cells
type GridHypothesis struct {
	// Bounding box of the grid
	BBox model.BBox

	// Horizontal line positions (Y coordinates, sorted descending)
	HorizontalLines []float64

	// Vertical line positions (X coordinates, sorted ascending)
	VerticalLines []float64

	// Confidence score (0-1)
	Confidence float64

	// Number of rows and columns
	Rows int
	Cols int

	// The ruled cells the grid was built from
	Cells []model.BBox
}

// AlignedLineGroup represents a group of lines aligned on an axis
type AlignedLineGroup struct {
	// Position on the alignment axis (X for vertical lines, Y for horizontal)
	Position float64

	// Lines in this group
	Lines []model.Line

	// Total coverage (sum of line lengths)
	TotalLength float64

	// Span of the lines (min to max on the perpendicular axis)
	MinExtent float64
	MaxExtent float64
}

// Detect finds ruled tables on a page.
func (d *LatticeDetector) Detect(page *model.Page) ([]*model.Table, error) {
	cells := d.cellRects(page.Rects)
	if len(cells) == 0 {
		return nil, nil
	}

	var found []*model.Table
	for _, group := range d.groupCells(cells) {
		h := d.buildHypothesis(group)
		if h == nil {
			continue
		}

		table := d.buildTable(h, page.Glyphs)
		if table.RowCount() < d.config.MinRows || table.ColCount() < d.config.MinCols {
			continue
		}
		if table.Confidence < d.config.MinConfidence {
			continue
		}
		found = append(found, table)
	}

	numberTables(page, found)
	return found, nil
}

// cellRects drops rectangles too small to be cells, duplicates, and frames
// that enclose other rectangles.
func (d *LatticeDetector) cellRects(rects []model.BBox) []model.BBox {
	tol := d.config.AlignmentTolerance

	candidates := make([]model.BBox, 0, len(rects))
	for _, r := range rects {
		if r.Width < d.config.MinCellSize || r.Height < d.config.MinCellSize {
			continue
		}
		duplicate := false
		for _, c := range candidates {
			if sameRect(r, c, tol) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			candidates = append(candidates, r)
		}
	}

	cells := make([]model.BBox, 0, len(candidates))
	for i, r := range candidates {
		frame := false
		for j, other := range candidates {
			if i != j && encloses(r, other, tol) {
				frame = true
				break
			}
		}
		if !frame {
			cells = append(cells, r)
		}
	}

	return cells
}

func sameRect(a, b model.BBox, tol float64) bool {
	return math.Abs(a.Left()-b.Left()) <= tol && math.Abs(a.Right()-b.Right()) <= tol &&
		math.Abs(a.Bottom()-b.Bottom()) <= tol && math.Abs(a.Top()-b.Top()) <= tol
}

// encloses reports whether outer contains inner and is strictly larger
func encloses(outer, inner model.BBox, tol float64) bool {
	return inner.Left() >= outer.Left()-tol && inner.Right() <= outer.Right()+tol &&
		inner.Bottom() >= outer.Bottom()-tol && inner.Top() <= outer.Top()+tol &&
		inner.Width*inner.Height < outer.Width*outer.Height
}

// groupCells partitions cells into groups of transitively touching cells
func (d *LatticeDetector) groupCells(cells []model.BBox) [][]model.BBox {
	parent := make([]int, len(cells))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range cells {
		grown := cells[i].Expand(d.config.AlignmentTolerance)
		for j := i + 1; j < len(cells); j++ {
			if grown.Intersects(cells[j]) {
				parent[find(i)] = find(j)
			}
		}
	}

	index := make(map[int]int)
	var groups [][]model.BBox
	for i, c := range cells {
		root := find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], c)
	}

	return groups
}

// buildHypothesis aligns the edges of a cell group into row and column
// boundaries.
func (d *LatticeDetector) buildHypothesis(cells []model.BBox) *GridHypothesis {
	var horizontals, verticals []model.Line
	bbox := cells[0]
	for _, c := range cells {
		bbox = bbox.Union(c)
		for _, edge := range model.RectEdges(c) {
			if edge.IsHorizontal(d.config.AlignmentTolerance) {
				horizontals = append(horizontals, edge)
			} else if edge.IsVertical(d.config.AlignmentTolerance) {
				verticals = append(verticals, edge)
			}
		}
	}

	hGroups := d.groupAlignedLines(horizontals, true)
	vGroups := d.groupAlignedLines(verticals, false)
	if len(hGroups) < 2 || len(vGroups) < 2 {
		return nil
	}

	h := &GridHypothesis{
		BBox:            bbox,
		HorizontalLines: make([]float64, len(hGroups)),
		VerticalLines:   make([]float64, len(vGroups)),
		Rows:            len(hGroups) - 1,
		Cols:            len(vGroups) - 1,
		Cells:           cells,
	}
	for i, g := range hGroups {
		h.HorizontalLines[i] = g.Position
	}
	for i, g := range vGroups {
		h.VerticalLines[i] = g.Position
	}

	// Top to bottom in PDF coordinates
	sort.Sort(sort.Reverse(sort.Float64Slice(h.HorizontalLines)))
	sort.Float64s(h.VerticalLines)

	h.Confidence = d.calculateConfidence(h, hGroups, vGroups)
	return h
}

// groupAlignedLines groups lines that are aligned on the same axis
func (d *LatticeDetector) groupAlignedLines(lines []model.Line, isHorizontal bool) []AlignedLineGroup {
	if len(lines) == 0 {
		return nil
	}

	positions := make([]float64, len(lines))
	for i, line := range lines {
		if isHorizontal {
			positions[i] = (line.Start.Y + line.End.Y) / 2
		} else {
			positions[i] = (line.Start.X + line.End.X) / 2
		}
	}

	indices := make([]int, len(lines))
	for i := range indices {
		indices[i] = i
	}
	sort.Slice(indices, func(i, j int) bool {
		return positions[indices[i]] < positions[indices[j]]
	})

	var groups []AlignedLineGroup
	currentGroup := AlignedLineGroup{
		Position: positions[indices[0]],
		Lines:    []model.Line{lines[indices[0]]},
	}

	for _, idx := range indices[1:] {
		pos := positions[idx]

		if pos-currentGroup.Position <= d.config.AlignmentTolerance {
			currentGroup.Lines = append(currentGroup.Lines, lines[idx])
			// Running average keeps the group centred
			currentGroup.Position = (currentGroup.Position*float64(len(currentGroup.Lines)-1) + pos) / float64(len(currentGroup.Lines))
			continue
		}

		finalizeGroup(&currentGroup, isHorizontal)
		groups = append(groups, currentGroup)
		currentGroup = AlignedLineGroup{
			Position: pos,
			Lines:    []model.Line{lines[idx]},
		}
	}

	finalizeGroup(&currentGroup, isHorizontal)
	return append(groups, currentGroup)
}

// finalizeGroup calculates final metrics for an aligned line group
func finalizeGroup(group *AlignedLineGroup, isHorizontal bool) {
	group.TotalLength = 0
	group.MinExtent = math.MaxFloat64
	group.MaxExtent = -math.MaxFloat64

	for _, line := range group.Lines {
		group.TotalLength += line.Length()

		var minVal, maxVal float64
		if isHorizontal {
			minVal = math.Min(line.Start.X, line.End.X)
			maxVal = math.Max(line.Start.X, line.End.X)
		} else {
			minVal = math.Min(line.Start.Y, line.End.Y)
			maxVal = math.Max(line.Start.Y, line.End.Y)
		}

		group.MinExtent = math.Min(group.MinExtent, minVal)
		group.MaxExtent = math.Max(group.MaxExtent, maxVal)
	}
}

// buildTable places every ruled cell at the slot of its top-left corner and
// fills it with the glyphs centred inside it.
func (d *LatticeDetector) buildTable(h *GridHypothesis, glyphs []model.TextFragment) *model.Table {
	table := model.NewNullTable(h.Rows, h.Cols)
	used := make([]bool, len(glyphs))

	for _, c := range h.Cells {
		row := nearestIndex(h.HorizontalLines, c.Top())
		col := nearestIndex(h.VerticalLines, c.Left())
		if row >= h.Rows || col >= h.Cols {
			continue
		}
		if !table.Rows[row][col].Null {
			continue
		}

		var inside []model.TextFragment
		for i, g := range glyphs {
			if !used[i] && c.Contains(g.BBox.Center()) {
				inside = append(inside, g)
				used[i] = true
			}
		}

		table.Rows[row][col] = model.Cell{
			Text:    text.Join(inside),
			BBox:    c,
			RowSpan: max(1, nearestIndex(h.HorizontalLines, c.Bottom())-row),
			ColSpan: max(1, nearestIndex(h.VerticalLines, c.Right())-col),
		}
	}

	compact(table)
	table.BBox = h.BBox
	table.HasGrid = true
	table.Confidence = h.Confidence
	return table
}

// nearestIndex returns the index of the boundary closest to v
func nearestIndex(boundaries []float64, v float64) int {
	best := 0
	for i, b := range boundaries {
		if math.Abs(b-v) < math.Abs(boundaries[best]-v) {
			best = i
		}
	}
	return best
}

// compact removes rows and columns in which no cell starts
func compact(table *model.Table) {
	rows := table.Rows[:0]
	for _, row := range table.Rows {
		for _, cell := range row {
			if !cell.Null {
				rows = append(rows, row)
				break
			}
		}
	}
	table.Rows = rows

	width := table.ColCount()
	keep := make([]bool, width)
	for _, row := range table.Rows {
		for j, cell := range row {
			if !cell.Null {
				keep[j] = true
			}
		}
	}

	for i, row := range table.Rows {
		kept := make([]model.Cell, 0, width)
		for j, cell := range row {
			if keep[j] {
				kept = append(kept, cell)
			}
		}
		table.Rows[i] = kept
	}
}

// calculateConfidence scores a grid hypothesis on cell count, spacing
// regularity and how many grid positions hold a ruled cell.
func (d *LatticeDetector) calculateConfidence(h *GridHypothesis, hGroups, vGroups []AlignedLineGroup) float64 {
	score := 0.0

	slots := h.Rows * h.Cols
	if slots >= 4 {
		score += 0.2
	}
	if slots >= 9 {
		score += 0.1
	}

	score += calculateRegularity(h) * 0.3

	// Edge coverage: fraction of the grid outline actually ruled
	covered := 0.0
	for _, g := range hGroups {
		covered += math.Min(1, (g.MaxExtent-g.MinExtent)/math.Max(h.BBox.Width, 1))
	}
	for _, g := range vGroups {
		covered += math.Min(1, (g.MaxExtent-g.MinExtent)/math.Max(h.BBox.Height, 1))
	}
	score += covered / float64(len(hGroups)+len(vGroups)) * 0.2

	if slots > 0 {
		score += math.Min(1, float64(len(h.Cells))/float64(slots)) * 0.2
	}

	return math.Min(1.0, score)
}

// calculateRegularity measures how regular the grid spacing is
func calculateRegularity(h *GridHypothesis) float64 {
	rowScore := 1.0
	if h.Rows > 1 {
		rowHeights := make([]float64, h.Rows)
		for i := 0; i < h.Rows; i++ {
			rowHeights[i] = h.HorizontalLines[i] - h.HorizontalLines[i+1]
		}
		rowScore = math.Max(0, 1-coefficientOfVariation(rowHeights))
	}

	colScore := 1.0
	if h.Cols > 1 {
		colWidths := make([]float64, h.Cols)
		for i := 0; i < h.Cols; i++ {
			colWidths[i] = h.VerticalLines[i+1] - h.VerticalLines[i]
		}
		colScore = math.Max(0, 1-coefficientOfVariation(colWidths))
	}

	return (rowScore + colScore) / 2
}

// coefficientOfVariation calculates CV (std dev / mean)
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}
	return math.Sqrt(variance(values)) / m
}
