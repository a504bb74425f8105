package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/rostermerge/model"
)

// GeometricDetector infers tables from text alignment when a page has no
// usable ruling. Each text line of a cluster becomes a row and columns start
// at the clustered left edges of the fragments. Every cell it produces
// exists; cells with no text are empty strings.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a new geometric table detector with default configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("geometric").
func (d *GeometricDetector) Name() string {
	return "geometric"
}

// Configure sets the detector configuration.
func (d *GeometricDetector) Configure(config Config) error {
	d.config = config
	return nil
}

// Detect finds tables on a page using geometric heuristics. It clusters text
// fragments by vertical proximity, then analyzes each cluster for tabular structure.
func (d *GeometricDetector) Detect(page *model.Page) ([]*model.Table, error) {
	if len(page.RawText) == 0 {
		return nil, nil
	}

	var found []*model.Table
	for _, cluster := range d.clusterFragments(page.RawText) {
		if table := d.detectTableInCluster(cluster, page.RawLines); table != nil {
			found = append(found, table)
		}
	}

	numberTables(page, found)
	return found, nil
}

// clusterFragments groups text fragments that are spatially close by vertical
// proximity. Fragments separated by more than 50 points vertically start new clusters.
func (d *GeometricDetector) clusterFragments(fragments []model.TextFragment) [][]model.TextFragment {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y > sorted[j].BBox.Y
	})

	var clusters [][]model.TextFragment
	currentCluster := []model.TextFragment{sorted[0]}

	for _, frag := range sorted[1:] {
		lastBBox := currentCluster[len(currentCluster)-1].BBox
		verticalGap := lastBBox.Y - frag.BBox.Top()

		if verticalGap > 50 {
			clusters = append(clusters, currentCluster)
			currentCluster = []model.TextFragment{frag}
		} else {
			currentCluster = append(currentCluster, frag)
		}
	}

	return append(clusters, currentCluster)
}

// detectTableInCluster builds a row per text line and a column per aligned
// left edge, and keeps the result when it scores above MinConfidence.
func (d *GeometricDetector) detectTableInCluster(fragments []model.TextFragment, lines []model.Line) *model.Table {
	if len(fragments) < d.config.MinRows*d.config.MinCols {
		return nil
	}

	rows := d.groupRows(fragments)
	if len(rows) < d.config.MinRows {
		return nil
	}

	cols := d.extractColumnBoundaries(fragments)
	if len(cols) < d.config.MinCols {
		return nil
	}

	table := model.NewTable(len(rows), len(cols))
	bbox := fragments[0].BBox
	for i, row := range rows {
		for _, frag := range row {
			bbox = bbox.Union(frag.BBox)
			col := d.findColumn(frag.BBox.Left(), cols)
			cell := table.GetCell(i, col)
			if cell.Text != "" {
				cell.Text += " "
			}
			cell.Text += frag.Text
			if cell.BBox.IsEmpty() {
				cell.BBox = frag.BBox
			} else {
				cell.BBox = cell.BBox.Union(frag.BBox)
			}
		}
	}

	grid := d.buildGrid(rows, cols, bbox, lines)
	// Empty cells take the bounds of their grid slot
	for i := range table.Rows {
		for j := range table.Rows[i] {
			if table.Rows[i][j].BBox.IsEmpty() {
				table.Rows[i][j].BBox = grid.GetCellBBox(i, j)
			}
		}
	}

	table.Confidence = d.calculateConfidence(table, grid)
	if table.Confidence < d.config.MinConfidence {
		return nil
	}

	table.BBox = bbox
	table.HasGrid = d.hasVisibleGrid(grid)
	return table
}

// groupRows splits fragments into text lines, top to bottom, each ordered
// left to right.
func (d *GeometricDetector) groupRows(fragments []model.TextFragment) [][]model.TextFragment {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y > sorted[j].BBox.Y
	})

	var rows [][]model.TextFragment
	current := []model.TextFragment{sorted[0]}
	for _, frag := range sorted[1:] {
		tolerance := math.Max(current[0].BBox.Height*0.5, d.config.AlignmentTolerance)
		if math.Abs(current[0].BBox.Y-frag.BBox.Y) <= tolerance {
			current = append(current, frag)
			continue
		}
		rows = append(rows, current)
		current = []model.TextFragment{frag}
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].BBox.X < row[j].BBox.X
		})
	}
	return rows
}

// extractColumnBoundaries clusters the left edges of all fragments into
// column starts, left to right.
func (d *GeometricDetector) extractColumnBoundaries(fragments []model.TextFragment) []float64 {
	xValues := make([]float64, 0, len(fragments))
	for _, frag := range fragments {
		xValues = append(xValues, frag.BBox.Left())
	}
	sort.Float64s(xValues)

	return clusterValues(xValues, d.config.MaxCellGap)
}

// findColumn returns the last column starting at or before x
func (d *GeometricDetector) findColumn(x float64, cols []float64) int {
	col := 0
	for i, c := range cols {
		if x+d.config.MaxCellGap >= c {
			col = i
		}
	}
	return col
}

// clusterValues clusters sorted values within the given tolerance, keeping
// the running average of each cluster.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	clustered := []float64{values[0]}
	counts := []int{1}

	for _, v := range values[1:] {
		last := len(clustered) - 1
		if v-clustered[last] > tolerance {
			clustered = append(clustered, v)
			counts = append(counts, 1)
			continue
		}
		counts[last]++
		clustered[last] += (v - clustered[last]) / float64(counts[last])
	}

	return clustered
}

// buildGrid derives row and column boundaries for scoring
func (d *GeometricDetector) buildGrid(rows [][]model.TextFragment, cols []float64, bbox model.BBox, lines []model.Line) *model.TableGrid {
	grid := model.NewTableGrid()
	for _, row := range rows {
		top := row[0].BBox.Top()
		for _, frag := range row {
			top = math.Max(top, frag.BBox.Top())
		}
		grid.Rows = append(grid.Rows, top)
	}
	grid.Rows = append(grid.Rows, bbox.Bottom())
	grid.Cols = append(grid.Cols, cols...)
	grid.Cols = append(grid.Cols, bbox.Right())

	grid.HasHLines = d.detectLines(grid.Rows, lines, true)
	grid.HasVLines = d.detectLines(grid.Cols, lines, false)
	return grid
}

// detectLines reports, per boundary, whether a ruling lies along it
func (d *GeometricDetector) detectLines(boundaries []float64, lines []model.Line, horizontal bool) []bool {
	has := make([]bool, len(boundaries))
	tol := d.config.AlignmentTolerance * 2

	for i, b := range boundaries {
		for _, line := range lines {
			if horizontal && line.IsHorizontal(d.config.AlignmentTolerance) && math.Abs(line.Start.Y-b) < tol {
				has[i] = true
				break
			}
			if !horizontal && line.IsVertical(d.config.AlignmentTolerance) && math.Abs(line.Start.X-b) < tol {
				has[i] = true
				break
			}
		}
	}

	return has
}

// calculateConfidence computes a confidence score (0.0-1.0) for the detected
// table: column regularity (30%), row consistency (30%), line presence (20%)
// and cell occupancy (20%).
func (d *GeometricDetector) calculateConfidence(table *model.Table, grid *model.TableGrid) float64 {
	score := 0.0

	colWidths := make([]float64, grid.ColCount())
	for i := range colWidths {
		colWidths[i] = grid.Cols[i+1] - grid.Cols[i]
	}
	score += math.Max(0, 1-coefficientOfVariation(colWidths)) * 0.3

	// Rows that use at least two columns look tabular
	multi := 0
	for _, row := range table.Rows {
		filled := 0
		for _, cell := range row {
			if strings.TrimSpace(cell.Text) != "" {
				filled++
			}
		}
		if filled >= 2 {
			multi++
		}
	}
	score += float64(multi) / float64(table.RowCount()) * 0.3

	score += d.calculateLineScore(grid) * 0.2
	score += d.calculateCellOccupancy(table) * 0.2

	return score
}

// calculateLineScore measures the fraction of grid boundaries that have visible
// graphical lines, averaging horizontal and vertical line coverage.
func (d *GeometricDetector) calculateLineScore(grid *model.TableGrid) float64 {
	if len(grid.HasHLines) == 0 || len(grid.HasVLines) == 0 {
		return 0
	}
	return (fraction(grid.HasHLines) + fraction(grid.HasVLines)) / 2
}

// calculateCellOccupancy measures the fraction of cells holding text
func (d *GeometricDetector) calculateCellOccupancy(table *model.Table) float64 {
	total, occupied := 0, 0
	for _, row := range table.Rows {
		for _, cell := range row {
			total++
			if cell.Text != "" {
				occupied++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total)
}

// hasVisibleGrid reports whether at least 50% of the table's grid boundaries
// have visible graphical lines.
func (d *GeometricDetector) hasVisibleGrid(grid *model.TableGrid) bool {
	all := append(append([]bool{}, grid.HasHLines...), grid.HasVLines...)
	if len(all) == 0 {
		return false
	}
	return fraction(all) >= 0.5
}

func fraction(flags []bool) float64 {
	if len(flags) == 0 {
		return 0
	}
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return float64(n) / float64(len(flags))
}

// mean computes the arithmetic mean of a slice of float64 values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance computes the population variance of a slice of float64 values.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}
