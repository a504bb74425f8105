package model

import (
	"strconv"
	"strings"
)

// Table represents one detected table as a raw cell grid. Rows are ordered
// top to bottom and are not guaranteed to have equal lengths.
type Table struct {
	Page       int // 1-indexed page the table was found on
	Index      int // 1-indexed position of the table on its page
	Rows       [][]Cell
	BBox       BBox
	HasGrid    bool    // Whether table has visible gridlines
	Confidence float64 // Detection confidence (0-1)
}

// NewTable creates a new table with given dimensions. Every cell exists and
// is empty.
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows:       make([][]Cell, rows),
		Confidence: 1.0,
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i][j] = Cell{
				RowSpan: 1,
				ColSpan: 1,
			}
		}
	}
	return table
}

// NewNullTable creates a table of the given dimensions in which every
// position is null until a cell is placed into it.
func NewNullTable(rows, cols int) *Table {
	table := NewTable(rows, cols)
	for i := range table.Rows {
		for j := range table.Rows[i] {
			table.Rows[i][j].Null = true
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of cells in the widest row
func (t *Table) ColCount() int {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// Cell represents a table cell
type Cell struct {
	Text    string
	Null    bool // No cell occupies this position
	BBox    BBox
	RowSpan int
	ColSpan int
}

// Value returns the cell text and whether the cell exists
func (c Cell) Value() (string, bool) {
	if c.Null {
		return "", false
	}
	return c.Text, true
}

// TextCell returns an existing cell holding s
func TextCell(s string) Cell {
	return Cell{Text: s, RowSpan: 1, ColSpan: 1}
}

// NullCell returns a cell marking an empty position
func NullCell() Cell {
	return Cell{Null: true, RowSpan: 1, ColSpan: 1}
}

// Row builds a row from optional values; a nil entry becomes a null cell.
func Row(values ...*string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		if v == nil {
			row[i] = NullCell()
			continue
		}
		row[i] = TextCell(*v)
	}
	return row
}

// FormatRow renders a row as a bracketed list, quoting text and printing
// None for null positions.
func FormatRow(row []Cell) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, cell := range row {
		if i > 0 {
			sb.WriteString(", ")
		}
		if cell.Null {
			sb.WriteString("None")
			continue
		}
		sb.WriteString(strconv.Quote(cell.Text))
	}
	sb.WriteString("]")
	return sb.String()
}

// TableGrid represents the detected grid structure
type TableGrid struct {
	Rows      []float64 // Y-coordinates of row boundaries, top to bottom
	Cols      []float64 // X-coordinates of column boundaries, left to right
	HasHLines []bool    // Horizontal line presence
	HasVLines []bool    // Vertical line presence
}

// NewTableGrid creates a new empty grid
func NewTableGrid() *TableGrid {
	return &TableGrid{
		Rows:      make([]float64, 0),
		Cols:      make([]float64, 0),
		HasHLines: make([]bool, 0),
		HasVLines: make([]bool, 0),
	}
}

// RowCount returns the number of rows
func (g *TableGrid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of columns
func (g *TableGrid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// GetCellBBox returns the bounding box for a cell
func (g *TableGrid) GetCellBBox(row, col int) BBox {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return BBox{}
	}
	return BBox{
		X:      g.Cols[col],
		Y:      g.Rows[row+1],
		Width:  g.Cols[col+1] - g.Cols[col],
		Height: g.Rows[row] - g.Rows[row+1],
	}
}
