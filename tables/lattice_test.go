package tables

import (
	"testing"

	"github.com/tsawler/rostermerge/model"
)

// putText adds s to page as one glyph per rune, starting 2 points inside
// the left edge of cell and vertically centred.
func putText(page *model.Page, cell model.BBox, s string) {
	x := cell.Left() + 2
	y := cell.Bottom() + cell.Height/2 - 4
	for _, r := range s {
		page.Glyphs = append(page.Glyphs, model.TextFragment{
			Text:     string(r),
			BBox:     model.NewBBox(x, y, 4, 8),
			FontSize: 8,
		})
		x += 4
	}
}

// addRow draws one row of cells with the given widths and texts, left edge
// at x and top edge at top. A nil text leaves the cell empty.
func addRow(page *model.Page, x, top, height float64, widths []float64, texts []string) {
	for i, w := range widths {
		cell := model.NewBBox(x, top-height, w, height)
		page.AddRect(cell)
		if i < len(texts) {
			putText(page, cell, texts[i])
		}
		x += w
	}
}

func rowTexts(row []model.Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		if c.Null {
			out[i] = "<nil>"
		} else {
			out[i] = c.Text
		}
	}
	return out
}

func equalRow(t *testing.T, got []model.Cell, want []string) {
	t.Helper()
	texts := rowTexts(got)
	if len(texts) != len(want) {
		t.Fatalf("row = %q, want %q", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("row = %q, want %q", texts, want)
			return
		}
	}
}

func TestNewLatticeDetector(t *testing.T) {
	d := NewLatticeDetector()
	if d.Name() != "lattice" {
		t.Errorf("Name() = %q, want lattice", d.Name())
	}
	if d.config.MinRows != 1 || d.config.MinCols != 1 {
		t.Errorf("lattice should accept single row tables, got %+v", d.config)
	}
	if err := d.Configure(DefaultConfig()); err != nil {
		t.Errorf("Configure() error = %v", err)
	}
	if d.config.MinRows != 2 {
		t.Errorf("Configure() did not apply, MinRows = %d", d.config.MinRows)
	}
}

func TestLatticeDetector_EmptyPage(t *testing.T) {
	tables, err := NewLatticeDetector().Detect(model.NewPage(1, 612, 792))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("Detect() found %d tables on an empty page", len(tables))
	}
}

func TestLatticeDetector_SimpleGrid(t *testing.T) {
	page := model.NewPage(3, 612, 792)
	widths := []float64{80, 80, 80}
	addRow(page, 50, 700, 20, widths, []string{"user_id", "user_name", "user_email"})
	addRow(page, 50, 680, 20, widths, []string{"1", "Asha", ""})

	tables, err := NewLatticeDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}

	table := tables[0]
	if table.Page != 3 || table.Index != 1 {
		t.Errorf("table numbered page %d index %d, want 3 and 1", table.Page, table.Index)
	}
	if !table.HasGrid {
		t.Error("ruled table should have HasGrid set")
	}
	if table.RowCount() != 2 || table.ColCount() != 3 {
		t.Fatalf("table is %dx%d, want 2x3", table.RowCount(), table.ColCount())
	}
	equalRow(t, table.Rows[0], []string{"user_id", "user_name", "user_email"})
	equalRow(t, table.Rows[1], []string{"1", "Asha", ""})
	if table.Confidence <= 0 || table.Confidence > 1 {
		t.Errorf("Confidence = %v, want within (0, 1]", table.Confidence)
	}
}

func TestLatticeDetector_MergedCellsAreNull(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	addRow(page, 50, 700, 20, []float64{50, 50, 50, 50, 50, 50},
		[]string{"12", "Asha", "asha@x.in", "999", "F", "CC3456YG12"})
	addRow(page, 50, 680, 20, []float64{100, 100, 100},
		[]string{"TCS", "Analyst", "Pune"})

	tables, err := NewLatticeDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}

	rows := tables[0].Rows
	equalRow(t, rows[0], []string{"12", "Asha", "asha@x.in", "999", "F", "CC3456YG12"})
	equalRow(t, rows[1], []string{"TCS", "<nil>", "Analyst", "<nil>", "Pune", "<nil>"})
	if rows[1][0].ColSpan != 2 {
		t.Errorf("ColSpan = %d, want 2", rows[1][0].ColSpan)
	}
}

func TestLatticeDetector_SeparateTables(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	addRow(page, 50, 300, 20, []float64{60, 60}, []string{"lower", "table"})
	addRow(page, 50, 700, 20, []float64{60, 60}, []string{"upper", "table"})

	tables, err := NewLatticeDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("Detect() found %d tables, want 2", len(tables))
	}
	if tables[0].Rows[0][0].Text != "upper" || tables[0].Index != 1 {
		t.Errorf("first table = %q (index %d), want the upper one", tables[0].Rows[0][0].Text, tables[0].Index)
	}
	if tables[1].Index != 2 {
		t.Errorf("second table index = %d, want 2", tables[1].Index)
	}
}

func TestLatticeDetector_IgnoresFrame(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	page.AddRect(model.NewBBox(40, 650, 140, 60))
	addRow(page, 50, 700, 20, []float64{60, 60}, []string{"a", "b"})

	tables, err := NewLatticeDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	equalRow(t, tables[0].Rows[0], []string{"a", "b"})
}

func TestLatticeDetector_MultiLineCell(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	cell := model.NewBBox(50, 660, 100, 40)
	page.AddRect(cell)
	putText(page, model.NewBBox(50, 680, 100, 20), "Business")
	putText(page, model.NewBBox(50, 665, 100, 20), "Associate")

	tables, err := NewLatticeDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("Detect() found %d tables, want 1", len(tables))
	}
	if got := tables[0].Rows[0][0].Text; got != "Business\nAssociate" {
		t.Errorf("cell text = %q, want %q", got, "Business\nAssociate")
	}
}

func TestCellRects(t *testing.T) {
	d := NewLatticeDetector()
	rects := []model.BBox{
		model.NewBBox(0, 0, 10, 10),
		model.NewBBox(0, 0, 10, 10), // duplicate
		model.NewBBox(0, 0, 1, 1),   // too small
		model.NewBBox(-5, -5, 30, 30),
	}

	cells := d.cellRects(rects)
	if len(cells) != 1 {
		t.Fatalf("cellRects() kept %d rects, want 1", len(cells))
	}
	if cells[0] != model.NewBBox(0, 0, 10, 10) {
		t.Errorf("kept %+v, want the inner cell", cells[0])
	}
}

func TestGroupAlignedLines(t *testing.T) {
	d := NewLatticeDetector()
	lines := []model.Line{
		{Start: model.Point{X: 0, Y: 100}, End: model.Point{X: 50, Y: 100}},
		{Start: model.Point{X: 50, Y: 101}, End: model.Point{X: 100, Y: 101}},
		{Start: model.Point{X: 0, Y: 50}, End: model.Point{X: 100, Y: 50}},
	}

	groups := d.groupAlignedLines(lines, true)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	top := groups[1]
	if len(top.Lines) != 2 || top.MinExtent != 0 || top.MaxExtent != 100 {
		t.Errorf("merged group = %+v", top)
	}
	if top.Position != 100.5 {
		t.Errorf("Position = %v, want 100.5", top.Position)
	}
}

func TestBuildHypothesisBoundaries(t *testing.T) {
	d := NewLatticeDetector()
	h := d.buildHypothesis([]model.BBox{
		model.NewBBox(0, 50, 100, 50),
		model.NewBBox(100, 50, 100, 50),
		model.NewBBox(0, 0, 100, 50),
		model.NewBBox(100, 0, 100, 50),
	})
	if h == nil {
		t.Fatal("buildHypothesis() returned nil")
	}
	if h.Rows != 2 || h.Cols != 2 {
		t.Errorf("hypothesis is %dx%d, want 2x2", h.Rows, h.Cols)
	}

	if h.HorizontalLines[0] != 100 || h.VerticalLines[0] != 0 {
		t.Errorf("boundaries start at row %v col %v, want 100 and 0", h.HorizontalLines[0], h.VerticalLines[0])
	}
	if got := len(h.HorizontalLines); got != 3 {
		t.Errorf("%d horizontal boundaries, want 3", got)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if cv := coefficientOfVariation([]float64{5, 5, 5}); cv != 0 {
		t.Errorf("uniform values CV = %v, want 0", cv)
	}
	if cv := coefficientOfVariation([]float64{1}); cv != 0 {
		t.Errorf("single value CV = %v, want 0", cv)
	}
	if cv := coefficientOfVariation([]float64{0, 10}); cv != 1 {
		t.Errorf("CV = %v, want 1", cv)
	}
}
