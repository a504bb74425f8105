package text

import (
	"testing"

	"github.com/tsawler/rostermerge/model"
)

// glyphs lays out s one glyph per rune starting at x on baseline y, with a
// fixed advance of 5 points at font size 10.
func glyphs(s string, x, y float64) []model.TextFragment {
	out := make([]model.TextFragment, 0, len(s))
	for _, r := range s {
		out = append(out, model.TextFragment{
			Text:     string(r),
			BBox:     model.NewBBox(x, y, 5, 10),
			FontSize: 10,
		})
		x += 5
	}
	return out
}

func TestAssembleMergesGlyphs(t *testing.T) {
	frags := Assemble(glyphs("user_id", 100, 700))
	if len(frags) != 1 {
		t.Fatalf("Assemble() returned %d fragments, want 1", len(frags))
	}
	if frags[0].Text != "user_id" {
		t.Errorf("Text = %q, want %q", frags[0].Text, "user_id")
	}
	if frags[0].BBox.Left() != 100 || frags[0].BBox.Right() != 135 {
		t.Errorf("BBox = %+v, want x from 100 to 135", frags[0].BBox)
	}
}

func TestAssembleKeepsExplicitSpaces(t *testing.T) {
	frags := Assemble(glyphs("Data Engineer", 0, 500))
	if len(frags) != 1 || frags[0].Text != "Data Engineer" {
		t.Errorf("Assemble() = %+v, want one fragment %q", frags, "Data Engineer")
	}
}

func TestAssembleSplitsColumns(t *testing.T) {
	line := append(glyphs("Zoho", 0, 500), glyphs("Chennai", 100, 500)...)
	frags := Assemble(line)
	if len(frags) != 2 {
		t.Fatalf("Assemble() returned %d fragments, want 2", len(frags))
	}
	if frags[0].Text != "Zoho" || frags[1].Text != "Chennai" {
		t.Errorf("got %q and %q", frags[0].Text, frags[1].Text)
	}
}

func TestAssembleInsertsWordSpace(t *testing.T) {
	// A 4pt gap is more than half a space but less than a column gap
	line := append(glyphs("Asha", 0, 500), glyphs("Rao", 24, 500)...)
	frags := Assemble(line)
	if len(frags) != 1 || frags[0].Text != "Asha Rao" {
		t.Errorf("Assemble() = %+v, want one fragment %q", frags, "Asha Rao")
	}
}

func TestAssembleOrdersLinesTopDown(t *testing.T) {
	line := append(glyphs("second", 0, 400), glyphs("first", 0, 600)...)
	frags := Assemble(line)
	if len(frags) != 2 {
		t.Fatalf("Assemble() returned %d fragments, want 2", len(frags))
	}
	if frags[0].Text != "first" || frags[1].Text != "second" {
		t.Errorf("order = %q, %q", frags[0].Text, frags[1].Text)
	}
}

func TestAssembleOutOfOrderGlyphs(t *testing.T) {
	g := glyphs("abc", 0, 100)
	g[0], g[2] = g[2], g[0]
	frags := Assemble(g)
	if len(frags) != 1 || frags[0].Text != "abc" {
		t.Errorf("Assemble() = %+v, want %q", frags, "abc")
	}
}

func TestAssembleEmpty(t *testing.T) {
	if frags := Assemble(nil); len(frags) != 0 {
		t.Errorf("Assemble(nil) = %+v, want empty", frags)
	}
	if frags := Assemble(glyphs("   ", 0, 0)); len(frags) != 0 {
		t.Errorf("whitespace-only glyphs should be dropped, got %+v", frags)
	}
}

func TestAssembleNormalizesNFC(t *testing.T) {
	// "e" followed by a combining acute accent
	g := []model.TextFragment{
		{Text: "e", BBox: model.NewBBox(0, 0, 5, 10), FontSize: 10},
		{Text: "\u0301", BBox: model.NewBBox(5, 0, 0.1, 10), FontSize: 10},
	}
	frags := Assemble(g)
	if len(frags) != 1 || frags[0].Text != "\u00e9" {
		t.Errorf("Assemble() = %+v, want composed %q", frags, "é")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []model.TextFragment
		want   string
	}{
		{"empty", nil, ""},
		{"single line", glyphs("emp_company", 0, 100), "emp_company"},
		{"wide gap stays one line", append(glyphs("a", 0, 100), glyphs("b", 50, 100)...), "a b"},
		{"two lines", append(glyphs("Business", 0, 100), glyphs("Associate", 0, 88)...), "Business\nAssociate"},
		{"padded", glyphs("  12  ", 0, 100), "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.glyphs); got != tt.want {
				t.Errorf("Join() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShouldInsertSpace(t *testing.T) {
	a := model.TextFragment{Text: "a", FontSize: 10}
	sp := model.TextFragment{Text: " ", FontSize: 10}

	tests := []struct {
		name string
		frag model.TextFragment
		next model.TextFragment
		gap  float64
		want bool
	}{
		{"overlap", a, a, -1, false},
		{"kerning", a, a, 0.3, false},
		{"below threshold", a, a, 1.0, false},
		{"word gap", a, a, 1.5, true},
		{"explicit space before", sp, a, 3, false},
		{"explicit space after", a, sp, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldInsertSpace(tt.frag, tt.next, tt.gap); got != tt.want {
				t.Errorf("shouldInsertSpace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSpaceWidth(t *testing.T) {
	if w := getSpaceWidth(12); w != 3 {
		t.Errorf("getSpaceWidth(12) = %v, want 3", w)
	}
	if w := getSpaceWidth(0); w != 2.5 {
		t.Errorf("getSpaceWidth(0) = %v, want fallback 2.5", w)
	}
}

func TestCalculateHorizontalDistance(t *testing.T) {
	left := model.TextFragment{BBox: model.NewBBox(0, 0, 10, 10)}
	right := model.TextFragment{BBox: model.NewBBox(15, 0, 10, 10)}

	if d := calculateHorizontalDistance(left, right, LTR); d != 5 {
		t.Errorf("LTR distance = %v, want 5", d)
	}
	if d := calculateHorizontalDistance(right, left, RTL); d != 5 {
		t.Errorf("RTL distance = %v, want 5", d)
	}
}
