package rostermerge

import (
	"errors"
	"fmt"
	"strings"
)

// Soft failures: the document was read but holds nothing to merge.
var (
	ErrNoUserTables     = errors.New("no valid user tables found")
	ErrNoEmployeeTables = errors.New("no valid employee tables found")
)

// ErrTransform is wrapped by every reconciliation or formatting failure.
// No output should be written when it is returned.
var ErrTransform = errors.New("transformation failed")

// IsSoft reports whether err is a soft failure: no tables to merge, or a
// transformation failure. Anything else means the input could not be read.
func IsSoft(err error) bool {
	return errors.Is(err, ErrNoUserTables) ||
		errors.Is(err, ErrNoEmployeeTables) ||
		errors.Is(err, ErrTransform)
}

// Warning records a page or table that was skipped during extraction.
type Warning struct {
	Page    int // 1-indexed page, 0 when not tied to a page
	Table   int // 1-indexed table on the page, 0 when not tied to a table
	Message string
	Err     error
}

func (w Warning) String() string {
	var sb strings.Builder
	if w.Page > 0 {
		fmt.Fprintf(&sb, "page %d", w.Page)
		if w.Table > 0 {
			fmt.Fprintf(&sb, " table %d", w.Table)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(w.Message)
	if w.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(w.Err.Error())
	}
	return sb.String()
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
