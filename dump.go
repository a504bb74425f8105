package rostermerge

import (
	"fmt"
	"io"

	"github.com/tsawler/rostermerge/model"
)

// DumpGrids prints every raw grid, grouped by page, one row per line.
// Null positions print as None.
func DumpGrids(w io.Writer, grids []*model.Table) error {
	page := 0
	for _, g := range grids {
		if g.Page != page {
			page = g.Page
			if _, err := fmt.Fprintf(w, "\nPage %d\n", page); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  Table %d:\n", g.Index); err != nil {
			return err
		}
		for _, row := range g.Rows {
			if _, err := fmt.Fprintf(w, "    %s\n", model.FormatRow(row)); err != nil {
				return err
			}
		}
	}
	return nil
}
