package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/tsawler/rostermerge/transform"
)

// exportPDF writes the report as a bordered table. With RepeatHeader the
// header row is drawn at the top of every page.
func (e *Exporter) exportPDF(report *transform.Report, w io.Writer) error {
	layout := e.config.Layout

	pdf := fpdf.New(layout.Orientation, "mm", layout.PageSize, "")
	pdf.SetAutoPageBreak(true, layout.Margin)
	pdf.SetFont(layout.Font, "", layout.FontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := columnWidths(report)
	header := func() {
		for i, col := range report.Columns {
			pdf.CellFormat(widths[i], layout.RowHeight, tr(col), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(layout.RowHeight)
	}

	if layout.RepeatHeader {
		pdf.SetHeaderFunc(header)
		pdf.AddPage()
	} else {
		pdf.AddPage()
		header()
	}

	for _, row := range report.Rows {
		for i := range report.Columns {
			var v string
			if i < len(row) {
				v = row[i]
			}
			pdf.CellFormat(widths[i], layout.RowHeight, tr(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(layout.RowHeight)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// columnWidths returns the report widths, using 30mm where none is given.
func columnWidths(report *transform.Report) []float64 {
	widths := make([]float64, len(report.Columns))
	for i := range widths {
		if i < len(report.Widths) && report.Widths[i] > 0 {
			widths[i] = report.Widths[i]
		} else {
			widths[i] = 30
		}
	}
	return widths
}
