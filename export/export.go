package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/rostermerge/config"
	"github.com/tsawler/rostermerge/format"
	"github.com/tsawler/rostermerge/transform"
)

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format format.Format

	// Delimiter for CSV export (default: comma)
	Delimiter rune

	// IncludeHeader includes the header row in CSV/TSV exports
	IncludeHeader bool

	// PrettyPrint enables indentation for JSON formats
	PrettyPrint bool

	// SheetName names the worksheet in XLSX exports
	SheetName string

	// Layout controls the PDF report
	Layout config.Report
}

// DefaultConfig returns the CSV configuration with the default report
// layout.
func DefaultConfig() Config {
	return Config{
		Format:        format.CSV,
		Delimiter:     ',',
		IncludeHeader: true,
		SheetName:     "Report",
		Layout:        config.Default().Report,
	}
}

// CSVConfig returns config for comma-separated output
func CSVConfig() Config {
	return DefaultConfig()
}

// TSVConfig returns config for tab-separated output
func TSVConfig() Config {
	c := DefaultConfig()
	c.Format = format.TSV
	c.Delimiter = '\t'
	return c
}

// PDFConfig returns config for a PDF report with the given layout
func PDFConfig(layout config.Report) Config {
	c := DefaultConfig()
	c.Format = format.PDF
	c.Layout = layout
	return c
}

// ForPath returns the configuration for writing path, chosen by its
// extension. layout is used for PDF output.
func ForPath(path string, layout config.Report) (Config, error) {
	f, err := format.DetectOutput(path)
	if err != nil {
		return Config{}, err
	}

	c := DefaultConfig()
	c.Format = f
	c.Layout = layout
	if f == format.TSV {
		c.Delimiter = '\t'
	}
	return c, nil
}

// Exporter writes reports in one format
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Format returns the output format of the exporter
func (e *Exporter) Format() format.Format {
	return e.config.Format
}

// Export writes report to w
func (e *Exporter) Export(report *transform.Report, w io.Writer) error {
	switch e.config.Format {
	case format.CSV, format.TSV:
		return e.exportCSV(report, w)
	case format.JSON:
		return e.exportJSON(report, w)
	case format.JSONL:
		return e.exportJSONL(report, w)
	case format.HTML:
		return e.exportHTML(report, w)
	case format.XLSX:
		return e.exportXLSX(report, w)
	case format.PDF:
		return e.exportPDF(report, w)
	default:
		return fmt.Errorf("%w: export format %v", format.ErrUnsupported, e.config.Format)
	}
}

// ExportToFile writes report to a file. A partially written file is left in
// place on error.
func (e *Exporter) ExportToFile(report *transform.Report, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing export file: %w", cerr)
		}
	}()

	return e.Export(report, f)
}

// ExportToString writes report to a string
func (e *Exporter) ExportToString(report *transform.Report) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(report, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// exportCSV writes the report as CSV or TSV
func (e *Exporter) exportCSV(report *transform.Report, w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if e.config.Delimiter != 0 {
		csvWriter.Comma = e.config.Delimiter
	}

	if e.config.IncludeHeader {
		if err := csvWriter.Write(report.Columns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}

	for i, row := range report.Rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// row is one report row encoded as a JSON object with keys in column order
type row struct {
	columns []string
	values  []string
}

func (r row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		var v string
		if i < len(r.values) {
			v = r.values[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func rowsOf(report *transform.Report) []row {
	rows := make([]row, len(report.Rows))
	for i, values := range report.Rows {
		rows[i] = row{columns: report.Columns, values: values}
	}
	return rows
}

// exportJSONL writes one JSON object per line
func (e *Exporter) exportJSONL(report *transform.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for i, r := range rowsOf(report) {
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("encoding row %d: %w", i, err)
		}
	}
	return nil
}

// exportJSON writes the rows as a JSON array of objects
func (e *Exporter) exportJSON(report *transform.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if e.config.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(rowsOf(report))
}
