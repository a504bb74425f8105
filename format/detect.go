// Package format detects the input document format and selects report
// writers by file extension.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for files whose format cannot be read or
// written.
var ErrUnsupported = errors.New("unsupported format")

var pdfMagic = []byte("%PDF")

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// CSV indicates comma-separated values.
	CSV
	// TSV indicates tab-separated values.
	TSV
	// JSON indicates a JSON array of objects.
	JSON
	// JSONL indicates JSON Lines, one object per line.
	JSONL
	// HTML indicates an HTML document.
	HTML
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	case JSON:
		return "JSON"
	case JSONL:
		return "JSONL"
	case HTML:
		return "HTML"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case CSV:
		return ".csv"
	case TSV:
		return ".tsv"
	case JSON:
		return ".json"
	case JSONL:
		return ".jsonl"
	case HTML:
		return ".html"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".csv":
		return CSV
	case ".tsv", ".tab":
		return TSV
	case ".json":
		return JSON
	case ".jsonl", ".ndjson":
		return JSONL
	case ".html", ".htm":
		return HTML
	case ".xlsx":
		return XLSX
	default:
		return Unknown
	}
}

// DetectOutput selects the writer for an output path from its extension.
func DetectOutput(path string) (Format, error) {
	f := Detect(path)
	if f == Unknown {
		return Unknown, fmt.Errorf("%w: cannot write %q (use .csv, .tsv, .json, .jsonl, .html, .xlsx or .pdf)", ErrUnsupported, path)
	}
	return f, nil
}

// DetectInput accepts path when its header starts with the PDF magic bytes,
// or, when no header is available, when its extension is .pdf.
func DetectInput(path string, header []byte) error {
	if len(header) > 0 {
		if DetectFromMagic(header) == PDF {
			return nil
		}
		return fmt.Errorf("%w: %s is not a PDF file", ErrUnsupported, path)
	}
	if Detect(path) == PDF {
		return nil
	}
	return fmt.Errorf("%w: %s is not a PDF file", ErrUnsupported, path)
}

// DetectFromMagic checks file magic bytes to determine format.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	return Unknown
}
