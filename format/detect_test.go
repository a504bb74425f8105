package format

import (
	"errors"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{CSV, "CSV"},
		{TSV, "TSV"},
		{JSON, "JSON"},
		{JSONL, "JSONL"},
		{HTML, "HTML"},
		{XLSX, "XLSX"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	for _, f := range []Format{PDF, CSV, TSV, JSON, JSONL, HTML, XLSX} {
		if got := Detect("report" + f.Extension()); got != f {
			t.Errorf("Detect(report%s) = %v, want %v", f.Extension(), got, f)
		}
	}
	if Unknown.Extension() != "" {
		t.Error("Unknown should have no extension")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"roster.pdf", PDF},
		{"roster.PDF", PDF},
		{"final_output.csv", CSV},
		{"final_output.CSV", CSV},
		{"out.tsv", TSV},
		{"out.tab", TSV},
		{"out.json", JSON},
		{"out.jsonl", JSONL},
		{"out.ndjson", JSONL},
		{"out.html", HTML},
		{"out.htm", HTML},
		{"out.xlsx", XLSX},
		{"/path/to/out.xlsx", XLSX},
		{"out.docx", Unknown},
		{"out", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectOutput(t *testing.T) {
	if f, err := DetectOutput("final_output.pdf"); err != nil || f != PDF {
		t.Errorf("DetectOutput(pdf) = %v, %v", f, err)
	}
	if _, err := DetectOutput("final_output.docx"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("DetectOutput(docx) error = %v, want ErrUnsupported", err)
	}
}

func TestDetectInput(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		header  []byte
		wantErr bool
	}{
		{"pdf magic", "roster.bin", []byte("%PDF-1.7\n"), false},
		{"pdf magic wrong extension", "roster.csv", []byte("%PDF-1.4"), false},
		{"csv content", "roster.pdf", []byte("a,b,c\n"), true},
		{"no header pdf extension", "roster.pdf", nil, false},
		{"no header other extension", "roster.txt", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DetectInput(tt.path, tt.header)
			if (err != nil) != tt.wantErr {
				t.Errorf("DetectInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupported) {
				t.Errorf("error %v should wrap ErrUnsupported", err)
			}
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF magic bytes", []byte("%PDF-1.4"), PDF},
		{"PDF minimal", []byte("%PDF"), PDF},
		{"ZIP magic bytes", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, Unknown},
		{"HTML document", []byte("<!DOCTYPE html>\n<html>"), Unknown},
		{"leading whitespace", []byte("  %PDF-1.7"), Unknown},
		{"empty data", []byte{}, Unknown},
		{"short data", []byte{0x50, 0x4B}, Unknown},
		{"text file", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}
