package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
)

// writeRosterPDF draws a user table with one user followed by an employee
// header whose cells each span two 30mm columns.
func writeRosterPDF(t *testing.T) string {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Arial", "", 10)
	doc.AddPage()
	for _, row := range [][]string{
		{"user_id", "user_name", "user_email", "user_phoneno", "user_gender", "Emp_id"},
		{"1", "Asha", "asha@x.com", "9999", "F", "CC3456YG11"},
	} {
		for _, v := range row {
			doc.CellFormat(30, 10, v, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
	for _, v := range []string{"emp_company", "emp_designation", "emp_comp_location"} {
		doc.CellFormat(60, 10, v, "1", 0, "L", false, 0, "")
	}
	doc.Ln(-1)

	path := filepath.Join(t.TempDir(), "roster.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write PDF: %v", err)
	}
	return path
}

func writePlainPDF(t *testing.T) string {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Arial", "", 10)
	doc.AddPage()
	doc.Cell(40, 10, "No tables here")
	path := filepath.Join(t.TempDir(), "plain.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write PDF: %v", err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"too many arguments", []string{"a.pdf", "b.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != exitOK {
				t.Errorf("exit code = %d, want %d", code, exitOK)
			}
			if !strings.Contains(stdout.String(), usage) {
				t.Errorf("stdout = %q, want usage", stdout.String())
			}
		})
	}
}

func TestRunInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus", "a.pdf"}},
		{"unknown policy", []string{"--policy", "fuzzy", "a.pdf"}},
		{"unknown strategy", []string{"--strategy", "ocr", "a.pdf"}},
		{"unknown log level", []string{"--log-level", "loud", "a.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != exitUsage {
				t.Errorf("exit code = %d, want %d", code, exitUsage)
			}
			if !strings.Contains(stderr.String(), "Error:") {
				t.Errorf("stderr = %q, want an error", stderr.String())
			}
		})
	}
}

func TestRunPositional(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{writeRosterPDF(t), "-o", out}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	want := "Company,Name,Email,EmpID,Location,Phone,Gender,Designation,Matched\n" +
		"Zoho,employee name: Asha,asha@x.com,CC3456YG11,Chennai,9999,F,Data Engineer,True\n"
	if string(data) != want {
		t.Errorf("CSV =\n%s\nwant\n%s", data, want)
	}

	if !strings.Contains(stdout.String(), "Merged 1 records (positional policy)") {
		t.Errorf("stdout = %q, want a summary line", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Saved "+out) {
		t.Errorf("stdout = %q, want the saved path", stdout.String())
	}
	if !strings.Contains(stderr.String(), "wrote "+out) {
		t.Errorf("stderr = %q, want an info log for the written file", stderr.String())
	}
}

func TestRunIndexedWritesEveryOutput(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "final.csv")
	pdfPath := filepath.Join(dir, "final.pdf")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--policy", "indexed", "-o", csvPath, "-o", pdfPath, writeRosterPDF(t)}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("CSV not written: %v", err)
	}
	if !strings.Contains(string(data), "Microsoft,Software Developer,DLL: Bangalore") {
		t.Errorf("CSV = %s, want the corrected first user", data)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("PDF output should start with the PDF magic")
	}
}

func TestRunDump(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--dump", "-o", out, writeRosterPDF(t)}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	for _, want := range []string{"Page 1", "Table 1:", `"emp_company", None`} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunNoTablesIsSoft(t *testing.T) {
	out := filepath.Join(t.TempDir(), "merged.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{writePlainPDF(t), "-o", out}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if !strings.Contains(stdout.String(), "no valid user tables found") {
		t.Errorf("stdout = %q, want the soft failure message", stdout.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no output should be written on a soft failure")
	}
}

func TestRunFatal(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "roster.txt")
	if err := os.WriteFile(notPDF, []byte("user_id,user_name\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	badConfig := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(badConfig, []byte("employee_limit: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{filepath.Join(dir, "missing.pdf")}},
		{"not a pdf", []string{notPDF}},
		{"invalid config", []string{"--config", badConfig, writeRosterPDF(t)}},
		{"unsupported output", []string{"-o", filepath.Join(dir, "out.doc"), writeRosterPDF(t)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != exitFatal {
				t.Errorf("exit code = %d, want %d (stderr %s)", code, exitFatal, stderr.String())
			}
			if !strings.Contains(stderr.String(), "ERROR") {
				t.Errorf("stderr = %q, want an error log", stderr.String())
			}
		})
	}
}
