package reader

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/rostermerge/model"
	"github.com/tsawler/rostermerge/text"
)

// Default page size (US Letter) used when a page has no readable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

func init() {
	// pdfcpu otherwise writes a config directory under the user's home
	api.DisableConfigDir()
}

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Reader represents an open, validated PDF file
type Reader struct {
	file      *os.File
	doc       *pdf.Reader
	version   PDFVersion
	pageCount int
	fileSize  int64
}

// NewReader validates file and prepares it for page access
func NewReader(file *os.File) (*Reader, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	reader := &Reader{
		file:     file,
		fileSize: fileInfo.Size(),
	}

	version, err := reader.parseHeader()
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}
	reader.version = version

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to start: %w", err)
	}
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(file, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	reader.pageCount = ctx.PageCount

	doc, err := pdf.NewReader(file, reader.fileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	reader.doc = doc

	return reader, nil
}

// Open opens a PDF file and returns a Reader
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	return reader, nil
}

// Close closes the PDF file
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)`)

// parseHeader parses the PDF header (%PDF-x.y)
func (r *Reader) parseHeader() (PDFVersion, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return PDFVersion{}, fmt.Errorf("failed to seek to start: %w", err)
	}

	header := make([]byte, 8)
	n, err := io.ReadFull(r.file, header)
	if err != nil {
		return PDFVersion{}, fmt.Errorf("header too short: %d bytes", n)
	}

	return parseVersion(string(header))
}

// parseVersion reads the version from a "%PDF-x.y" header line
func parseVersion(header string) (PDFVersion, error) {
	if !strings.HasPrefix(header, "%PDF-") {
		return PDFVersion{}, fmt.Errorf("invalid PDF header: %q", header)
	}

	matches := versionPattern.FindStringSubmatch(header[5:])
	if len(matches) < 3 {
		return PDFVersion{}, fmt.Errorf("invalid version format: %q", header[5:])
	}

	major, err := strconv.Atoi(matches[1])
	if err != nil {
		return PDFVersion{}, fmt.Errorf("invalid major version: %w", err)
	}
	minor, err := strconv.Atoi(matches[2])
	if err != nil {
		return PDFVersion{}, fmt.Errorf("invalid minor version: %w", err)
	}

	return PDFVersion{Major: major, Minor: minor}, nil
}

// Version returns the PDF version
func (r *Reader) Version() PDFVersion {
	return r.version
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() int {
	return r.pageCount
}

// FileSize returns the size of the file in bytes
func (r *Reader) FileSize() int64 {
	return r.fileSize
}

// Page returns the content of page n (1-based)
func (r *Reader) Page(n int) (page *model.Page, err error) {
	if n < 1 || n > r.pageCount {
		return nil, fmt.Errorf("page %d out of range (1-%d)", n, r.pageCount)
	}

	defer func() {
		if rec := recover(); rec != nil {
			page = nil
			err = fmt.Errorf("page %d: malformed content: %v", n, rec)
		}
	}()

	p := r.doc.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", n)
	}

	width, height := pageSize(p)
	page = model.NewPage(n, width, height)

	content := p.Content()
	page.Glyphs = layoutGlyphs(content.Text)
	page.RawText = text.Assemble(page.Glyphs)

	for _, rect := range content.Rect {
		b := model.NewBBoxFromPoints(
			model.Point{X: rect.Min.X, Y: rect.Min.Y},
			model.Point{X: rect.Max.X, Y: rect.Max.Y},
		)
		if b.Width == 0 && b.Height == 0 {
			continue
		}
		page.AddRect(b)
	}

	return page, nil
}

// pageSize reads the MediaBox of p, falling back to US Letter
func pageSize(p pdf.Page) (float64, float64) {
	box := p.V.Key("MediaBox")
	if box.IsNull() {
		box = p.V.Key("Parent").Key("MediaBox")
	}
	if box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}

	width := box.Index(2).Float64() - box.Index(0).Float64()
	height := box.Index(3).Float64() - box.Index(1).Float64()
	if width <= 0 || height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return width, height
}
