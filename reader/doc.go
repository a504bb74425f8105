// Package reader opens PDF files and turns each page into a [model.Page].
//
// Opening a file validates it with github.com/pdfcpu/pdfcpu, which also
// supplies the page count, and then reads page content with
// github.com/ledongthuc/pdf:
//
//	r, err := reader.Open("roster.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	for n := 1; n <= r.PageCount(); n++ {
//	    page, err := r.Page(n)
//	    ...
//	}
//
// # Page Content
//
// A page carries its glyphs (one per character), the glyphs assembled into
// words by the text package, and every rectangle drawn on it together with
// the rectangle edges. Table detectors work from those rulings.
//
// Fonts without a widths table (the standard 14 fonts) report zero-width
// glyphs that all share the origin of their text run; the reader lays such
// runs out with approximate widths so that glyph positions stay ordered.
//
// # Errors
//
// A file that cannot be opened or fails validation is an error from [Open].
// Malformed page content that makes the PDF library panic is recovered and
// returned as an error for that page only.
package reader
