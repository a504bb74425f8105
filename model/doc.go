// Package model provides the intermediate representation shared by the
// extraction stages.
//
// The types here sit between the PDF reader and the classifier: the reader
// produces a [Page] of positioned text and ruling lines, the table detectors
// turn a page into [Table] values (raw cell grids), and the classifier reads
// those grids row by row.
//
// # Raw Grids
//
// A [Table] is a possibly ragged sequence of rows of [Cell] values. A cell
// with Null set marks a position that holds no cell at all, either because
// a merged cell to its left spans over it or because no ruling encloses it.
// This is different from an empty cell, which exists but has no text:
//
//	row := table.Rows[1]
//	if row[1].Null {
//	    // position 1 is covered by the cell at position 0
//	}
//
// [FormatRow] renders a row the way the debug dump prints it, with None for
// null positions.
//
// # Geometry
//
// Geometric primitives use PDF user space (origin bottom-left, Y grows up):
//
//   - [BBox] - bounding box with intersection, union, and containment
//   - [Point] - 2D point
//   - [Line] - a ruling segment, usually one edge of a drawn rectangle
//   - [TableGrid] - row and column boundaries of a detected table
package model
