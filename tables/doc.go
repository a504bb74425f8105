// Package tables detects tables on a PDF page and returns them as raw cell
// grids.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [LatticeDetector] - builds grids from ruled cell rectangles
//   - [GeometricDetector] - uses spatial analysis of text positions
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("lattice")
//	grids, err := detector.Detect(page)
//
// [Detect] runs a [Strategy]. The auto strategy tries the lattice detector
// first and falls back to the geometric detector on pages without ruled
// cells.
//
// # Lattice Detection
//
// The [LatticeDetector] mirrors the "lines" strategy of common table
// extractors:
//
//  1. Collect cell rectangles, dropping frames that enclose other cells
//  2. Group touching cells into tables
//  3. Snap cell edges to aligned row and column boundaries
//  4. Place each cell at its top-left slot; positions covered by a merged
//     cell, or with no cell at all, are null
//  5. Fill cells with the glyphs whose centre lies inside them
//
// Null positions are what distinguish a merged header such as
// ["Company", None, "Designation", None] from a row of empty cells.
//
// # Geometric Detection
//
// The [GeometricDetector] clusters text fragments into rows and columns when
// a page has no rulings. Every cell it produces exists, possibly empty.
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	detector.Configure(config)
package tables
