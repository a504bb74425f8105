// Package rostermerge extracts the user and employee tables of a PDF,
// reconciles them and formats a merged report.
//
// Basic usage:
//
//	result, err := rostermerge.Open("roster.pdf").Merge(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(result.Warnings) > 0 {
//	    log.Println("Warnings:", rostermerge.FormatWarnings(result.Warnings))
//	}
//	err = result.WriteFile("final_output.csv")
//
// With options:
//
//	result, err := rostermerge.Open("roster.pdf").
//	    Pages(1, 2).
//	    Strategy(tables.StrategyLattice).
//	    Policy(reconcile.PolicyIndexed).
//	    Merge(ctx)
//
// For advanced use cases, the lower-level reader, tables, classify,
// reconcile, transform and export packages are also available.
package rostermerge

import (
	"github.com/tsawler/rostermerge/reader"
)

// Open returns a Merger for the PDF at filename. Nothing is read until a
// terminal operation such as Merge or Grids runs.
//
// Example:
//
//	result, err := rostermerge.Open("roster.pdf").Merge(ctx)
func Open(filename string) *Merger {
	return &Merger{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Merger from an already-opened reader.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("roster.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	result, err := rostermerge.FromReader(r).Merge(ctx)
func FromReader(r *reader.Reader) *Merger {
	return &Merger{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
