package classify

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch indicates data rows whose width differs from the header.
var ErrLengthMismatch = errors.New("column/row length mismatch")

// TableError represents a failure to build a table from one block of a grid.
type TableError struct {
	Page  int
	Table int
	Block Block
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("building %s table on page %d (table %d): %v", e.Block, e.Page, e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// NewTableError creates a new TableError.
func NewTableError(page, table int, block Block, err error) *TableError {
	return &TableError{
		Page:  page,
		Table: table,
		Block: block,
		Err:   err,
	}
}
