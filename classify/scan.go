package classify

import (
	"fmt"
	"strings"

	"github.com/tsawler/rostermerge/model"
	"github.com/tsawler/rostermerge/record"
)

// Marker cell values that open a user block and an employee block.
const (
	UserMarker     = record.ColUserID
	EmployeeMarker = record.ColEmpCompany
)

// Outcome is the result of building one table from a block: either Table
// is set, or Err explains why the block was skipped.
type Outcome struct {
	Page  int
	Index int
	Block Block
	Table *Table
	Err   error
}

// OK reports whether the block produced a table.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Table != nil
}

// ScanGrid splits grid at its marker rows and builds one table per block.
// A row holding the user marker opens the user block; otherwise a row
// holding the employee marker opens the employee block. When a marker
// appears in several rows the last one wins. Grids with fewer than two
// rows produce nothing.
func ScanGrid(grid *model.Table) []Outcome {
	if grid == nil || len(grid.Rows) < 2 {
		return nil
	}

	userStart, empStart := -1, -1
	for i, row := range grid.Rows {
		if len(row) == 0 {
			continue
		}
		if rowHas(row, UserMarker) {
			userStart = i
		} else if rowHas(row, EmployeeMarker) {
			empStart = i
		}
	}

	var outcomes []Outcome

	if userStart >= 0 {
		end := len(grid.Rows)
		if empStart >= 0 {
			end = empStart
		}
		// A user block needs at least one data row. An employee marker above
		// the user marker leaves it empty too.
		if end-userStart > 1 {
			outcomes = append(outcomes, buildOutcome(grid, UserBlock, grid.Rows[userStart:end], buildUserTable))
		}
	}

	if empStart >= 0 {
		outcomes = append(outcomes, buildOutcome(grid, EmployeeBlock, grid.Rows[empStart:], buildEmployeeTable))
	}

	return outcomes
}

func rowHas(row []model.Cell, marker string) bool {
	for _, cell := range row {
		if v, ok := cell.Value(); ok && v == marker {
			return true
		}
	}
	return false
}

type blockBuilder func(block [][]model.Cell) (*Table, error)

func buildOutcome(grid *model.Table, kind Block, block [][]model.Cell, build blockBuilder) Outcome {
	out := Outcome{Page: grid.Page, Index: grid.Index, Block: kind}

	table, err := build(block)
	if err != nil {
		out.Err = NewTableError(grid.Page, grid.Index, kind, err)
		return out
	}

	table.Page = grid.Page
	table.Index = grid.Index
	table.Block = kind
	out.Table = table
	return out
}

// buildUserTable uses every header cell as a column, trimmed, with null
// headers as "". The widest data row must match the header width; shorter
// rows are padded with nulls.
func buildUserTable(block [][]model.Cell) (*Table, error) {
	header := block[0]
	columns := make([]string, len(header))
	for i, cell := range header {
		if v, ok := cell.Value(); ok {
			columns[i] = strings.TrimSpace(v)
		}
	}

	data := block[1:]
	width := 0
	for _, row := range data {
		width = max(width, len(row))
	}
	if len(data) > 0 && width != len(columns) {
		return nil, fmt.Errorf("%w: %d columns passed, passed data had %d columns", ErrLengthMismatch, len(columns), width)
	}

	rows := make([][]model.Cell, len(data))
	for i, row := range data {
		padded := make([]model.Cell, len(columns))
		copy(padded, row)
		for j := len(row); j < len(columns); j++ {
			padded[j] = model.NullCell()
		}
		rows[i] = padded
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// buildEmployeeTable keeps only header positions holding non-empty text and
// projects every data row onto them.
func buildEmployeeTable(block [][]model.Cell) (*Table, error) {
	var keep []int
	var columns []string
	for i, cell := range block[0] {
		if v, ok := cell.Value(); ok && strings.TrimSpace(v) != "" {
			keep = append(keep, i)
			columns = append(columns, strings.TrimSpace(v))
		}
	}

	rows := make([][]model.Cell, 0, len(block)-1)
	for _, row := range block[1:] {
		projected := make([]model.Cell, len(keep))
		for j, idx := range keep {
			if idx < len(row) {
				projected[j] = row[idx]
			} else {
				projected[j] = model.NullCell()
			}
		}
		rows = append(rows, projected)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// ScanRows classifies every row of every grid by shape alone. User rows are
// six cells whose first cell, trimmed, is a non-empty ASCII digit string;
// employee rows are six cells with text at 0, 2, 4 and nulls at 1, 3, 5.
// Other rows are discarded.
func ScanRows(grids []*model.Table) ([]record.User, []record.Employee) {
	var users []record.User
	var employees []record.Employee

	for _, grid := range grids {
		if grid == nil {
			continue
		}
		for _, row := range grid.Rows {
			if u, ok := UserFromRow(row); ok {
				users = append(users, u)
			} else if e, ok := EmployeeFromRow(row); ok {
				employees = append(employees, e)
			}
		}
	}

	return users, employees
}

var userRowColumns = []string{
	record.ColUserID,
	record.ColUserName,
	record.ColUserEmail,
	record.ColUserPhone,
	record.ColUserGender,
	record.ColEmpID,
}

// UserFromRow classifies a single row as a user. All six fields are
// present; null cells become "".
func UserFromRow(row []model.Cell) (record.User, bool) {
	if len(row) != 6 || row[0].Null || !isDigits(strings.TrimSpace(row[0].Text)) {
		return record.User{}, false
	}

	var u record.User
	for i, cell := range row {
		u.Set(userRowColumns[i], strings.TrimSpace(cell.Text))
	}
	return u, true
}

// EmployeeFromRow classifies a single row as an employee, keeping cells
// 0, 2 and 4.
func EmployeeFromRow(row []model.Cell) (record.Employee, bool) {
	if len(row) != 6 {
		return record.Employee{}, false
	}
	for i, cell := range row {
		if cell.Null != (i%2 == 1) {
			return record.Employee{}, false
		}
	}

	var e record.Employee
	e.Assign(
		strings.TrimSpace(row[0].Text),
		strings.TrimSpace(row[2].Text),
		strings.TrimSpace(row[4].Text),
	)
	return e, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
