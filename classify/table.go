package classify

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/rostermerge/model"
	"github.com/tsawler/rostermerge/record"
)

// Block names the part of a grid a table was built from.
type Block string

const (
	UserBlock     Block = "user"
	EmployeeBlock Block = "employee"
)

// Kind is the result of identifying a table.
type Kind int

const (
	Unclassified Kind = iota
	UserTable
	EmployeeTable
)

// String returns "user", "employee" or "unclassified".
func (k Kind) String() string {
	switch k {
	case UserTable:
		return "user"
	case EmployeeTable:
		return "employee"
	default:
		return "unclassified"
	}
}

// Table is a block of a grid with named columns. Every row has exactly
// len(Columns) cells; null cells stand for missing values.
type Table struct {
	Page    int
	Index   int
	Block   Block
	Columns []string
	Rows    [][]model.Cell
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the first column whose normalized
// name equals name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if NormalizeColumn(c) == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the normalized name exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Users converts the rows into user records. Columns are matched by
// normalized name; null cells leave their field absent.
func (t *Table) Users() []record.User {
	names := t.normalizedColumns()
	users := make([]record.User, 0, len(t.Rows))
	for _, row := range t.Rows {
		var u record.User
		for i, cell := range row {
			if v, ok := cell.Value(); ok && !u.Has(fieldOfUserColumn(names[i])) {
				u.Set(names[i], v)
			}
		}
		users = append(users, u)
	}
	return users
}

// Employees converts the rows into employee records.
func (t *Table) Employees() []record.Employee {
	names := t.normalizedColumns()
	employees := make([]record.Employee, 0, len(t.Rows))
	for _, row := range t.Rows {
		var e record.Employee
		for i, cell := range row {
			if v, ok := cell.Value(); ok && !e.Has(fieldOfEmployeeColumn(names[i])) {
				e.Set(names[i], v)
			}
		}
		employees = append(employees, e)
	}
	return employees
}

func (t *Table) normalizedColumns() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = NormalizeColumn(c)
	}
	return names
}

// fieldOfUserColumn maps a column to its field so that the first of two
// duplicate columns wins.
func fieldOfUserColumn(name string) record.Field {
	switch name {
	case record.ColUserID:
		return record.UserID
	case record.ColUserName:
		return record.UserName
	case record.ColUserEmail:
		return record.UserEmail
	case record.ColUserPhone:
		return record.UserPhone
	case record.ColUserGender:
		return record.UserGender
	case record.ColEmpID:
		return record.UserEmpID
	}
	return 0
}

func fieldOfEmployeeColumn(name string) record.Field {
	switch name {
	case record.ColEmpCompany:
		return record.EmpCompany
	case record.ColEmpDesignation:
		return record.EmpDesignation
	case record.ColEmpLocation:
		return record.EmpLocation
	case record.ColEmpID:
		return record.EmpID
	}
	return 0
}

// NormalizeColumn case-folds a header and replaces spaces with underscores.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(cases.Fold().String(name), " ", "_")
}

var (
	userColumns = []string{
		record.ColUserID,
		record.ColUserName,
		record.ColUserEmail,
		record.ColUserPhone,
		record.ColUserGender,
	}
	employeeColumns = []string{
		record.ColEmpCompany,
		record.ColEmpDesignation,
		record.ColEmpLocation,
	}
)

// Identify decides whether t holds users or employees from its column
// names. A table carrying every user column is a user table even if it
// also carries employee columns.
func Identify(t *Table) Kind {
	if t == nil {
		return Unclassified
	}

	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[NormalizeColumn(c)] = true
	}

	if containsAll(have, userColumns) {
		return UserTable
	}
	if containsAll(have, employeeColumns) {
		return EmployeeTable
	}
	return Unclassified
}

func containsAll(have map[string]bool, want []string) bool {
	for _, w := range want {
		if !have[w] {
			return false
		}
	}
	return true
}
