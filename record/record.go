// Package record defines the user, employee and merged records that flow
// from the classifier through reconciliation.
//
// Every record carries a presence mask. A field that was never supplied
// (missing column, null cell, padding row) is absent, which is distinct
// from a field holding the empty string.
package record

import (
	"strconv"
	"strings"
)

// Field identifies one attribute of a record in a presence mask.
type Field uint16

const (
	UserID Field = 1 << iota
	UserName
	UserEmail
	UserPhone
	UserGender
	UserEmpID

	EmpCompany
	EmpDesignation
	EmpLocation
	EmpID
)

// Column names as they appear in source headers, after folding.
const (
	ColUserID         = "user_id"
	ColUserName       = "user_name"
	ColUserEmail      = "user_email"
	ColUserPhone      = "user_phoneno"
	ColUserGender     = "user_gender"
	ColEmpID          = "emp_id"
	ColEmpCompany     = "emp_company"
	ColEmpDesignation = "emp_designation"
	ColEmpLocation    = "emp_comp_location"
)

// User is one row of the user table.
type User struct {
	ID      int
	Name    string
	Email   string
	Phone   string
	Gender  string
	EmpID   string
	Present Field
}

// Has reports whether f was supplied.
func (u User) Has(f Field) bool {
	return u.Present&f != 0
}

// Set assigns the field named by column and marks it present. Unknown
// columns are ignored. A user_id that is not an integer leaves ID absent.
func (u *User) Set(column, value string) {
	switch column {
	case ColUserID:
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return
		}
		u.ID = id
		u.Present |= UserID
	case ColUserName:
		u.Name = value
		u.Present |= UserName
	case ColUserEmail:
		u.Email = value
		u.Present |= UserEmail
	case ColUserPhone:
		u.Phone = value
		u.Present |= UserPhone
	case ColUserGender:
		u.Gender = value
		u.Present |= UserGender
	case ColEmpID:
		u.EmpID = value
		u.Present |= UserEmpID
	}
}

// Employee is one row of the employee table.
type Employee struct {
	Company     string
	Designation string
	Location    string
	EmpID       string
	Present     Field
}

// Has reports whether f was supplied.
func (e Employee) Has(f Field) bool {
	return e.Present&f != 0
}

// Set assigns the field named by column and marks it present. Unknown
// columns are ignored.
func (e *Employee) Set(column, value string) {
	switch column {
	case ColEmpCompany:
		e.Company = value
		e.Present |= EmpCompany
	case ColEmpDesignation:
		e.Designation = value
		e.Present |= EmpDesignation
	case ColEmpLocation:
		e.Location = value
		e.Present |= EmpLocation
	case ColEmpID:
		e.EmpID = value
		e.Present |= EmpID
	}
}

// Assign overwrites company, designation and location, marking all three present.
func (e *Employee) Assign(company, designation, location string) {
	e.Company = company
	e.Designation = designation
	e.Location = location
	e.Present |= EmpCompany | EmpDesignation | EmpLocation
}

// Merged joins one user with the employee aligned to it.
type Merged struct {
	User     User
	Employee Employee
	Matched  bool
}

// Empty reports whether a field is absent or holds only whitespace.
func Empty(value string, present bool) bool {
	return !present || strings.TrimSpace(value) == ""
}
