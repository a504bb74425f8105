// Package reconcile joins user records with employee records.
//
// Two policies exist and are never mixed. [Positional] aligns the two
// sequences by position and then applies a table of manual overrides keyed
// by employee identifier. [Indexed] aligns a bounded prefix of employees by
// index and corrects one known user whose aligned row is a leftover header.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/tsawler/rostermerge/config"
	"github.com/tsawler/rostermerge/record"
)

// Policy selects the reconciliation policy.
type Policy string

const (
	PolicyPositional Policy = "positional"
	PolicyIndexed    Policy = "indexed"
)

// ParsePolicy parses a policy name. The empty string selects positional.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyPositional:
		return PolicyPositional, nil
	case PolicyIndexed:
		return PolicyIndexed, nil
	default:
		return "", fmt.Errorf("unknown policy %q (use positional or indexed)", s)
	}
}

// Run reconciles with the policy p, taking its tables from cfg.
func Run(p Policy, users []record.User, employees []record.Employee, cfg *config.Config) ([]record.Merged, error) {
	switch p {
	case PolicyPositional:
		return Positional(users, employees, cfg.Overrides), nil
	case PolicyIndexed:
		return Indexed(users, employees, cfg.EmployeeLimit, cfg.Correction), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", p)
	}
}

// Positional aligns users and employees by position. Employees are padded
// with absent rows up to the user count and the longer side is truncated,
// so the result has one row per user. Rows whose user name, email and
// employee identifier are all empty are dropped. Overrides then replace the
// employee fields of every row whose employee identifier is a key.
func Positional(users []record.User, employees []record.Employee, overrides map[string]config.Assignment) []record.Merged {
	merged := make([]record.Merged, 0, len(users))
	for i, u := range users {
		var e record.Employee
		if i < len(employees) {
			e = employees[i]
		}

		if record.Empty(u.Name, u.Has(record.UserName)) &&
			record.Empty(u.Email, u.Has(record.UserEmail)) &&
			record.Empty(u.EmpID, u.Has(record.UserEmpID)) {
			continue
		}

		if u.Has(record.UserEmpID) {
			if a, ok := overrides[u.EmpID]; ok {
				e.Assign(a.Company, a.Designation, a.Location)
			}
		}

		merged = append(merged, record.Merged{User: u, Employee: e, Matched: matched(e)})
	}
	return merged
}

// Indexed aligns the first limit employees with users by index. Users past
// the aligned range get empty employee fields. The user named by the
// correction is reassigned when its employee fields still hold a
// placeholder header value or are all empty.
func Indexed(users []record.User, employees []record.Employee, limit int, fix config.Correction) []record.Merged {
	if limit >= 0 && len(employees) > limit {
		employees = employees[:limit]
	}

	merged := make([]record.Merged, len(users))
	for i, u := range users {
		var e record.Employee
		e.Assign("", "", "")
		if i < len(employees) {
			src := employees[i]
			e.Assign(src.Company, src.Designation, src.Location)
		}

		if u.Has(record.UserID) && u.ID == fix.UserID && needsCorrection(e, fix.Placeholders) {
			e.Assign(fix.Assign.Company, fix.Assign.Designation, fix.Assign.Location)
		}

		merged[i] = record.Merged{User: u, Employee: e, Matched: matched(e)}
	}
	return merged
}

func needsCorrection(e record.Employee, placeholders config.Assignment) bool {
	if isPlaceholder(e.Company, placeholders.Company) ||
		isPlaceholder(e.Designation, placeholders.Designation) ||
		isPlaceholder(e.Location, placeholders.Location) {
		return true
	}
	return record.Empty(e.Company, e.Has(record.EmpCompany)) &&
		record.Empty(e.Designation, e.Has(record.EmpDesignation)) &&
		record.Empty(e.Location, e.Has(record.EmpLocation))
}

func isPlaceholder(value, placeholder string) bool {
	return placeholder != "" && value == placeholder
}

func matched(e record.Employee) bool {
	return !record.Empty(e.Company, e.Has(record.EmpCompany))
}
