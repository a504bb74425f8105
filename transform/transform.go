// Package transform turns merged records into a display-ready [Report]:
// names are prefixed, locations recoded and columns selected and renamed
// according to the schema of the reconciliation policy.
package transform

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tsawler/rostermerge/config"
	"github.com/tsawler/rostermerge/reconcile"
	"github.com/tsawler/rostermerge/record"
)

// Report is a formatted table. Absent values are rendered as "". A Report
// is not modified after Format returns it.
type Report struct {
	Columns []string
	Widths  []float64 // PDF column widths in mm, parallel to Columns
	Rows    [][]string
}

// Len returns the number of data rows.
func (r *Report) Len() int {
	return len(r.Rows)
}

// Formatter renders merged records using the prefixes, lookup tables and
// schemas of a configuration.
type Formatter struct {
	cfg *config.Config
}

// NewFormatter creates a formatter. cfg must not be modified afterwards.
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// Format renders records with the schema and location recoding of policy.
// The positional policy recodes only Bangalore aliases; the indexed policy
// recodes every location through the lookup table.
func (f *Formatter) Format(policy reconcile.Policy, records []record.Merged) (*Report, error) {
	switch policy {
	case reconcile.PolicyPositional:
		return f.render(f.cfg.Schemas.Positional, records, func(loc string) string {
			return RecodeBangalore(loc, f.cfg.BangaloreAliases, f.cfg.BangaloreCode)
		})
	case reconcile.PolicyIndexed:
		return f.render(f.cfg.Schemas.Indexed, records, func(loc string) string {
			return RecodeLookup(loc, f.cfg.LocationCodes, f.cfg.FallbackCode)
		})
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
}

func (f *Formatter) render(schema []config.Column, records []record.Merged, recode func(string) string) (*Report, error) {
	report := &Report{
		Columns: make([]string, len(schema)),
		Widths:  make([]float64, len(schema)),
		Rows:    make([][]string, 0, len(records)),
	}
	for i, col := range schema {
		report.Columns[i] = col.Title
		report.Widths[i] = col.Width
	}

	for n, rec := range records {
		row := make([]string, len(schema))
		for i, col := range schema {
			v, err := f.value(col.Field, rec, recode)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", n+1, err)
			}
			row[i] = v
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

func (f *Formatter) value(field config.Field, rec record.Merged, recode func(string) string) (string, error) {
	u, e := rec.User, rec.Employee
	switch field {
	case config.FieldEmpID:
		return u.EmpID, nil
	case config.FieldUserID:
		if !u.Has(record.UserID) {
			return "", nil
		}
		return strconv.Itoa(u.ID), nil
	case config.FieldName:
		return f.PrefixName(u.Name), nil
	case config.FieldEmail:
		return u.Email, nil
	case config.FieldPhone:
		return u.Phone, nil
	case config.FieldGender:
		return u.Gender, nil
	case config.FieldCompany:
		return e.Company, nil
	case config.FieldDesignation:
		return e.Designation, nil
	case config.FieldLocation:
		if !e.Has(record.EmpLocation) {
			return "", nil
		}
		return recode(e.Location), nil
	case config.FieldMatched:
		if rec.Matched {
			return "True", nil
		}
		return "False", nil
	default:
		return "", fmt.Errorf("unknown field %q", field)
	}
}

// PrefixName prepends the configured name prefix.
func (f *Formatter) PrefixName(name string) string {
	return f.cfg.NamePrefix + name
}

// RecodeBangalore prefixes a location with code when its trimmed,
// case-folded value is one of aliases. Other values, including "", are
// returned unchanged.
func RecodeBangalore(location string, aliases []string, code string) string {
	folded := fold(strings.TrimSpace(location))
	if folded == "" {
		return location
	}
	for _, alias := range aliases {
		if fold(alias) == folded {
			return code + ": " + location
		}
	}
	return location
}

// RecodeLookup formats a location as "<code>: <location>" using an exact
// lookup in codes. Unknown locations get fallback; "" stays "".
func RecodeLookup(location string, codes map[string]string, fallback string) string {
	if location == "" {
		return ""
	}
	code, ok := codes[location]
	if !ok {
		code = fallback
	}
	return code + ": " + location
}

func fold(s string) string {
	return cases.Fold().String(s)
}
