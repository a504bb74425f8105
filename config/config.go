// Package config holds the lookup tables, remediation data, column schemas
// and report layout used by reconciliation, formatting and export.
//
// [Default] returns the built-in values. [Load] reads a YAML file on top of
// them: scalars and lists in the file replace the defaults, maps are merged
// key by key.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Field names a value a report column can display.
type Field string

const (
	FieldEmpID       Field = "emp_id"
	FieldUserID      Field = "user_id"
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldGender      Field = "gender"
	FieldCompany     Field = "company"
	FieldDesignation Field = "designation"
	FieldLocation    Field = "location"
	FieldMatched     Field = "matched"
)

var knownFields = []Field{
	FieldEmpID, FieldUserID, FieldName, FieldEmail, FieldPhone,
	FieldGender, FieldCompany, FieldDesignation, FieldLocation, FieldMatched,
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	return slices.Contains(knownFields, f)
}

// Assignment is the employee part of a record: company, designation and
// location.
type Assignment struct {
	Company     string `yaml:"company"`
	Designation string `yaml:"designation"`
	Location    string `yaml:"location"`
}

// Correction rewrites the employee fields of one user whose aligned
// employee row is a leftover header or is empty.
type Correction struct {
	UserID int        `yaml:"user_id"`
	Assign Assignment `yaml:"assign"`
	// Placeholders holds the header text each field carries when the
	// header row was aligned instead of data.
	Placeholders Assignment `yaml:"placeholders"`
}

// Column is one column of an output schema.
type Column struct {
	Field Field   `yaml:"field"`
	Title string  `yaml:"title"`
	Width float64 `yaml:"width"` // PDF cell width in mm
}

// Schemas holds the output schema for each reconciliation policy.
type Schemas struct {
	Positional []Column `yaml:"positional"`
	Indexed    []Column `yaml:"indexed"`
}

// Report holds the PDF report layout.
type Report struct {
	Orientation  string  `yaml:"orientation"` // "L" or "P"
	PageSize     string  `yaml:"page_size"`
	Font         string  `yaml:"font"`
	FontSize     float64 `yaml:"font_size"`
	RowHeight    float64 `yaml:"row_height"`
	Margin       float64 `yaml:"margin"` // auto page break margin in mm
	RepeatHeader bool    `yaml:"repeat_header"`
}

// Config is the complete configuration. Treat a Config as immutable once
// handed to a pipeline; use Clone to derive a modified copy.
type Config struct {
	NamePrefix string `yaml:"name_prefix"`

	// Location recoding for the indexed policy.
	LocationCodes map[string]string `yaml:"location_codes"`
	FallbackCode  string            `yaml:"fallback_code"`

	// Location recoding for the positional policy.
	BangaloreAliases []string `yaml:"bangalore_aliases"`
	BangaloreCode    string   `yaml:"bangalore_code"`

	// Overrides maps an employee identifier to the assignment that replaces
	// whatever was aligned to it.
	Overrides map[string]Assignment `yaml:"overrides"`

	Correction    Correction `yaml:"correction"`
	EmployeeLimit int        `yaml:"employee_limit"`

	Schemas Schemas `yaml:"schemas"`
	Report  Report  `yaml:"report"`
}

// Default returns the built-in configuration. Each call returns a fresh copy.
func Default() *Config {
	return &Config{
		NamePrefix: "employee name: ",
		LocationCodes: map[string]string{
			"Bangalore":  "DLL",
			"Bengaluru":  "DLL",
			"Chennai":    "CHN",
			"Hyderabad":  "HYD",
			"Pune":       "PUN",
			"Mumbai":     "MUM",
			"Gurgaon":    "GUR",
			"Noida":      "NOI",
			"Coimbatore": "CBE",
		},
		FallbackCode:     "OTH",
		BangaloreAliases: []string{"bangalore", "bengaluru"},
		BangaloreCode:    "DLL",
		Overrides: map[string]Assignment{
			"CC3456YG11": {Company: "Zoho", Designation: "Data Engineer", Location: "Chennai"},
			"CC3456YG12": {Company: "TCS", Designation: "Analyst", Location: "Bengaluru"},
			"CC3456YG13": {Company: "Infosys", Designation: "Business Associate", Location: "Hyderabad"},
			"CC3456YG14": {Company: "Wipro", Designation: "Backend Developer", Location: "Pune"},
			"CC3456YG15": {Company: "Cognizant", Designation: "Quality Analyst", Location: "Chennai"},
		},
		Correction: Correction{
			UserID: 1,
			Assign: Assignment{Company: "Microsoft", Designation: "Software Developer", Location: "Bangalore"},
			Placeholders: Assignment{
				Company:     "emp_company",
				Designation: "emp_designation",
				Location:    "emp_comp_location",
			},
		},
		EmployeeLimit: 10,
		Schemas: Schemas{
			Positional: []Column{
				{Field: FieldCompany, Title: "Company", Width: 30},
				{Field: FieldName, Title: "Name", Width: 50},
				{Field: FieldEmail, Title: "Email", Width: 50},
				{Field: FieldEmpID, Title: "EmpID", Width: 25},
				{Field: FieldLocation, Title: "Location", Width: 35},
				{Field: FieldPhone, Title: "Phone", Width: 25},
				{Field: FieldGender, Title: "Gender", Width: 15},
				{Field: FieldDesignation, Title: "Designation", Width: 35},
				{Field: FieldMatched, Title: "Matched", Width: 12},
			},
			Indexed: []Column{
				{Field: FieldEmpID, Title: "Employee ID", Width: 25},
				{Field: FieldUserID, Title: "User ID", Width: 15},
				{Field: FieldName, Title: "Employee Name", Width: 50},
				{Field: FieldEmail, Title: "Email", Width: 45},
				{Field: FieldPhone, Title: "Phone", Width: 30},
				{Field: FieldGender, Title: "Gender", Width: 20},
				{Field: FieldCompany, Title: "Company", Width: 30},
				{Field: FieldDesignation, Title: "Designation", Width: 35},
				{Field: FieldLocation, Title: "Work Location", Width: 45},
			},
		},
		Report: Report{
			Orientation:  "L",
			PageSize:     "A4",
			Font:         "Arial",
			FontSize:     10,
			RowHeight:    10,
			Margin:       15,
			RepeatHeader: true,
		},
	}
}

// Load reads a YAML file and applies it on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse applies YAML data on top of Default and validates the result.
// Unknown keys are rejected. Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required values are present and sane.
func (c *Config) Validate() error {
	if c.FallbackCode == "" {
		return fmt.Errorf("%w: fallback_code is required", ErrInvalid)
	}
	if c.BangaloreCode == "" {
		return fmt.Errorf("%w: bangalore_code is required", ErrInvalid)
	}
	for city, code := range c.LocationCodes {
		if strings.TrimSpace(city) == "" || code == "" {
			return fmt.Errorf("%w: location_codes entry %q: %q", ErrInvalid, city, code)
		}
	}
	for id := range c.Overrides {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: overrides: empty employee identifier", ErrInvalid)
		}
	}
	if c.EmployeeLimit <= 0 {
		return fmt.Errorf("%w: employee_limit must be > 0", ErrInvalid)
	}
	if err := validateSchema("positional", c.Schemas.Positional); err != nil {
		return err
	}
	if err := validateSchema("indexed", c.Schemas.Indexed); err != nil {
		return err
	}
	return c.Report.validate()
}

func validateSchema(name string, columns []Column) error {
	if len(columns) == 0 {
		return fmt.Errorf("%w: schemas.%s: no columns", ErrInvalid, name)
	}
	for i, col := range columns {
		if !col.Field.Valid() {
			return fmt.Errorf("%w: schemas.%s[%d]: unknown field %q", ErrInvalid, name, i, col.Field)
		}
		if col.Title == "" {
			return fmt.Errorf("%w: schemas.%s[%d]: title is required", ErrInvalid, name, i)
		}
		if col.Width <= 0 {
			return fmt.Errorf("%w: schemas.%s[%d]: width must be > 0", ErrInvalid, name, i)
		}
	}
	return nil
}

func (r Report) validate() error {
	switch r.Orientation {
	case "L", "P":
	default:
		return fmt.Errorf("%w: report.orientation %q (use L or P)", ErrInvalid, r.Orientation)
	}
	if r.PageSize == "" || r.Font == "" {
		return fmt.Errorf("%w: report.page_size and report.font are required", ErrInvalid)
	}
	if r.FontSize <= 0 || r.RowHeight <= 0 || r.Margin < 0 {
		return fmt.Errorf("%w: report sizes must be positive", ErrInvalid)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.LocationCodes = maps.Clone(c.LocationCodes)
	out.BangaloreAliases = slices.Clone(c.BangaloreAliases)
	out.Overrides = maps.Clone(c.Overrides)
	out.Schemas.Positional = slices.Clone(c.Schemas.Positional)
	out.Schemas.Indexed = slices.Clone(c.Schemas.Indexed)
	return &out
}
