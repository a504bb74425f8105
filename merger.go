package rostermerge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tsawler/rostermerge/classify"
	"github.com/tsawler/rostermerge/config"
	"github.com/tsawler/rostermerge/export"
	"github.com/tsawler/rostermerge/format"
	"github.com/tsawler/rostermerge/model"
	"github.com/tsawler/rostermerge/reader"
	"github.com/tsawler/rostermerge/reconcile"
	"github.com/tsawler/rostermerge/record"
	"github.com/tsawler/rostermerge/tables"
	"github.com/tsawler/rostermerge/transform"
)

// Merger provides a fluent interface for extracting, reconciling and
// formatting the user and employee tables of a PDF. Each configuration
// method returns a new Merger instance, so a configured Merger can be shared
// and reused.
type Merger struct {
	// Source
	filename string

	// Reader
	reader *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options MergeOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Merger with a deep copy of options.
func (m *Merger) clone() *Merger {
	return &Merger{
		filename:     m.filename,
		reader:       m.reader,
		ownsReader:   m.ownsReader,
		readerOpened: m.readerOpened,
		options:      m.options.clone(),
		err:          m.err,
	}
}

// ensureReader opens the reader if not already open.
func (m *Merger) ensureReader() error {
	if m.readerOpened {
		return nil
	}
	if m.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	header, err := readHeader(m.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	if err := format.DetectInput(m.filename, header); err != nil {
		return err
	}

	r, err := reader.Open(m.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	m.reader = r
	m.ownsReader = true
	m.readerOpened = true
	return nil
}

func readHeader(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return header[:n], nil
}

// Close releases resources associated with the Merger.
// It is safe to call Close multiple times.
func (m *Merger) Close() error {
	if m.ownsReader && m.reader != nil {
		err := m.reader.Close()
		m.reader = nil
		m.ownsReader = false
		m.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Merger instance)
// ============================================================================

// Pages restricts extraction to the given pages (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	result, err := rostermerge.Open("roster.pdf").Pages(1, 2).Merge(ctx)
func (m *Merger) Pages(pages ...int) *Merger {
	newM := m.clone()
	newM.options.pages = append(newM.options.pages, pages...)
	return newM
}

// PageRange restricts extraction to a range of pages (1-indexed, inclusive).
func (m *Merger) PageRange(start, end int) *Merger {
	newM := m.clone()
	for i := start; i <= end; i++ {
		newM.options.pages = append(newM.options.pages, i)
	}
	return newM
}

// Strategy selects the table detection strategy.
//
// Example:
//
//	grids, _, err := rostermerge.Open("roster.pdf").Strategy(tables.StrategyLattice).Grids(ctx)
func (m *Merger) Strategy(s tables.Strategy) *Merger {
	newM := m.clone()
	newM.options.strategy = s
	return newM
}

// Policy selects the reconciliation policy.
//
// Example:
//
//	result, err := rostermerge.Open("roster.pdf").Policy(reconcile.PolicyIndexed).Merge(ctx)
func (m *Merger) Policy(p reconcile.Policy) *Merger {
	newM := m.clone()
	newM.options.policy = p
	return newM
}

// Config replaces the lookup tables, schemas and report layout. The
// configuration is copied; later changes to cfg have no effect.
func (m *Merger) Config(cfg *config.Config) *Merger {
	newM := m.clone()
	if cfg == nil {
		newM.err = fmt.Errorf("nil config")
		return newM
	}
	if err := cfg.Validate(); err != nil {
		newM.err = err
		return newM
	}
	newM.options.config = cfg.Clone()
	return newM
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Summary counts what a run found.
type Summary struct {
	Pages          int // pages read
	Grids          int // raw grids detected
	UserTables     int // user tables identified (positional policy)
	EmployeeTables int // employee tables identified (positional policy)
	Users          int // user records
	Employees      int // employee records
	Records        int // merged records
}

// Result is the outcome of Merge.
type Result struct {
	Policy   reconcile.Policy
	Records  []record.Merged
	Report   *transform.Report
	Summary  Summary
	Warnings []Warning

	layout config.Report
}

// WriteFile writes the report to path in the format chosen by its
// extension.
func (r *Result) WriteFile(path string) error {
	cfg, err := export.ForPath(path, r.layout)
	if err != nil {
		return err
	}
	return export.NewExporterWithConfig(cfg).ExportToFile(r.Report, path)
}

// Grids extracts the raw cell grids of the configured pages without
// classifying them. This is a terminal operation that closes the underlying
// reader.
func (m *Merger) Grids(ctx context.Context) ([]*model.Table, []Warning, error) {
	if m.err != nil {
		return nil, nil, m.err
	}

	m = m.clone()
	if err := m.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer m.Close()

	grids, _, warnings, err := m.extract(ctx)
	return grids, warnings, err
}

// Merge extracts the tables, classifies them, reconciles users with
// employees and formats the report. This is a terminal operation that closes
// the underlying reader.
//
// Errors wrapping ErrNoUserTables, ErrNoEmployeeTables or ErrTransform are
// soft: the returned Result still carries the summary and warnings, but no
// report. Any other error means the document could not be read.
//
// Example:
//
//	result, err := rostermerge.Open("roster.pdf").Merge(ctx)
//	if err != nil {
//	    // handle error
//	}
//	err = result.WriteFile("final_output.csv")
func (m *Merger) Merge(ctx context.Context) (*Result, error) {
	if m.err != nil {
		return nil, m.err
	}

	// Work on a copy so the configured Merger stays reusable
	m = m.clone()
	if err := m.ensureReader(); err != nil {
		return nil, err
	}
	defer m.Close()

	grids, pages, warnings, err := m.extract(ctx)
	if err != nil {
		return nil, err
	}

	opts := m.options
	result := &Result{
		Policy:   opts.policy,
		Warnings: warnings,
		layout:   opts.config.Report,
	}
	result.Summary.Pages = pages
	result.Summary.Grids = len(grids)

	var users []record.User
	var employees []record.Employee

	switch opts.policy {
	case reconcile.PolicyPositional:
		users, employees, err = m.collectTables(grids, result)
		if err != nil {
			return result, err
		}
	case reconcile.PolicyIndexed:
		users, employees = classify.ScanRows(grids)
	default:
		return nil, fmt.Errorf("unknown policy %q", opts.policy)
	}
	result.Summary.Users = len(users)
	result.Summary.Employees = len(employees)

	merged, err := reconcile.Run(opts.policy, users, employees, opts.config)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	report, err := transform.NewFormatter(opts.config).Format(opts.policy, merged)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	result.Records = merged
	result.Report = report
	result.Summary.Records = len(merged)
	return result, nil
}

// extract detects the raw grids of every selected page. Pages that cannot
// be read or searched are skipped with a warning.
func (m *Merger) extract(ctx context.Context) ([]*model.Table, int, []Warning, error) {
	pageNums, err := m.resolvePages()
	if err != nil {
		return nil, 0, nil, err
	}

	var grids []*model.Table
	var warnings []Warning
	read := 0

	for _, n := range pageNums {
		if err := ctx.Err(); err != nil {
			return nil, read, warnings, err
		}

		page, err := m.reader.Page(n)
		if err != nil {
			warnings = append(warnings, Warning{Page: n, Message: "skipped page", Err: err})
			continue
		}
		read++

		found, err := tables.Detect(page, m.options.strategy)
		if err != nil {
			warnings = append(warnings, Warning{Page: n, Message: "table detection failed", Err: err})
			continue
		}
		grids = append(grids, found...)
	}

	return grids, read, warnings, nil
}

// collectTables runs the header scan over every grid and gathers the rows
// of the identified user and employee tables in encounter order.
func (m *Merger) collectTables(grids []*model.Table, result *Result) ([]record.User, []record.Employee, error) {
	var userTables, empTables []*classify.Table

	for _, grid := range grids {
		for _, out := range classify.ScanGrid(grid) {
			if !out.OK() {
				w := Warning{Page: out.Page, Table: out.Index, Message: fmt.Sprintf("skipped %s block", out.Block), Err: out.Err}
				var te *classify.TableError
				if errors.As(out.Err, &te) {
					w.Err = te.Err
				}
				result.Warnings = append(result.Warnings, w)
				continue
			}

			switch classify.Identify(out.Table) {
			case classify.UserTable:
				userTables = append(userTables, out.Table)
			case classify.EmployeeTable:
				empTables = append(empTables, out.Table)
			}
		}
	}
	result.Summary.UserTables = len(userTables)
	result.Summary.EmployeeTables = len(empTables)

	var errs []error
	if len(userTables) == 0 {
		errs = append(errs, ErrNoUserTables)
	}
	if len(empTables) == 0 {
		errs = append(errs, ErrNoEmployeeTables)
	}
	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}

	hasEmpID := false
	for _, t := range userTables {
		if t.HasColumn(record.ColEmpID) {
			hasEmpID = true
			break
		}
	}
	if !hasEmpID {
		return nil, nil, fmt.Errorf("%w: no user table has a %s column", ErrTransform, record.ColEmpID)
	}

	var users []record.User
	for _, t := range userTables {
		users = append(users, t.Users()...)
	}
	var employees []record.Employee
	for _, t := range empTables {
		employees = append(employees, t.Employees()...)
	}
	return users, employees, nil
}

// resolvePages validates the selected page numbers and returns them sorted
// and deduplicated. If no pages are selected, returns all pages.
func (m *Merger) resolvePages() ([]int, error) {
	pageCount := m.reader.PageCount()

	if len(m.options.pages) == 0 {
		pages := make([]int, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, p := range m.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}

	sort.Ints(pages)
	return pages, nil
}
