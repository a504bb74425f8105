package tables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/rostermerge/model"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables in a page
	Detect(page *model.Page) ([]*model.Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Minimum rows for a valid table
	MinRows int

	// Minimum columns for a valid table
	MinCols int

	// Minimum confidence threshold (0-1)
	MinConfidence float64

	// Maximum horizontal distance between fragment left edges that share a column (points)
	MaxCellGap float64

	// Tolerance for row/column alignment (points)
	AlignmentTolerance float64

	// Smallest width or height of a ruled cell (points)
	MinCellSize float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
		MaxCellGap:         5.0,
		AlignmentTolerance: 2.0,
		MinCellSize:        2.0,
	}
}

// Strategy selects which detectors run on a page
type Strategy string

const (
	// StrategyAuto runs the lattice detector and falls back to the geometric
	// detector on pages where it finds nothing.
	StrategyAuto Strategy = "auto"
	// StrategyLattice only accepts tables outlined by ruled cells.
	StrategyLattice Strategy = "lattice"
	// StrategyGeometric infers tables from text alignment alone.
	StrategyGeometric Strategy = "geometric"
)

// ParseStrategy converts a name into a Strategy. The empty string is auto.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyAuto, "":
		return StrategyAuto, nil
	case StrategyLattice:
		return StrategyLattice, nil
	case StrategyGeometric:
		return StrategyGeometric, nil
	default:
		return "", fmt.Errorf("unknown detection strategy %q (want auto, lattice or geometric)", s)
	}
}

// Detect finds the tables on page using the given strategy. Tables are
// returned top to bottom, numbered from 1.
func Detect(page *model.Page, strategy Strategy) ([]*model.Table, error) {
	switch strategy {
	case StrategyLattice, StrategyGeometric:
		detector := GetDetector(string(strategy))
		if detector == nil {
			return nil, fmt.Errorf("detector %q not registered", strategy)
		}
		return detector.Detect(page)
	case StrategyAuto, "":
		found, err := Detect(page, StrategyLattice)
		if err != nil || len(found) > 0 {
			return found, err
		}
		return Detect(page, StrategyGeometric)
	default:
		return nil, fmt.Errorf("unknown detection strategy %q", strategy)
	}
}

// numberTables orders tables top to bottom, then left to right, and stamps
// them with the page number and their 1-based position.
func numberTables(page *model.Page, found []*model.Table) {
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].BBox.Top() != found[j].BBox.Top() {
			return found[i].BBox.Top() > found[j].BBox.Top()
		}
		return found[i].BBox.Left() < found[j].BBox.Left()
	})
	for i, t := range found {
		t.Page = page.Number
		t.Index = i + 1
	}
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector
func (r *DetectorRegistry) Register(detector Detector) {
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

func init() {
	RegisterDetector(NewLatticeDetector())
	RegisterDetector(NewGeometricDetector())
}
