package rostermerge

import (
	"github.com/tsawler/rostermerge/config"
	"github.com/tsawler/rostermerge/reconcile"
	"github.com/tsawler/rostermerge/tables"
)

// MergeOptions holds configuration for a merge run.
type MergeOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Table detection
	strategy tables.Strategy

	// Reconciliation
	policy reconcile.Policy

	// Lookup tables, schemas and report layout
	config *config.Config
}

// defaultOptions returns the default merge options.
func defaultOptions() MergeOptions {
	return MergeOptions{
		pages:    nil,
		strategy: tables.StrategyAuto,
		policy:   reconcile.PolicyPositional,
		config:   config.Default(),
	}
}

// clone creates a deep copy of MergeOptions.
func (o MergeOptions) clone() MergeOptions {
	newOpts := MergeOptions{
		strategy: o.strategy,
		policy:   o.policy,
		config:   o.config.Clone(),
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
