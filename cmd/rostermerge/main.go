// Command rostermerge reads the user and employee tables of a PDF, merges
// them and writes the report as CSV, PDF or another supported format.
//
// Usage:
//
//	rostermerge <pdf_path> [--policy positional|indexed] [-o out.csv]...
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tsawler/rostermerge"
	"github.com/tsawler/rostermerge/config"
	"github.com/tsawler/rostermerge/internal/log"
	"github.com/tsawler/rostermerge/reconcile"
	"github.com/tsawler/rostermerge/tables"
)

const usage = "usage: rostermerge <pdf_path> [flags]"

// Exit codes
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

type options struct {
	policy     string
	outputs    []string
	configPath string
	pages      []int
	strategy   string
	dump       bool
	logLevel   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := &options{}
	code := exitOK

	cmd := &cobra.Command{
		Use:   "rostermerge <pdf_path>",
		Short: "Merge the user and employee tables of a PDF into one report",
		Long: `rostermerge extracts the user table and the employee table from a PDF,
joins them, applies the configured corrections and writes the merged report.
The output format is chosen from each output file extension.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				fmt.Fprintln(stdout, usage)
				return nil
			}
			var err error
			code, err = execute(ctx, args[0], opts, stdout, stderr)
			return err
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.policy, "policy", string(reconcile.PolicyPositional), "Reconciliation policy: positional or indexed")
	flags.StringArrayVarP(&opts.outputs, "output", "o", nil, "Output file, repeatable; format from extension (default: final_output.csv, plus final_output.pdf for indexed)")
	flags.StringVar(&opts.configPath, "config", "", "YAML file overriding the built-in lookup tables and layout")
	flags.IntSliceVar(&opts.pages, "pages", nil, "Pages to read, e.g. 1,2 (default: all)")
	flags.StringVar(&opts.strategy, "strategy", string(tables.StrategyAuto), "Table detection: auto, lattice or geometric")
	flags.BoolVar(&opts.dump, "dump", false, "Print every raw table grid before merging")
	flags.StringVar(&opts.logLevel, "log-level", log.LevelInfo, "Log level: debug, info, warn or error")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n%s\n", err, usage)
		return exitUsage
	}
	return code
}

// execute runs one merge. A non-nil error means the flags were invalid.
func execute(ctx context.Context, path string, opts *options, stdout, stderr io.Writer) (int, error) {
	logger, err := log.New(stderr, opts.logLevel)
	if err != nil {
		return exitUsage, err
	}
	defer logger.Sync()

	policy, err := reconcile.ParsePolicy(opts.policy)
	if err != nil {
		return exitUsage, err
	}
	strategy, err := tables.ParseStrategy(opts.strategy)
	if err != nil {
		return exitUsage, err
	}

	cfg := config.Default()
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			logger.Errorf("%v", err)
			return exitFatal, nil
		}
	}

	outputs := opts.outputs
	if len(outputs) == 0 {
		outputs = defaultOutputs(policy)
	}

	m := rostermerge.Open(path).
		Policy(policy).
		Strategy(strategy).
		Config(cfg).
		Pages(opts.pages...)

	if opts.dump {
		grids, warnings, err := m.Grids(ctx)
		if err != nil {
			logger.Errorf("%v", err)
			return exitFatal, nil
		}
		logWarnings(logger, warnings)
		if err := rostermerge.DumpGrids(stdout, grids); err != nil {
			logger.Errorf("writing dump: %v", err)
			return exitFatal, nil
		}
	}

	result, err := m.Merge(ctx)
	if result != nil {
		logWarnings(logger, result.Warnings)
		s := result.Summary
		logger.Debugf("read %d pages, %d grids, %d user tables, %d employee tables, %d users, %d employees",
			s.Pages, s.Grids, s.UserTables, s.EmployeeTables, s.Users, s.Employees)
	}
	if err != nil {
		if rostermerge.IsSoft(err) {
			fmt.Fprintln(stdout, err)
			return exitOK, nil
		}
		logger.Errorf("%v", err)
		return exitFatal, nil
	}

	fmt.Fprintf(stdout, "Merged %d records (%s policy)\n", result.Summary.Records, result.Policy)

	for _, out := range outputs {
		if err := result.WriteFile(out); err != nil {
			logger.Errorf("writing %s: %v", out, err)
			return exitFatal, nil
		}
		logger.Infof("wrote %s", out)
		fmt.Fprintf(stdout, "Saved %s\n", out)
	}

	return exitOK, nil
}

func defaultOutputs(policy reconcile.Policy) []string {
	if policy == reconcile.PolicyIndexed {
		return []string{"final_output.csv", "final_output.pdf"}
	}
	return []string{"final_output.csv"}
}

func logWarnings(logger log.Logger, warnings []rostermerge.Warning) {
	for _, w := range warnings {
		logger.Warnf("%s", w)
	}
}
