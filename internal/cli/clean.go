package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mvaneijk/tidycat/pkg/config"
	"github.com/mvaneijk/tidycat/pkg/dupes"
	"github.com/mvaneijk/tidycat/pkg/logging"
	"github.com/mvaneijk/tidycat/pkg/models"
	"github.com/mvaneijk/tidycat/pkg/ops"
	"github.com/mvaneijk/tidycat/pkg/output"
	"github.com/mvaneijk/tidycat/pkg/prompt"
	"github.com/mvaneijk/tidycat/pkg/transfer"
	"github.com/mvaneijk/tidycat/pkg/walker"
)

// CleanFlags holds the root command flags
type CleanFlags struct {
	Catalog string
	Default bool

	// Operation flags
	Duplicates bool
	Empty      bool
	Temporary  bool
	SameNames  bool
	Access     bool
	Tricky     bool
	Copy       bool
	Move       bool
	Rename     bool

	Output string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var cleanFlags CleanFlags

// AddCleanFlags adds the cleanup flags to the root command
func AddCleanFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&cleanFlags.Catalog, "catalog", "c", "./X", "destination catalog for copy and move")
	cmd.Flags().BoolVarP(&cleanFlags.Default, "default", "D", false, "automatic mode: apply the default answer at every decision point")

	cmd.Flags().BoolVar(&cleanFlags.Duplicates, "duplicates", false, "remove files with duplicate content, keeping the oldest")
	cmd.Flags().BoolVar(&cleanFlags.Empty, "empty", false, "remove zero-length files")
	cmd.Flags().BoolVar(&cleanFlags.Temporary, "temporary", false, "remove temporary files (configurable patterns)")
	cmd.Flags().BoolVar(&cleanFlags.SameNames, "same-names", false, "remove later files sharing a basename with an earlier one")
	cmd.Flags().BoolVar(&cleanFlags.Access, "access", false, "normalize file permission bits")
	cmd.Flags().BoolVar(&cleanFlags.Tricky, "tricky", false, "rename files containing tricky characters")
	cmd.Flags().BoolVar(&cleanFlags.Copy, "copy", false, "copy catalog contents into the destination catalog")
	cmd.Flags().BoolVar(&cleanFlags.Move, "move", false, "move catalog contents into the destination catalog")
	cmd.Flags().BoolVar(&cleanFlags.Rename, "rename", false, "prompt for a new name for every file")

	cmd.Flags().StringVarP(&cleanFlags.Output, "output", "o", "", "output format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&cleanFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&cleanFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&cleanFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// RunClean is the root command entry point. It assembles the run from the
// flags, executes the requested operations in their fixed order, and exits
// with the report's status code.
func RunClean(cmd *cobra.Command, args []string) error {
	run, err := buildRun(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	reporter := createReporter(cfg)

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	var confirm prompt.Confirmer
	if run.Automatic {
		confirm = prompt.Auto{}
	} else {
		confirm = prompt.NewTerminal()
	}

	w := walker.New(func(path string, err error) {
		reporter.Diagnostic(path, err)
	})

	logger.Info("run started", logging.Fields{
		"run_id":     run.ID,
		"catalogs":   fmt.Sprintf("%v", run.Catalogs),
		"operations": fmt.Sprintf("%v", run.Operations),
		"automatic":  run.Automatic,
	})

	report := &models.RunReport{
		RunID:       run.ID,
		Catalogs:    run.Catalogs,
		Destination: run.Destination,
		Operations:  run.Operations,
		StartTime:   time.Now(),
	}

	for _, op := range models.ExecutionOrder {
		if !run.Requested(op) {
			continue
		}

		stats, runErrs, err := runOperation(op, run, cfg, w, confirm, reporter, logger)
		report.Stats.Add(stats)
		report.Errors = append(report.Errors, runErrs...)
		if err != nil {
			// Prompt-level failures abort the whole run.
			report.Finish()
			report.Status = models.StatusFailed
			reporter.Summary(report)
			logger.Error("run aborted", err, logging.Fields{"run_id": run.ID, "operation": string(op)})
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(report.Status.ExitCode())
		}
	}

	report.Finish()
	reporter.Summary(report)
	logger.Info("run finished", logging.Fields{
		"run_id":        run.ID,
		"status":        string(report.Status),
		"files_deleted": report.Stats.FilesDeleted,
		"files_errored": report.Stats.FilesErrored,
	})

	os.Exit(report.Status.ExitCode())
	return nil
}

// runOperation walks the catalogs fresh for every pass, so each operation
// sees the tree as the previous one left it.
func runOperation(
	op models.Operation,
	run *models.CleanRun,
	cfg *config.Config,
	w *walker.Walker,
	confirm prompt.Confirmer,
	reporter output.Reporter,
	logger logging.Logger,
) (models.Statistics, []models.RunError, error) {
	switch op {
	case models.OpMove, models.OpCopy:
		resolver := transfer.NewResolver(confirm)
		engine := transfer.NewEngine(w, resolver, reporter, logger, 0)
		mode := models.ModeCopy
		if op == models.OpMove {
			mode = models.ModeMove
		}
		return engine.Run(run.Destination, run.Catalogs, mode)
	}

	records, err := w.WalkAll(run.Catalogs)
	if err != nil {
		return models.Statistics{}, nil, err
	}

	switch op {
	case models.OpDuplicates:
		grouper := dupes.NewGrouper(0, showProgress(cfg), func(path string, err error) {
			reporter.Diagnostic(path, err)
		})
		engine := dupes.NewEngine(grouper, confirm, reporter, logger)
		stats, runErrs, err := engine.Run(records)
		stats.FilesScanned += len(records)
		return stats, runErrs, err
	}

	env := &ops.Env{Config: cfg, Confirm: confirm, Reporter: reporter, Logger: logger}
	var stats models.Statistics
	var runErrs []models.RunError
	switch op {
	case models.OpEmpty:
		stats, runErrs, err = ops.RemoveEmpty(env, records)
	case models.OpTemporary:
		stats, runErrs, err = ops.RemoveTemporary(env, records)
	case models.OpSameNames:
		stats, runErrs, err = ops.RemoveSameNames(env, records)
	case models.OpAccess:
		stats, runErrs, err = ops.NormalizeAccess(env, records)
	case models.OpTricky:
		stats, runErrs, err = ops.RenameTricky(env, records)
	case models.OpRename:
		stats, runErrs, err = ops.RenameInteractive(env, records)
	default:
		return models.Statistics{}, nil, fmt.Errorf("unsupported operation: %s", op)
	}
	stats.FilesScanned += len(records)
	return stats, runErrs, err
}

// createReporter selects the output format
func createReporter(cfg *config.Config) output.Reporter {
	if cfg.Output.Format == "json" {
		return output.NewJSONReporter(os.Stdout, os.Stderr)
	}
	return output.NewHumanReporter(os.Stdout, os.Stderr, cfg.Output.Quiet)
}

// createLogger creates a logger based on configuration
func createLogger(cfg *config.Config) (logging.Logger, error) {
	// If no log file specified, return null logger
	if cfg.Logging.File == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Logging.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   cfg.Logging.File,
		Format: format,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}

// showProgress reports whether the hashing progress bar should be drawn.
// The bar goes to stdout, so it is suppressed when stdout is not a
// terminal.
func showProgress(cfg *config.Config) bool {
	if !cfg.Output.Progress || cfg.Output.Quiet || cfg.Output.Format == "json" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
