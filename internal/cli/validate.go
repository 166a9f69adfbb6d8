package cli

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvaneijk/tidycat/pkg/config"
	"github.com/mvaneijk/tidycat/pkg/models"
)

// buildRun assembles and validates the run described by the command line.
// Positional arguments are the catalogs to clean.
func buildRun(catalogs []string) (*models.CleanRun, error) {
	if cleanFlags.Copy && cleanFlags.Move {
		return nil, &models.ValidationError{
			Field:   "operations",
			Message: "--copy and --move are mutually exclusive",
		}
	}

	var operations []models.Operation
	for _, sel := range []struct {
		set bool
		op  models.Operation
	}{
		{cleanFlags.Duplicates, models.OpDuplicates},
		{cleanFlags.Empty, models.OpEmpty},
		{cleanFlags.Temporary, models.OpTemporary},
		{cleanFlags.SameNames, models.OpSameNames},
		{cleanFlags.Access, models.OpAccess},
		{cleanFlags.Tricky, models.OpTricky},
		{cleanFlags.Move, models.OpMove},
		{cleanFlags.Copy, models.OpCopy},
		{cleanFlags.Rename, models.OpRename},
	} {
		if sel.set {
			operations = append(operations, sel.op)
		}
	}

	run := &models.CleanRun{
		ID:          uuid.New().String(),
		Catalogs:    catalogs,
		Destination: cleanFlags.Catalog,
		Automatic:   cleanFlags.Default,
		Operations:  operations,
		CreatedAt:   time.Now(),
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}

	return run, nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if cleanFlags.Output != "" {
		cfg.Output.Format = cleanFlags.Output
	}

	if cleanFlags.LogFile != "" {
		cfg.Logging.File = cleanFlags.LogFile
	}
	if cleanFlags.LogFormat != "" {
		cfg.Logging.Format = cleanFlags.LogFormat
	}
	if cleanFlags.LogLevel != "" {
		cfg.Logging.Level = cleanFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}
