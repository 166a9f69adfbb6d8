package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/mvaneijk/tidycat/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "tidycat [flags] CATALOG...",
		Short: "Catalog cleanup and transfer utility",
		Long: `tidycat cleans and organizes directory trees (catalogs). It removes
duplicate, empty, and temporary files, normalizes permissions, renames
files with tricky characters, and copies or moves catalog contents into
a destination catalog with conflict resolution.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE:          cli.RunClean,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)
	cli.AddCleanFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
