// Package cmd provides the CLI commands for patidx.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/layeddie/patidx/internal/logging"
	"github.com/layeddie/patidx/pkg/version"
)

// Shared flags applied to every command.
var (
	debugMode      bool
	sourceDir      string
	outputPath     string
	strictMode     bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the patidx CLI.
// Running patidx with no arguments builds the index: the tool is a
// single-shot batch job, so the default action is the whole pipeline.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patidx",
		Short: "Generate a keyword lookup index for a pattern library",
		Long: `patidx scans a directory of pattern documents, extracts each
pattern's ordinal, title, problem and concept, derives a bounded keyword
set per pattern, and renders one searchable index file with a keyword
map, a categorized file directory, and a curated cross-reference table.

The rendered index is self-validated against expected file-count and
size targets; mismatches are reported as warnings and never block the
write.

Just run 'patidx' in your library directory to rebuild the index.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd)
		},
	}

	cmd.SetVersionTemplate("patidx version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&sourceDir, "source", "", "Source directory (overrides config)")
	cmd.PersistentFlags().StringVar(&outputPath, "output", "", "Output index path (overrides config)")
	cmd.Flags().BoolVar(&strictMode, "strict", false, "Exit non-zero when validation targets are missed")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = teardownLogging

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupLogging installs the structured logger before any command runs.
func setupLogging(_ *cobra.Command, _ []string) error {
	cleanup, err := logging.SetupDefault(debugMode)
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		return err
	}
	return nil
}

// workingDir returns the directory configuration is loaded from.
func workingDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
