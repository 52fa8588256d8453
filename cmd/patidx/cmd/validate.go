package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/layeddie/patidx/internal/index"
	"github.com/layeddie/patidx/internal/output"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the existing index against the source directory",
		Long: `Validate re-reads the source directory, rebuilds the index in memory,
and checks the existing index file against the configured file-count and
token targets without writing anything.

The command fails when no index file exists yet. With --strict, target
mismatches also produce a failing exit code.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd)
		},
	}

	cmd.Flags().BoolVar(&strictMode, "strict", false, "Exit non-zero when validation targets are missed")

	return cmd
}

func runValidate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := output.New(cmd.OutOrStdout())

	result, err := index.NewRunner(cfg).Check(cmd.Context())
	if err != nil {
		out.Errorf("validation failed: %v", err)
		return err
	}

	out.Header("Index validation")
	out.Statusf("index file:         %s", cfg.Index.OutputPath)
	out.Statusf("files discovered:   %d", result.FilesDiscovered)
	out.Statusf("patterns extracted: %d", result.PatternsExtracted)
	printReport(out, result.Report)
	out.Statusf("checked in %s", result.Duration.Round(time.Millisecond))

	if strictMode && !result.Report.Passed() {
		return fmt.Errorf("validation targets missed")
	}
	return nil
}
