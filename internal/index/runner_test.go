package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/errors"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.NewConfig()
	cfg.Source.Dir = filepath.Join(dir, "patterns")
	cfg.Index.OutputPath = filepath.Join(dir, "PATTERN_INDEX.md")
	cfg.Validation.ExpectedFileCount = 2
	cfg.Validation.TokenTarget = 0

	require.NoError(t, os.MkdirAll(cfg.Source.Dir, 0o755))
	return cfg
}

func writeSource(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Source.Dir, name), []byte(content), 0o644))
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "alpha_patterns.txt",
		"## Pattern 1: GenServer State Handling\nPROBLEM: state leaks across requests\n")
	writeSource(t, cfg, "beta_patterns.txt",
		"## Pattern 1: Retry with Backoff\n")

	runner := NewRunner(cfg)
	runner.now = fixedClock()

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesDiscovered)
	assert.Equal(t, 2, result.PatternsExtracted)
	assert.Equal(t, 2, result.MappingsGenerated)
	assert.Equal(t, 2, result.Report.PatternCount)
	assert.True(t, result.Report.FileCountOK)

	data, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)
	out := string(data)

	// Exactly two mapping rows
	assert.Equal(t, 2, strings.Count(out, "| Pattern 1 |"))
	assert.Contains(t, out, "alpha_patterns.md")
	assert.Contains(t, out, "beta_patterns.md")
	// Directory lists both files with pattern count 1 each
	assert.Contains(t, out, "- **alpha_patterns.md** — 1 pattern (1. GenServer State Handling)")
	assert.Contains(t, out, "- **beta_patterns.md** — 1 pattern (1. Retry with Backoff)")
	assert.Contains(t, out, "- Generated: 2026-08-30")
}

func TestRun_MissingSourceDirectoryAbortsBeforeWrite(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.Source.Dir))

	_, err := NewRunner(cfg).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingDirectory, errors.GetCode(err))
	_, statErr := os.Stat(cfg.Index.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "no output should be written on fatal error")
}

func TestRun_EmptyDirectoryCompletes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Validation.ExpectedFileCount = 16

	result, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.FilesDiscovered)
	assert.Equal(t, 0, result.MappingsGenerated)
	assert.False(t, result.Report.FileCountOK, "empty corpus must mismatch a non-zero target")

	data, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No pattern files discovered.")
}

func TestRun_MappingCapAcrossFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Validation.ExpectedFileCount = 3

	// 60 well-formed blocks across three files.
	for f := 0; f < 3; f++ {
		var blocks []string
		for i := 1; i <= 20; i++ {
			blocks = append(blocks, fmt.Sprintf("## Pattern %d: Topic %d Item %d\n", i, f, i))
		}
		writeSource(t, cfg, fmt.Sprintf("set%d_patterns.txt", f), strings.Join(blocks, "---\n"))
	}

	result, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 60, result.PatternsExtracted)
	assert.Equal(t, 50, result.MappingsGenerated)

	data, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)
	out := string(data)

	// First 50 blocks in traversal order: all of set0 and set1, then 10 of set2.
	assert.Equal(t, 20, strings.Count(out, "| set0_patterns.md |"))
	assert.Equal(t, 20, strings.Count(out, "| set1_patterns.md |"))
	assert.Equal(t, 10, strings.Count(out, "| set2_patterns.md |"))
	assert.NotContains(t, out, "| set2_patterns.md | Pattern 11 |")
}

func TestRun_OverwritesPreviousIndex(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "alpha_patterns.txt", "## Pattern 1: First Pass\n")
	require.NoError(t, os.WriteFile(cfg.Index.OutputPath, []byte("stale content"), 0o644))

	runner := NewRunner(cfg)
	runner.now = fixedClock()
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale content")
	assert.Contains(t, string(data), "First Pass")
}

func TestRun_IdempotentExceptDate(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "alpha_patterns.txt",
		"## Pattern 1: Stable Output\nPROBLEM: drift between runs\nCONCEPT: fixed ordering\n")

	runner := NewRunner(cfg)
	runner.now = fixedClock()

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestRun_MalformedBlocksStillIndexed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Validation.ExpectedFileCount = 1
	writeSource(t, cfg, "mixed_patterns.txt", strings.Join([]string{
		"## Pattern 1: Fine",
		"---",
		"no header here",
		"---",
		"## Pattern 3: Also Fine",
	}, "\n"))

	result, err := NewRunner(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.PatternsExtracted, "malformed block must still produce a record")

	data, err := os.ReadFile(cfg.Index.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Unknown Pattern")
}

func TestCheck_ValidatesExistingIndex(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "alpha_patterns.txt", "## Pattern 1: Checked\n")
	writeSource(t, cfg, "beta_patterns.txt", "## Pattern 1: Twice\n")

	runner := NewRunner(cfg)
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	result, err := runner.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Report.PatternCount)
	assert.True(t, result.Report.FileCountOK)
}

func TestCheck_NoIndexFileFails(t *testing.T) {
	cfg := testConfig(t)

	_, err := NewRunner(cfg).Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileUnreadable, errors.GetCode(err))
}
