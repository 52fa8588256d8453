package source

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/errors"
)

func newTestReader() *Reader {
	return NewReader(config.SourceConfig{Suffix: "_patterns.txt"})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRead_MissingDirectory(t *testing.T) {
	_, err := newTestReader().Read(filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingDirectory, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
}

func TestRead_EmptyDirectoryIsValid(t *testing.T) {
	docs, err := newTestReader().Read(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRead_MatchesSuffixConvention(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "genserver_patterns.txt", "## Pattern 1: A\n")
	writeFile(t, dir, "README.md", "not a pattern file")
	writeFile(t, dir, "notes.txt", "wrong suffix")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub_patterns.txt"), 0o755))

	docs, err := newTestReader().Read(dir)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "genserver_patterns", docs[0].ShortName)
	assert.Equal(t, "genserver_patterns.txt", docs[0].FileName)
	assert.Equal(t, "## Pattern 1: A\n", docs[0].Text)
}

func TestRead_LexicalTraversalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "beta_patterns.txt", "b")
	writeFile(t, dir, "alpha_patterns.txt", "a")
	writeFile(t, dir, "gamma_patterns.txt", "g")

	docs, err := newTestReader().Read(dir)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "alpha_patterns", docs[0].ShortName)
	assert.Equal(t, "beta_patterns", docs[1].ShortName)
	assert.Equal(t, "gamma_patterns", docs[2].ShortName)
}

func TestRead_ExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alpha_patterns.txt", "a")
	writeFile(t, dir, "draft_patterns.txt", "d")

	reader := NewReader(config.SourceConfig{
		Suffix:  "_patterns.txt",
		Exclude: []string{"draft*"},
	})

	docs, err := reader.Read(dir)
	require.NoError(t, err)

	require.Len(t, docs, 1)
	assert.Equal(t, "alpha_patterns", docs[0].ShortName)
}

func TestRead_ErrorWrapsCause(t *testing.T) {
	_, err := newTestReader().Read(filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.True(t, stderrors.Is(stderrors.Unwrap(err), os.ErrNotExist))
}
