package source

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/errors"
)

// Reader discovers and loads pattern documents.
type Reader struct {
	suffix  string
	exclude []string
}

// NewReader creates a Reader from injected source configuration.
func NewReader(cfg config.SourceConfig) *Reader {
	return &Reader{
		suffix:  cfg.Suffix,
		exclude: cfg.Exclude,
	}
}

// Read returns every document in dir matching the suffix convention, in
// lexical order. A missing directory is fatal; an empty directory (or a
// directory with no matching files) yields an empty, valid result.
// Unreadable individual files are skipped with a warning so one bad file
// never blocks indexing the rest of the corpus.
func (r *Reader) Read(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingDirectoryError(dir, err)
		}
		return nil, errors.Wrap(errors.ErrCodeMissingDirectory, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, r.suffix) {
			continue
		}
		if r.excluded(name) {
			slog.Debug("source_excluded", slog.String("file", name))
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("source_unreadable",
				slog.String("file", name),
				slog.String("error", err.Error()))
			continue
		}

		docs = append(docs, Document{
			ShortName: strings.TrimSuffix(name, filepath.Ext(name)),
			FileName:  name,
			Path:      path,
			Text:      string(data),
		})
	}

	slog.Debug("source_read", slog.String("dir", dir), slog.Int("files", len(docs)))
	return docs, nil
}

// excluded reports whether a file name matches any configured exclude glob.
func (r *Reader) excluded(name string) bool {
	for _, pattern := range r.exclude {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
