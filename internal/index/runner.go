// Package index wires the pipeline stages into one linear batch run:
// read sources, parse records, derive keywords, build mappings, render
// the index, validate, write. All stages run sequentially in a single
// invocation; there is no daemon mode and no shared mutable state
// between stages beyond values passed through the pipeline.
package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/errors"
	"github.com/layeddie/patidx/internal/keyword"
	"github.com/layeddie/patidx/internal/mapping"
	"github.com/layeddie/patidx/internal/pattern"
	"github.com/layeddie/patidx/internal/render"
	"github.com/layeddie/patidx/internal/source"
	"github.com/layeddie/patidx/internal/validate"
)

// Result summarizes one completed run.
type Result struct {
	// FilesDiscovered is the number of matching source files.
	FilesDiscovered int
	// PatternsExtracted is the total record count before capping.
	PatternsExtracted int
	// MappingsGenerated is the rendered mapping row count.
	MappingsGenerated int
	// Report is the validation outcome.
	Report validate.Report
	// OutputPath is where the index was written ("" for check-only runs).
	OutputPath string
	// Duration is the elapsed wall time.
	Duration time.Duration
}

// Runner executes the indexing pipeline.
type Runner struct {
	cfg       *config.Config
	reader    *source.Reader
	parser    *pattern.Parser
	builder   *mapping.Builder
	renderer  *render.Renderer
	validator *validate.Validator

	// now is injectable for deterministic rendering in tests.
	now func() time.Time
}

// NewRunner constructs a Runner with all stages built from cfg.
func NewRunner(cfg *config.Config) *Runner {
	deriver := keyword.NewDeriver(cfg.Keywords)
	return &Runner{
		cfg:       cfg,
		reader:    source.NewReader(cfg.Source),
		parser:    pattern.NewParser(cfg.Parse),
		builder:   mapping.NewBuilder(deriver, cfg.Index.MappingCap),
		renderer:  render.NewRenderer(cfg.Index),
		validator: validate.NewValidator(cfg.Validation),
		now:       time.Now,
	}
}

// Run executes the full pipeline and writes the index. Only a missing
// source directory or an output I/O failure aborts; validation
// mismatches are carried in the Result, never as an error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := r.now()

	_, rendered, result, err := r.assemble(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.writeAtomic(rendered); err != nil {
		return nil, err
	}

	result.OutputPath = r.cfg.Index.OutputPath
	result.Duration = r.now().Sub(start)

	slog.Info("index_run_complete",
		slog.Int("files", result.FilesDiscovered),
		slog.Int("patterns", result.PatternsExtracted),
		slog.Int("mappings", result.MappingsGenerated),
		slog.Bool("validation_passed", result.Report.Passed()),
		slog.String("output", result.OutputPath))

	return result, nil
}

// Check executes the pipeline without writing, validating an already
// rendered index file on disk against the current corpus.
func (r *Runner) Check(ctx context.Context) (*Result, error) {
	start := r.now()

	data, err := os.ReadFile(r.cfg.Index.OutputPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err).
			WithSuggestion("run 'patidx build' to generate the index first")
	}

	files, _, result, err := r.assemble(ctx)
	if err != nil {
		return nil, err
	}

	result.Report = r.validator.Check(string(data), files)
	result.Duration = r.now().Sub(start)
	return result, nil
}

// assemble runs the read-parse-derive-build-render-validate stages and
// returns the per-file records, the rendered text, and a partial Result.
func (r *Runner) assemble(ctx context.Context) ([]mapping.FileRecords, string, *Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", nil, err
	}

	docs, err := r.reader.Read(r.cfg.Source.Dir)
	if err != nil {
		return nil, "", nil, err
	}

	files := make([]mapping.FileRecords, 0, len(docs))
	for _, doc := range docs {
		records := r.parser.Parse(doc.Text)
		slog.Debug("parsed_document",
			slog.String("file", doc.FileName),
			slog.Int("records", len(records)))
		files = append(files, mapping.FileRecords{
			ShortName: doc.ShortName,
			File:      doc.ShortName + r.cfg.Index.TargetExtension,
			Records:   records,
		})
	}

	mappings := r.builder.Build(files)
	rendered := r.renderer.Render(mappings, files, r.now())

	result := &Result{
		FilesDiscovered:   len(files),
		PatternsExtracted: mapping.TotalRecords(files),
		MappingsGenerated: len(mappings),
		Report:            r.validator.Check(rendered, files),
	}

	return files, rendered, result, nil
}

// writeAtomic replaces the output file in a single rename, guarded by a
// file lock. Concurrent runs against the same target are undefined; the
// lock turns the most likely accident into a clear error instead of an
// interleaved artifact.
func (r *Runner) writeAtomic(rendered string) error {
	path := r.cfg.Index.OutputPath

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WriteError("failed to create output directory", err)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return errors.WriteError("failed to acquire output lock", err)
	}
	if !locked {
		return errors.New(errors.ErrCodeOutputLocked,
			"another patidx run is writing "+path, nil).
			WithSuggestion("wait for the other run to finish")
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WriteError("failed to create temp output file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(rendered); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WriteError("failed to write index", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WriteError("failed to flush index", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WriteError("failed to replace index", err)
	}

	return nil
}
