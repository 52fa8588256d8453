// Package validate checks a rendered index against fixed structural
// targets. Validation is diagnostic only: a mismatch is reported in the
// run summary but never blocks writing the index, so a run always
// produces something usable.
package validate

import (
	"fmt"
	"math"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/mapping"
)

// charsPerToken is the rough character-to-token approximation used for
// the token budget check.
const charsPerToken = 4

// Report captures the outcome of one validation pass.
type Report struct {
	// FileCount is the number of discovered source files.
	FileCount int `json:"file_count"`
	// ExpectedFileCount is the configured target.
	ExpectedFileCount int `json:"expected_file_count"`
	// FileCountOK reports whether FileCount matches the target.
	FileCountOK bool `json:"file_count_ok"`

	// ApproxTokens is the rendered size estimate (characters / 4).
	ApproxTokens int `json:"approx_tokens"`
	// TokenTarget is the configured token budget.
	TokenTarget int `json:"token_target"`
	// TokenTolerance is the allowed relative deviation.
	TokenTolerance float64 `json:"token_tolerance"`
	// TokensOK reports whether ApproxTokens is within tolerance.
	TokensOK bool `json:"tokens_ok"`

	// PatternCount is the total number of extracted pattern records.
	PatternCount int `json:"pattern_count"`
}

// Passed reports whether every check met its target.
func (r Report) Passed() bool {
	return r.FileCountOK && r.TokensOK
}

// Problems returns a human-readable line per failed check.
func (r Report) Problems() []string {
	var problems []string
	if !r.FileCountOK {
		problems = append(problems, fmt.Sprintf(
			"file count %d does not match expected %d", r.FileCount, r.ExpectedFileCount))
	}
	if !r.TokensOK {
		problems = append(problems, fmt.Sprintf(
			"approx tokens %d outside %d ±%.0f%%", r.ApproxTokens, r.TokenTarget, r.TokenTolerance*100))
	}
	return problems
}

// Validator checks rendered output against configured targets.
type Validator struct {
	cfg config.ValidationConfig
}

// NewValidator creates a Validator from injected validation configuration.
func NewValidator(cfg config.ValidationConfig) *Validator {
	return &Validator{cfg: cfg}
}

// Check computes the validation report for a rendered index and the
// per-file record collection it was built from.
func (v *Validator) Check(rendered string, files []mapping.FileRecords) Report {
	approxTokens := len(rendered) / charsPerToken

	report := Report{
		FileCount:         len(files),
		ExpectedFileCount: v.cfg.ExpectedFileCount,
		ApproxTokens:      approxTokens,
		TokenTarget:       v.cfg.TokenTarget,
		TokenTolerance:    v.cfg.TokenTolerance,
		PatternCount:      mapping.TotalRecords(files),
	}

	report.FileCountOK = report.FileCount == v.cfg.ExpectedFileCount

	if v.cfg.TokenTarget == 0 {
		// No budget configured; size check trivially passes.
		report.TokensOK = true
	} else {
		deviation := math.Abs(float64(approxTokens-v.cfg.TokenTarget)) / float64(v.cfg.TokenTarget)
		report.TokensOK = deviation <= v.cfg.TokenTolerance
	}

	return report
}
