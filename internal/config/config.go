// Package config defines the patidx configuration schema.
// Every deployment-specific tuning value (source suffix, mapping cap,
// validation targets, topic seeds, category allow-lists, cross-references)
// lives here and is injected into the pipeline at construction, so the
// pipeline can be pointed at alternate directories and targets in tests.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file looked up in the
// working directory.
const ConfigFileName = ".patidx.yaml"

// Config represents the complete patidx configuration.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	Source     SourceConfig     `yaml:"source" json:"source"`
	Parse      ParseConfig      `yaml:"parse" json:"parse"`
	Keywords   KeywordConfig    `yaml:"keywords" json:"keywords"`
	Index      IndexConfig      `yaml:"index" json:"index"`
	Validation ValidationConfig `yaml:"validation" json:"validation"`
}

// SourceConfig configures source document discovery.
type SourceConfig struct {
	// Dir is the directory scanned for pattern documents.
	Dir string `yaml:"dir" json:"dir"`

	// Suffix is the file-name suffix convention for pattern documents.
	Suffix string `yaml:"suffix" json:"suffix"`

	// Exclude holds doublestar globs matched against file names;
	// matching files are skipped (e.g. drafts).
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// ParseConfig configures the pattern block grammar.
type ParseConfig struct {
	// Delimiter is the line separating pattern blocks.
	Delimiter string `yaml:"delimiter" json:"delimiter"`

	// HeaderMarker precedes "Pattern N: Title" in a block header.
	HeaderMarker string `yaml:"header_marker" json:"header_marker"`

	// ProblemPrefix and ConceptPrefix mark the optional field lines.
	ProblemPrefix string `yaml:"problem_prefix" json:"problem_prefix"`
	ConceptPrefix string `yaml:"concept_prefix" json:"concept_prefix"`
}

// TopicSeed associates a title substring with seed keywords that are
// prepended to derived keyword sets. First match wins; at most one
// topic applies per pattern.
type TopicSeed struct {
	Match string   `yaml:"match" json:"match"`
	Seeds []string `yaml:"seeds" json:"seeds"`
}

// KeywordConfig configures keyword derivation.
type KeywordConfig struct {
	// MaxPerPattern caps the keyword set size per pattern.
	MaxPerPattern int `yaml:"max_per_pattern" json:"max_per_pattern"`

	// MinTokenLength drops shorter tokens during tokenization.
	MinTokenLength int `yaml:"min_token_length" json:"min_token_length"`

	// Stopwords are excluded from derived keyword sets.
	Stopwords []string `yaml:"stopwords" json:"stopwords"`

	// Topics is the ordered topic seed table.
	Topics []TopicSeed `yaml:"topics" json:"topics"`
}

// Category groups rendered files in the index directory section.
// Membership is a fixed file-name allow-list, not derived from content.
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Files []string `yaml:"files" json:"files"`
}

// CrossReference is one curated row of the cross-reference table.
// The table is intentionally static so primary/related associations
// stay stable across regenerations.
type CrossReference struct {
	Problem string   `yaml:"problem" json:"problem"`
	Primary string   `yaml:"primary" json:"primary"`
	Related []string `yaml:"related" json:"related"`
}

// IndexConfig configures mapping assembly and index rendering.
type IndexConfig struct {
	// OutputPath is the rendered index file, overwritten each run.
	OutputPath string `yaml:"output_path" json:"output_path"`

	// MappingCap truncates the global keyword mapping list.
	MappingCap int `yaml:"mapping_cap" json:"mapping_cap"`

	// TargetExtension replaces the source extension in mapping targets
	// (pattern sources are .txt working files, published docs are .md).
	TargetExtension string `yaml:"target_extension" json:"target_extension"`

	// Categories is the fixed eight-category file directory.
	Categories []Category `yaml:"categories" json:"categories"`

	// CrossReferences is the curated cross-reference table.
	CrossReferences []CrossReference `yaml:"cross_references" json:"cross_references"`
}

// ValidationConfig configures the non-fatal structural targets the
// rendered index is checked against.
type ValidationConfig struct {
	// ExpectedFileCount is the expected number of discovered sources.
	ExpectedFileCount int `yaml:"expected_file_count" json:"expected_file_count"`

	// TokenTarget is the approximate token budget for the rendered index.
	TokenTarget int `yaml:"token_target" json:"token_target"`

	// TokenTolerance is the allowed deviation from TokenTarget (0.10 = ±10%).
	TokenTolerance float64 `yaml:"token_tolerance" json:"token_tolerance"`
}

// NewConfig returns a Config populated with defaults for the curated
// Elixir/OTP pattern library this tool was built around.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Source: SourceConfig{
			Dir:    "patterns",
			Suffix: "_patterns.txt",
		},
		Parse: ParseConfig{
			Delimiter:     "---",
			HeaderMarker:  "##",
			ProblemPrefix: "PROBLEM:",
			ConceptPrefix: "CONCEPT:",
		},
		Keywords: KeywordConfig{
			MaxPerPattern:  6,
			MinTokenLength: 3,
			Stopwords:      defaultStopwords(),
			Topics:         defaultTopics(),
		},
		Index: IndexConfig{
			OutputPath:      "PATTERN_INDEX.md",
			MappingCap:      50,
			TargetExtension: ".md",
			Categories:      defaultCategories(),
			CrossReferences: defaultCrossReferences(),
		},
		Validation: ValidationConfig{
			ExpectedFileCount: 16,
			TokenTarget:       8000,
			TokenTolerance:    0.10,
		},
	}
}

// Load builds the effective configuration for dir: defaults, then the
// project config file if present, then environment overrides.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile attempts to load configuration from .patidx.yaml.
// A missing file is fine - defaults apply.
func (c *Config) loadFromFile(dir string) error {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Source.Dir != "" {
		c.Source.Dir = other.Source.Dir
	}
	if other.Source.Suffix != "" {
		c.Source.Suffix = other.Source.Suffix
	}
	if len(other.Source.Exclude) > 0 {
		c.Source.Exclude = other.Source.Exclude
	}

	if other.Parse.Delimiter != "" {
		c.Parse.Delimiter = other.Parse.Delimiter
	}
	if other.Parse.HeaderMarker != "" {
		c.Parse.HeaderMarker = other.Parse.HeaderMarker
	}
	if other.Parse.ProblemPrefix != "" {
		c.Parse.ProblemPrefix = other.Parse.ProblemPrefix
	}
	if other.Parse.ConceptPrefix != "" {
		c.Parse.ConceptPrefix = other.Parse.ConceptPrefix
	}

	if other.Keywords.MaxPerPattern != 0 {
		c.Keywords.MaxPerPattern = other.Keywords.MaxPerPattern
	}
	if other.Keywords.MinTokenLength != 0 {
		c.Keywords.MinTokenLength = other.Keywords.MinTokenLength
	}
	if len(other.Keywords.Stopwords) > 0 {
		c.Keywords.Stopwords = other.Keywords.Stopwords
	}
	if len(other.Keywords.Topics) > 0 {
		c.Keywords.Topics = other.Keywords.Topics
	}

	if other.Index.OutputPath != "" {
		c.Index.OutputPath = other.Index.OutputPath
	}
	if other.Index.MappingCap != 0 {
		c.Index.MappingCap = other.Index.MappingCap
	}
	if other.Index.TargetExtension != "" {
		c.Index.TargetExtension = other.Index.TargetExtension
	}
	if len(other.Index.Categories) > 0 {
		c.Index.Categories = other.Index.Categories
	}
	if len(other.Index.CrossReferences) > 0 {
		c.Index.CrossReferences = other.Index.CrossReferences
	}

	if other.Validation.ExpectedFileCount != 0 {
		c.Validation.ExpectedFileCount = other.Validation.ExpectedFileCount
	}
	if other.Validation.TokenTarget != 0 {
		c.Validation.TokenTarget = other.Validation.TokenTarget
	}
	if other.Validation.TokenTolerance != 0 {
		c.Validation.TokenTolerance = other.Validation.TokenTolerance
	}
}

// applyEnvOverrides applies PATIDX_* environment variables with highest
// precedence.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PATIDX_SOURCE_DIR"); v != "" {
		c.Source.Dir = v
	}
	if v := os.Getenv("PATIDX_OUTPUT"); v != "" {
		c.Index.OutputPath = v
	}
	if v := os.Getenv("PATIDX_MAPPING_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Index.MappingCap = n
		}
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Source.Dir == "" {
		return fmt.Errorf("source.dir must not be empty")
	}
	if c.Source.Suffix == "" {
		return fmt.Errorf("source.suffix must not be empty")
	}
	if c.Parse.Delimiter == "" {
		return fmt.Errorf("parse.delimiter must not be empty")
	}
	if strings.TrimSpace(c.Parse.HeaderMarker) == "" {
		return fmt.Errorf("parse.header_marker must not be empty")
	}
	if c.Keywords.MaxPerPattern <= 0 {
		return fmt.Errorf("keywords.max_per_pattern must be positive, got %d", c.Keywords.MaxPerPattern)
	}
	if c.Keywords.MinTokenLength <= 0 {
		return fmt.Errorf("keywords.min_token_length must be positive, got %d", c.Keywords.MinTokenLength)
	}
	if c.Index.OutputPath == "" {
		return fmt.Errorf("index.output_path must not be empty")
	}
	if c.Index.MappingCap <= 0 {
		return fmt.Errorf("index.mapping_cap must be positive, got %d", c.Index.MappingCap)
	}
	if c.Validation.ExpectedFileCount < 0 {
		return fmt.Errorf("validation.expected_file_count must be non-negative, got %d", c.Validation.ExpectedFileCount)
	}
	if c.Validation.TokenTarget < 0 {
		return fmt.Errorf("validation.token_target must be non-negative, got %d", c.Validation.TokenTarget)
	}
	if c.Validation.TokenTolerance < 0 || c.Validation.TokenTolerance >= 1 {
		return fmt.Errorf("validation.token_tolerance must be in [0, 1), got %f", c.Validation.TokenTolerance)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// YAML renders the effective configuration as YAML text.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
