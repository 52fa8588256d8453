package keyword

import (
	"strings"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/pattern"
)

// Deriver converts pattern records into ranked keyword sets.
type Deriver struct {
	max       int
	minLen    int
	stopwords map[string]struct{}
	topics    []config.TopicSeed
}

// NewDeriver creates a Deriver from injected keyword configuration.
func NewDeriver(cfg config.KeywordConfig) *Deriver {
	return &Deriver{
		max:       cfg.MaxPerPattern,
		minLen:    cfg.MinTokenLength,
		stopwords: BuildStopwordMap(cfg.Stopwords),
		topics:    cfg.Topics,
	}
}

// Derive returns the keyword set for a record: topic seeds first, then
// title, problem, and concept tokens, case-insensitively deduplicated
// keeping first occurrence and truncated to the configured cap. Keyword
// sets are derived fresh per run - nothing is cached across runs.
func (d *Deriver) Derive(rec pattern.Record) []string {
	candidates := d.topicSeeds(rec.Title)
	candidates = append(candidates, Tokenize(rec.Title, d.minLen, d.stopwords)...)
	candidates = append(candidates, Tokenize(rec.Problem, d.minLen, d.stopwords)...)
	candidates = append(candidates, Tokenize(rec.Concept, d.minLen, d.stopwords)...)

	seen := make(map[string]struct{}, len(candidates))
	keywords := make([]string, 0, d.max)
	for _, cand := range candidates {
		kw := strings.ToLower(cand)
		if skipKeyword(kw) {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
		if len(keywords) == d.max {
			break
		}
	}
	return keywords
}

// topicSeeds returns the seed keywords of the first topic whose match
// string appears in the lowercased title. At most one topic applies.
func (d *Deriver) topicSeeds(title string) []string {
	lower := strings.ToLower(title)
	for _, topic := range d.topics {
		if strings.Contains(lower, topic.Match) {
			return topic.Seeds
		}
	}
	return nil
}

// skipKeyword drops noise the tokenizer lets through: bracketed
// placeholders and the comparison fillers "vs" / "with".
func skipKeyword(kw string) bool {
	if strings.HasPrefix(kw, "[") {
		return true
	}
	return kw == "vs" || kw == "with"
}
