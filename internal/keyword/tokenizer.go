// Package keyword derives bounded, ranked keyword sets from pattern
// records. Title terms are the strongest signal, topic seeds guarantee
// recall when free-text fields are sparse, and the per-pattern cap
// bounds the rendered index size.
package keyword

import (
	"regexp"
	"strings"
)

// stripRegex removes everything except word characters, hyphens, and
// whitespace before splitting.
var stripRegex = regexp.MustCompile(`[^\w\s-]`)

// Tokenize lowercases text, strips non-word/non-hyphen characters,
// splits on whitespace, and drops tokens shorter than minLen or present
// in the stopword map.
func Tokenize(text string, minLen int, stopwords map[string]struct{}) []string {
	cleaned := stripRegex.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) < minLen {
			continue
		}
		if _, isStop := stopwords[tok]; isStop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// BuildStopwordMap converts a stopword slice to a map for lookup.
func BuildStopwordMap(stopwords []string) map[string]struct{} {
	m := make(map[string]struct{}, len(stopwords))
	for _, word := range stopwords {
		m[strings.ToLower(word)] = struct{}{}
	}
	return m
}
