// Package pattern extracts discrete pattern records from pattern
// document text. Parsing never fails: malformed blocks degrade into
// fallback records so per-file record counts stay auditable.
package pattern

// FallbackTitle is the placeholder title for blocks without a
// recognizable header.
const FallbackTitle = "Unknown Pattern"

// Record is one problem/solution entry extracted from a document.
// Records are created once during parsing and never mutated.
type Record struct {
	// Ordinal is the pattern number from the header. Unique within a
	// document but not guaranteed contiguous. 0 marks a fallback record
	// or a non-numeric header ordinal.
	Ordinal int

	// Title is the pattern title. Never empty: fallback records carry
	// FallbackTitle.
	Title string

	// Problem is the trimmed remainder of the PROBLEM: line, or "".
	Problem string

	// Concept is the trimmed remainder of the CONCEPT: line, or "".
	Concept string
}

// IsFallback reports whether the record was synthesized for a block
// without a recognizable header.
func (r Record) IsFallback() bool {
	return r.Ordinal == 0 && r.Title == FallbackTitle
}
