// Package mapping aggregates per-pattern keyword sets across all source
// documents into the bounded keyword-to-location mapping list rendered
// in the index.
package mapping

import (
	"fmt"
	"strings"

	"github.com/layeddie/patidx/internal/keyword"
	"github.com/layeddie/patidx/internal/pattern"
)

// FileRecords pairs one source document with its parsed records.
// Order follows directory traversal; record order follows the document.
type FileRecords struct {
	// ShortName is the document short name (suffix extension stripped).
	ShortName string

	// File is the rendered target file name (short name + target extension).
	File string

	// Records are the document's pattern records in document order.
	Records []pattern.Record
}

// Mapping is one rendered keyword-to-location row.
type Mapping struct {
	// Keywords is the comma-joined keyword set.
	Keywords string

	// File is the target file name.
	File string

	// Section is the section label ("Pattern N").
	Section string

	// Title is the pattern title.
	Title string
}

// Builder assembles the global mapping list.
type Builder struct {
	deriver *keyword.Deriver
	cap     int
}

// NewBuilder creates a Builder with the given keyword deriver and the
// configured global mapping cap.
func NewBuilder(deriver *keyword.Deriver, mappingCap int) *Builder {
	return &Builder{deriver: deriver, cap: mappingCap}
}

// Build produces one mapping per record in traversal then per-file
// order, truncated to the first cap entries overall. If the corpus holds
// more patterns than the cap, exactly the first cap in order are kept.
func (b *Builder) Build(files []FileRecords) []Mapping {
	var mappings []Mapping
	for _, fr := range files {
		for _, rec := range fr.Records {
			if len(mappings) == b.cap {
				return mappings
			}
			mappings = append(mappings, Mapping{
				Keywords: strings.Join(b.deriver.Derive(rec), ", "),
				File:     fr.File,
				Section:  fmt.Sprintf("Pattern %d", rec.Ordinal),
				Title:    rec.Title,
			})
		}
	}
	return mappings
}

// TotalRecords counts all records across files, before capping.
func TotalRecords(files []FileRecords) int {
	total := 0
	for _, fr := range files {
		total += len(fr.Records)
	}
	return total
}
