// Package render assembles the final index document from the mapping
// list, the per-category file directory, the curated cross-reference
// table, and computed totals. Rendering is a pure function of its
// inputs plus the supplied date; it performs no validation.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/layeddie/patidx/internal/config"
	"github.com/layeddie/patidx/internal/mapping"
)

// usageInstructions is the static preamble explaining how to use the index.
const usageInstructions = `Find the document and section that answers a question:

1. Scan the Keyword Map for the terms closest to your question.
2. Open the listed file at the listed section.
3. If no keywords match, browse the File Directory by category.
4. For recurring production problems, check the Cross-Reference table first.

This file is generated. Do not edit by hand; rerun patidx instead.`

// validationChecklist is the static maintainer checklist rendered near
// the end of the index.
const validationChecklist = `- [ ] Every pattern file appears in exactly one directory category
- [ ] Keyword rows point at sections that still exist
- [ ] Cross-reference targets are current file names
- [ ] Pattern counts match the source documents
- [ ] Regenerate after adding or renaming any pattern file`

// Renderer renders the index document.
type Renderer struct {
	categories []config.Category
	crossRefs  []config.CrossReference
}

// NewRenderer creates a Renderer from injected index configuration.
func NewRenderer(cfg config.IndexConfig) *Renderer {
	return &Renderer{
		categories: cfg.Categories,
		crossRefs:  cfg.CrossReferences,
	}
}

// Render assembles the index document in fixed order: usage
// instructions, keyword map, file directory, cross-references,
// validation checklist, and a maintenance footer with computed totals.
func (r *Renderer) Render(mappings []mapping.Mapping, files []mapping.FileRecords, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Pattern Index\n\n")
	b.WriteString("## How to Use This Index\n\n")
	b.WriteString(usageInstructions)
	b.WriteString("\n\n")

	r.renderKeywordMap(&b, mappings)
	r.renderDirectory(&b, files)
	r.renderCrossReferences(&b)

	b.WriteString("## Validation Checklist\n\n")
	b.WriteString(validationChecklist)
	b.WriteString("\n\n")

	r.renderFooter(&b, mappings, files, now)

	return b.String()
}

func (r *Renderer) renderKeywordMap(b *strings.Builder, mappings []mapping.Mapping) {
	b.WriteString("## Keyword Map\n\n")
	if len(mappings) == 0 {
		b.WriteString("No patterns indexed.\n\n")
		return
	}

	b.WriteString("| Keywords | File | Section | Pattern |\n")
	b.WriteString("|----------|------|---------|--------|\n")
	for _, m := range mappings {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			escapeCell(m.Keywords), escapeCell(m.File), escapeCell(m.Section), escapeCell(m.Title))
	}
	b.WriteString("\n")
}

// renderDirectory renders the per-category file directory. Membership is
// the fixed per-category allow-list; discovered files outside every
// allow-list land in a trailing Uncategorized group so nothing silently
// disappears from the index.
func (r *Renderer) renderDirectory(b *strings.Builder, files []mapping.FileRecords) {
	b.WriteString("## File Directory\n\n")
	if len(files) == 0 {
		b.WriteString("No pattern files discovered.\n\n")
		return
	}

	byName := make(map[string]mapping.FileRecords, len(files))
	for _, fr := range files {
		byName[fr.File] = fr
	}

	listed := make(map[string]bool, len(files))
	for _, cat := range r.categories {
		var entries []mapping.FileRecords
		for _, name := range cat.Files {
			if fr, ok := byName[name]; ok {
				entries = append(entries, fr)
				listed[name] = true
			}
		}
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(b, "### %s\n\n", cat.Name)
		for _, fr := range entries {
			b.WriteString(directoryEntry(fr))
		}
		b.WriteString("\n")
	}

	var uncategorized []mapping.FileRecords
	for _, fr := range files {
		if !listed[fr.File] {
			uncategorized = append(uncategorized, fr)
		}
	}
	if len(uncategorized) > 0 {
		b.WriteString("### Uncategorized\n\n")
		for _, fr := range uncategorized {
			b.WriteString(directoryEntry(fr))
		}
		b.WriteString("\n")
	}
}

// directoryEntry formats one directory line: file name, pattern count,
// and the first two pattern titles with ordinals.
func directoryEntry(fr mapping.FileRecords) string {
	count := len(fr.Records)
	noun := "patterns"
	if count == 1 {
		noun = "pattern"
	}

	var preview []string
	for _, rec := range fr.Records {
		preview = append(preview, fmt.Sprintf("%d. %s", rec.Ordinal, rec.Title))
		if len(preview) == 2 {
			break
		}
	}

	if len(preview) == 0 {
		return fmt.Sprintf("- **%s** — %d %s\n", fr.File, count, noun)
	}
	return fmt.Sprintf("- **%s** — %d %s (%s)\n", fr.File, count, noun, strings.Join(preview, "; "))
}

func (r *Renderer) renderCrossReferences(b *strings.Builder) {
	b.WriteString("## Cross-Reference\n\n")
	if len(r.crossRefs) == 0 {
		b.WriteString("No cross-references configured.\n\n")
		return
	}

	b.WriteString("| Problem | Primary | Related |\n")
	b.WriteString("|---------|---------|---------|\n")
	for _, xr := range r.crossRefs {
		related := strings.Join(xr.Related, ", ")
		if related == "" {
			related = "-"
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n",
			escapeCell(xr.Problem), escapeCell(xr.Primary), escapeCell(related))
	}
	b.WriteString("\n")
}

func (r *Renderer) renderFooter(b *strings.Builder, mappings []mapping.Mapping, files []mapping.FileRecords, now time.Time) {
	b.WriteString("## Maintenance\n\n")
	fmt.Fprintf(b, "- Generated: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(b, "- Pattern files: %d\n", len(files))
	fmt.Fprintf(b, "- Patterns: %d\n", mapping.TotalRecords(files))
	fmt.Fprintf(b, "- Keyword mappings: %d\n", len(mappings))
}

// escapeCell keeps pipe characters from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
