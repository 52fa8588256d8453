package pattern

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/layeddie/patidx/internal/config"
)

// Parser splits one document's text into an ordered, fully materialized
// sequence of Records.
type Parser struct {
	delimiter     string
	header        *regexp.Regexp
	problemPrefix string
	conceptPrefix string
}

// NewParser creates a Parser from injected parse configuration.
// The header grammar is "<marker> Pattern <ordinal>: <title>".
func NewParser(cfg config.ParseConfig) *Parser {
	header := regexp.MustCompile(
		`^` + regexp.QuoteMeta(cfg.HeaderMarker) + `\s+Pattern\s+([^:\s]+)\s*:\s*(.+)$`)

	return &Parser{
		delimiter:     cfg.Delimiter,
		header:        header,
		problemPrefix: cfg.ProblemPrefix,
		conceptPrefix: cfg.ConceptPrefix,
	}
}

// Parse extracts pattern records from text. It never returns an error:
// blocks without a recognizable header become fallback records (ordinal 0,
// FallbackTitle) so block count equals record count for every kept block.
// Boilerplate preceding the first recognized header is discarded; a
// document with no recognizable header anywhere parses to zero records.
func (p *Parser) Parse(text string) []Record {
	blocks := p.splitBlocks(text)

	// Discard leading boilerplate: blocks before the first one that
	// carries a recognizable pattern header.
	start := -1
	for i, block := range blocks {
		if p.findHeader(block) != nil {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var records []Record
	for _, block := range blocks[start:] {
		records = append(records, p.parseBlock(block))
	}
	return records
}

// splitBlocks splits text on delimiter lines, dropping blocks that are
// only whitespace.
func (p *Parser) splitBlocks(text string) [][]string {
	var blocks [][]string
	var current []string
	hasContent := false

	flush := func() {
		if hasContent {
			blocks = append(blocks, current)
		}
		current = nil
		hasContent = false
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == p.delimiter {
			flush()
			continue
		}
		current = append(current, line)
		if strings.TrimSpace(line) != "" {
			hasContent = true
		}
	}
	flush()

	return blocks
}

// findHeader returns the header submatch for the first header line in a
// block, or nil.
func (p *Parser) findHeader(block []string) []string {
	for _, line := range block {
		if m := p.header.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			return m
		}
	}
	return nil
}

// parseBlock extracts one Record from a block. A block without a header
// yields a fallback record rather than an error.
func (p *Parser) parseBlock(block []string) Record {
	headerAt := -1
	var match []string
	for i, line := range block {
		if m := p.header.FindStringSubmatch(strings.TrimRight(line, "\r")); m != nil {
			headerAt = i
			match = m
			break
		}
	}

	if headerAt < 0 {
		return Record{Ordinal: 0, Title: FallbackTitle}
	}

	ordinal, err := strconv.Atoi(match[1])
	if err != nil || ordinal < 0 {
		ordinal = 0
	}

	rec := Record{
		Ordinal: ordinal,
		Title:   strings.TrimSpace(match[2]),
	}

	for _, line := range block[headerAt+1:] {
		trimmed := strings.TrimSpace(line)
		switch {
		case rec.Problem == "" && strings.HasPrefix(trimmed, p.problemPrefix):
			rec.Problem = strings.TrimSpace(strings.TrimPrefix(trimmed, p.problemPrefix))
		case rec.Concept == "" && strings.HasPrefix(trimmed, p.conceptPrefix):
			rec.Concept = strings.TrimSpace(strings.TrimPrefix(trimmed, p.conceptPrefix))
		}
	}

	return rec
}
