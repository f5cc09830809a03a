// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations finds a paper's reference section, splits it into
// entries, and validates each entry against a bibliographic lookup.
// extract.go handles locating and splitting the section.
package citations

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/pkg/types"
)

var (
	// numberedStartRe matches entry starts like "[12] ", "(3) ", "4. ", "5) ".
	numberedStartRe = regexp.MustCompile(`^\s*(?:\[\d+\]|\(\d+\)|\d{1,3}[.)])\s+`)

	// authorYearStartRe matches entry starts like "Smith, J." or
	// "O'Neil, Cathy," followed later by a year.
	authorYearStartRe = regexp.MustCompile(`^[A-Z][\p{L}'’\-]+(?:\s+[A-Z][\p{L}'’\-]+)?,\s+(?:[A-Z]\.|[A-Z][\p{L}'’\-]+)`)

	// headingPrefixRe strips markdown hashes and section numbers.
	headingPrefixRe = regexp.MustCompile(`^(?:#+\s*)?(?:(?:\d+(?:\.\d+)*|[IVX]+)[.)]?\s+)?`)
)

// Extractor pulls reference entries out of a document.
type Extractor struct {
	lib          *patterns.Library
	maxCitations int
	minLength    int
}

// NewExtractor returns an Extractor using lib's heading tables. A nil
// library finds no reference section.
func NewExtractor(lib *patterns.Library, cfg types.CitationConfig) *Extractor {
	if lib == nil {
		lib = &patterns.Library{}
	}
	def := types.DefaultConfig().Citations
	if cfg.MaxCitations <= 0 {
		cfg.MaxCitations = def.MaxCitations
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = def.MinLength
	}
	return &Extractor{lib: lib, maxCitations: cfg.MaxCitations, minLength: cfg.MinLength}
}

// Extract returns the parsed reference entries of doc, in document order.
// A document without a reference heading yields an empty, non-nil slice.
func (e *Extractor) Extract(doc *document.Document) []types.Citation {
	out := []types.Citation{}
	if doc == nil {
		return out
	}
	for _, raw := range e.Entries(doc.Lines) {
		out = append(out, Parse(raw))
	}
	return out
}

// Entries returns the trimmed raw reference strings found in lines.
func (e *Extractor) Entries(lines []string) []string {
	block := e.referenceBlock(lines)
	if len(block) == 0 {
		return nil
	}

	var entries []string
	for _, entry := range splitEntries(block) {
		entry = strings.Join(strings.Fields(entry), " ")
		if len(entry) < e.minLength {
			continue
		}
		entries = append(entries, entry)
		if len(entries) >= e.maxCitations {
			break
		}
	}
	return entries
}

// referenceBlock returns the lines between the last reference heading and
// the next stop heading (or end of document). The last heading is used so
// that a table of contents listing "References" is not mistaken for it.
func (e *Extractor) referenceBlock(lines []string) []string {
	start := -1
	for i, line := range lines {
		if matchesHeading(line, e.lib.ReferenceHeadings) {
			start = i
		}
	}
	if start < 0 {
		return nil
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if matchesHeading(lines[i], e.lib.StopHeadings) {
			end = i
			break
		}
	}
	return lines[start+1 : end]
}

// matchesHeading reports whether line, stripped of numbering, markdown
// markers, and a trailing colon, is one of the headings. Matching is
// case-insensitive; a stop heading may carry a suffix ("Appendix A").
func matchesHeading(line string, headings []string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(strings.Fields(trimmed)) > 6 {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(headingPrefixRe.ReplaceAllString(trimmed, "")))
	name = strings.Join(strings.Fields(strings.TrimRight(name, ": ")), " ")
	for _, h := range headings {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if name == h || strings.HasPrefix(name, h+" ") {
			return true
		}
	}
	return false
}

// splitEntries groups reference lines into entries. When any line opens
// with a number or bracket, only such lines start entries; otherwise
// author-year openings start entries; otherwise every non-blank line is
// its own entry. Blank lines always close the current entry.
func splitEntries(block []string) []string {
	starts := numberedStartRe
	if !anyMatch(block, numberedStartRe) {
		if !anyMatch(block, authorYearStartRe) {
			var entries []string
			for _, line := range block {
				if strings.TrimSpace(line) != "" {
					entries = append(entries, line)
				}
			}
			return entries
		}
		starts = authorYearStartRe
	}

	var entries []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			entries = append(entries, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range block {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case starts.MatchString(trimmed):
			flush()
			current = append(current, trimmed)
		case len(current) > 0:
			current = append(current, trimmed)
		}
	}
	flush()
	return entries
}

func anyMatch(lines []string, re *regexp.Regexp) bool {
	for _, line := range lines {
		if re.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}
