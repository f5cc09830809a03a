// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-critic/pkg/types"
)

var (
	doiRe = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:A-Z0-9]+\b`)
	urlRe = regexp.MustCompile(`(?i)https?://[^\s<>"]+`)

	// leadingNumberRe strips "[1] ", "(1) ", "1. " or "1) " from an entry.
	leadingNumberRe = regexp.MustCompile(`^\s*(?:\[\d+\]|\(\d+\)|\d{1,3}[.)])\s*`)

	quotedTitleRe = regexp.MustCompile(`["“]([^"”]{8,}?)[,.]?["”]`)

	parenYearRe = regexp.MustCompile(`\(((?:19|20)\d{2})[a-z]?\)`)

	// yearRe matches a 4-digit year.
	yearRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)

	// authorYearFormatRe matches "(2020)" or ", 2020." style dating.
	authorYearFormatRe = regexp.MustCompile(`\((?:19|20)\d{2}[a-z]?\)|,\s*(?:19|20)\d{2}[a-z]?[.,]`)

	// authorBlockRe matches an author section like "Smith, A. and Jones, B." or
	// "Brown, T. et al." at the start of a bibliography entry. It captures the
	// author block so we can separate it from the title that follows.
	authorBlockRe = regexp.MustCompile(
		`^((?:[A-Z][a-z]+(?:,\s+[A-Z]\.?)?(?:,?\s+(?:and|&)\s+)?)+(?:\s*et\s+al\.)?)\s*[.]?\s+(.+)$`,
	)

	// initialRe matches single-letter author initials like "A." or "B." so we
	// can protect them from period-based splitting.
	initialRe = regexp.MustCompile(`\b([A-Z])\.`)
)

// Parse builds a Citation from one raw reference entry. Status is left
// empty for the validator to set.
func Parse(raw string) types.Citation {
	raw = strings.TrimSpace(raw)
	c := types.Citation{
		RawText:      raw,
		CleanedTitle: CleanTitle(raw),
		DOI:          strings.TrimRight(doiRe.FindString(raw), ".,;"),
		URL:          strings.TrimRight(urlRe.FindString(raw), ".,;)"),
		Format:       DetectFormat(raw),
	}
	c.Year = ExtractYear(raw)
	return c
}

// DetectFormat classifies the leading style of a reference entry.
func DetectFormat(raw string) types.CitationFormat {
	trimmed := strings.TrimSpace(raw)
	switch {
	case numberedStartRe.MatchString(trimmed + " "):
		return types.FormatNumbered
	case authorYearFormatRe.MatchString(stripLinks(trimmed)):
		return types.FormatAuthorYear
	default:
		return types.FormatOther
	}
}

// ExtractYear returns the publication year of an entry, preferring a
// parenthesized year. DOIs and URLs are ignored. Returns 0 when absent.
func ExtractYear(raw string) int {
	text := stripLinks(raw)
	if m := parenYearRe.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := yearRe.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return 0
}

// CleanTitle isolates the title of a reference entry. It tries, in order:
// a quoted title, the sentence after "(Year).", the text after a
// parenthesized year, the segment after an author block, and finally the
// longest period-separated segment.
func CleanTitle(raw string) string {
	s := stripLinks(leadingNumberRe.ReplaceAllString(strings.TrimSpace(raw), ""))
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}

	if m := quotedTitleRe.FindStringSubmatch(s); m != nil && plausibleTitle(m[1]) {
		return tidyTitle(m[1])
	}

	if i := strings.Index(s, ")."); i >= 0 {
		if parts := splitOnPeriods(s[i+2:]); len(parts) > 0 && plausibleTitle(parts[0]) {
			return tidyTitle(parts[0])
		}
	}

	if loc := parenYearRe.FindStringIndex(s); loc != nil {
		rest := strings.TrimLeft(s[loc[1]:], " .,:")
		if parts := splitOnPeriods(rest); len(parts) > 0 && plausibleTitle(parts[0]) {
			return tidyTitle(parts[0])
		}
	}

	if m := authorBlockRe.FindStringSubmatch(s); m != nil {
		if parts := splitOnPeriods(m[2]); len(parts) > 0 && plausibleTitle(parts[0]) {
			return tidyTitle(parts[0])
		}
	}

	longest := ""
	for _, p := range splitOnPeriods(s) {
		if len(p) > len(longest) {
			longest = p
		}
	}
	if !plausibleTitle(longest) {
		return ""
	}
	return tidyTitle(longest)
}

// SearchTokens returns the words used to query a bibliographic lookup:
// letter-bearing words of three or more characters from the cleaned title,
// or from the raw entry when no title was isolated.
func SearchTokens(c types.Citation) []string {
	source := c.CleanedTitle
	if source == "" {
		source = stripLinks(leadingNumberRe.ReplaceAllString(c.RawText, ""))
	}

	var tokens []string
	for _, f := range strings.FieldsFunc(source, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	}) {
		f = strings.Trim(f, "-'")
		if len([]rune(f)) < 3 || !hasLetter(f) || queryStopwords[strings.ToLower(f)] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// minSearchTokens is the fewest tokens that make a searchable citation.
const minSearchTokens = 2

// Searchable reports whether c has enough tokens to be looked up.
func Searchable(c types.Citation) bool {
	return len(SearchTokens(c)) >= minSearchTokens
}

var queryStopwords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "from": true, "into": true,
	"pp": true, "vol": true, "proc": true, "journal": true, "eds": true, "doi": true,
	"http": true, "https": true, "www": true, "retrieved": true, "available": true,
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func plausibleTitle(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= 8 && len(strings.Fields(s)) >= 2
}

func tidyTitle(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"“”'.,;:`))
}

func stripLinks(s string) string {
	s = doiRe.ReplaceAllString(s, "")
	s = urlRe.ReplaceAllString(s, "")
	return s
}

// splitOnPeriods splits a bibliography entry into segments at period boundaries,
// but avoids splitting on common abbreviations (et al., e.g., i.e.) and
// single-letter initials (A., B., J.).
func splitOnPeriods(text string) []string {
	safe := strings.ReplaceAll(text, "et al.", "et al\x00")
	safe = strings.ReplaceAll(safe, "e.g.", "e\x00g\x00")
	safe = strings.ReplaceAll(safe, "i.e.", "i\x00e\x00")
	safe = initialRe.ReplaceAllString(safe, "${1}\x00")

	var result []string
	for _, p := range strings.Split(safe, ". ") {
		p = strings.ReplaceAll(p, "\x00", ".")
		p = strings.TrimRight(p, ".")
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
