// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document wraps extracted paper text and caches the artifacts
// every analyzer needs: word tokens, sentences, lines, and headings. A
// Document is built once per analysis and is read-only afterwards, so the
// analyzers can share it across goroutines.
package document

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// Document is immutable extracted text plus derived artifacts.
type Document struct {
	// Text is the extracted text as received.
	Text string

	// Lower is Text lower-cased, used for phrase matching.
	Lower string

	// Words holds lower-cased word tokens in document order.
	Words []string

	// Sentences holds trimmed sentences in document order.
	Sentences []string

	// Lines holds the raw lines of Text.
	Lines []string

	headings []heading
}

// heading is a line that looks like a section title.
type heading struct {
	line int
	name string
}

var (
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	sentenceSplitRe = regexp.MustCompile(`[.!?]+(?:\s+|$)|\n\s*\n`)

	// headingNumberRe strips "1.", "2.3", "IV.", "A." and markdown hashes.
	headingNumberRe = regexp.MustCompile(`^(?:#+\s*)?(?:(?:\d+(?:\.\d+)*[.)]?|(?:[IVX]+|[A-Z])[.)])\s+)?`)
)

// abbreviations are protected from sentence splitting.
var abbreviations = []string{"et al.", "e.g.", "i.e.", "Fig.", "fig.", "Eq.", "eq.", "vs.", "cf.", "approx.", "No."}

// New builds a Document from text. Empty text yields a valid document
// with no words, sentences, or headings.
func New(text string) *Document {
	d := &Document{
		Text:  text,
		Lower: strings.ToLower(text),
	}
	d.Words = wordRe.FindAllString(d.Lower, -1)
	d.Sentences = splitSentences(text)
	d.Lines = strings.Split(text, "\n")
	for i, line := range d.Lines {
		if name, ok := headingName(line); ok {
			d.headings = append(d.headings, heading{line: i, name: name})
		}
	}
	return d
}

// WordCount returns the number of word tokens.
func (d *Document) WordCount() int { return len(d.Words) }

// IsEmpty reports whether the document has no words at all.
func (d *Document) IsEmpty() bool { return len(d.Words) == 0 }

// Stats summarizes the document.
func (d *Document) Stats() types.DocumentStats {
	return types.DocumentStats{
		Title:         d.Title(),
		WordCount:     d.WordCount(),
		SentenceCount: len(d.Sentences),
		CharCount:     len(d.Text),
	}
}

// Title guesses the document title: the first of the opening ten lines
// whose length is between 10 and 200 characters.
func (d *Document) Title() string {
	for i, line := range d.Lines {
		if i >= 10 {
			break
		}
		line = strings.TrimSpace(line)
		if len(line) >= 10 && len(line) <= 200 {
			return line
		}
	}
	return ""
}

// HasSection reports whether any heading matches one of the variants.
// A heading matches when it equals the variant or begins with it as a
// whole word ("results and discussion" matches "results").
func (d *Document) HasSection(variants []string) bool {
	return d.findHeading(variants, 0) >= 0
}

// HeadingLine returns the line index of the first heading at or after
// from that matches a variant, or -1.
func (d *Document) HeadingLine(variants []string, from int) int {
	return d.findHeading(variants, from)
}

// NextHeadingLine returns the line index of the first heading strictly
// after line, or len(Lines) when none follows.
func (d *Document) NextHeadingLine(line int) int {
	for _, h := range d.headings {
		if h.line > line {
			return h.line
		}
	}
	return len(d.Lines)
}

func (d *Document) findHeading(variants []string, from int) int {
	for _, h := range d.headings {
		if h.line < from {
			continue
		}
		for _, v := range variants {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			if h.name == v || strings.HasPrefix(h.name, v+" ") {
				return h.line
			}
		}
	}
	return -1
}

// Abstract returns the abstract segment: the text between an "Abstract"
// heading and the next heading, the remainder of an inline "Abstract:"
// line, or else the first fallbackWords words of the document.
func (d *Document) Abstract(fallbackWords int) string {
	if start := d.findHeading([]string{"abstract"}, 0); start >= 0 {
		end := d.NextHeadingLine(start)
		if seg := strings.TrimSpace(strings.Join(d.Lines[start+1:end], "\n")); seg != "" {
			return seg
		}
	}

	for i, line := range d.Lines {
		trimmed := strings.TrimSpace(line)
		rest, ok := cutAbstractLabel(trimmed)
		if !ok {
			continue
		}
		end := d.NextHeadingLine(i)
		parts := append([]string{rest}, d.Lines[i+1:end]...)
		return strings.TrimSpace(strings.Join(parts, "\n"))
	}

	if fallbackWords <= 0 || d.IsEmpty() {
		return ""
	}
	fields := strings.Fields(d.Text)
	if len(fields) > fallbackWords {
		fields = fields[:fallbackWords]
	}
	return strings.Join(fields, " ")
}

// cutAbstractLabel splits "Abstract: text" or "Abstract - text" lines.
func cutAbstractLabel(line string) (string, bool) {
	if len(line) < len("abstract")+2 || !strings.EqualFold(line[:len("abstract")], "abstract") {
		return "", false
	}
	rest := strings.TrimLeft(line[len("abstract"):], " ")
	for _, sep := range []string{":", "—", "–", "-", "."} {
		if strings.HasPrefix(rest, sep) {
			return strings.TrimSpace(rest[len(sep):]), true
		}
	}
	return "", false
}

// headingName returns the normalized heading text when line looks like a
// section heading: short, not sentence-terminated, and either numbered,
// marked with '#', title case, or upper case.
func headingName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 80 {
		return "", false
	}
	marked := strings.HasPrefix(trimmed, "#")
	stripped := strings.TrimSpace(headingNumberRe.ReplaceAllString(trimmed, ""))
	numbered := stripped != strings.TrimLeft(trimmed, "# ")
	stripped = strings.TrimRight(stripped, ": ")
	if stripped == "" {
		return "", false
	}
	if strings.HasSuffix(stripped, ".") || strings.HasSuffix(stripped, ",") {
		return "", false
	}
	words := strings.Fields(stripped)
	if len(words) > 8 {
		return "", false
	}
	first, _ := firstRune(stripped)
	if !unicode.IsUpper(first) && !marked {
		return "", false
	}
	if !marked && !numbered && !titleCase(words) {
		return "", false
	}
	return strings.ToLower(strings.Join(words, " ")), true
}

// titleCase reports whether the significant words of a heading start with
// an upper-case letter. Short function words are ignored.
func titleCase(words []string) bool {
	for _, w := range words {
		switch strings.ToLower(w) {
		case "and", "or", "of", "the", "a", "an", "in", "on", "for", "to", "with", "&":
			continue
		}
		r, ok := firstRune(w)
		if !ok || (unicode.IsLetter(r) && !unicode.IsUpper(r)) {
			return false
		}
	}
	return true
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// splitSentences splits text at terminal punctuation and paragraph breaks,
// protecting common abbreviations.
func splitSentences(text string) []string {
	safe := text
	for _, abbr := range abbreviations {
		safe = strings.ReplaceAll(safe, abbr, strings.ReplaceAll(abbr, ".", "\x00"))
	}
	var out []string
	for _, s := range sentenceSplitRe.Split(safe, -1) {
		s = strings.ReplaceAll(s, "\x00", ".")
		s = strings.Join(strings.Fields(s), " ")
		if len(s) > 5 {
			out = append(out, s)
		}
	}
	return out
}
