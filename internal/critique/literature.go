// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// specificWindow is how many words after a gap phrase are searched for a
// technical term.
const specificWindow = 10

// Caps at which the literature counts saturate.
const (
	gapCap     = 6.0
	noveltyCap = 5.0
	futureCap  = 3.0
)

var (
	acronymRe = regexp.MustCompile(`^[A-Z]{2,}[0-9]*s?$`)

	technicalSuffixes = []string{
		"tion", "sion", "ment", "ity", "ism", "ance", "ence",
		"ology", "ometry", "ics", "ization", "isation", "osis",
	}
)

// LiteraturePositioning scores research-gap statements, novelty claims,
// and forward-looking statements. A gap phrase followed closely by a
// technical term counts as specific and is credited double.
func LiteraturePositioning(in Input) types.SubAnalysisReport {
	in = in.normalized()
	doc, lib := in.Doc, in.Library

	// Offsets into Lower are only valid for Text when lower-casing kept
	// every byte length.
	source := doc.Text
	if len(source) != len(doc.Lower) {
		source = doc.Lower
	}

	gaps, specific := 0, 0
	for _, phrase := range lib.GapPhrases {
		for _, end := range patterns.Positions(doc.Lower, phrase) {
			gaps++
			if technicalTermFollows(source[end:]) {
				specific++
			}
		}
	}
	generic := gaps - specific

	novelty := patterns.CountAll(doc.Lower, lib.NoveltyPhrases)
	future := patterns.CountAll(doc.Lower, lib.FutureWork)

	metrics := map[string]any{
		"gap_mentions":         gaps,
		"specific_gaps":        specific,
		"generic_gaps":         generic,
		"novelty_claims":       novelty,
		"future_work_mentions": future,
	}
	return newReport(types.CategoryLiteraturePositioning, doc, metrics, map[string]float64{
		"gap_identification_score": score.Saturate(float64(generic+2*specific), gapCap),
		"novelty_score":            score.Saturate(float64(novelty), noveltyCap),
		"future_work_score":        score.Saturate(float64(future), futureCap),
	})
}

// technicalTermFollows reports whether one of the next specificWindow
// words of text is an acronym, a hyphenated compound, or a word with a
// technical suffix.
func technicalTermFollows(text string) bool {
	words := strings.Fields(text)
	if len(words) > specificWindow {
		words = words[:specificWindow]
	}
	for _, w := range words {
		if isTechnicalTerm(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})) {
			return true
		}
	}
	return false
}

func isTechnicalTerm(w string) bool {
	if w == "" {
		return false
	}
	if acronymRe.MatchString(w) {
		return true
	}
	if i := strings.Index(w, "-"); i > 0 && i < len(w)-1 {
		return true
	}
	lower := strings.ToLower(w)
	if len(lower) < 7 {
		return false
	}
	for _, suf := range technicalSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}
