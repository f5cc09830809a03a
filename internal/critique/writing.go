// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

var (
	// citationMarkerRe matches in-text citations: "[3]", "[1, 4-6]",
	// "(Smith, 2020)", "(Smith et al., 2020a)", "(Lee and Kim, 2019)".
	citationMarkerRe = regexp.MustCompile(
		`\[\d+(?:\s*[,–-]\s*\d+)*\]|\([A-Z][\p{L}'\-]+(?:\s+et\s+al\.)?(?:,?\s+(?:and|&)\s+[A-Z][\p{L}'\-]+)?,\s*(?:19|20)\d{2}[a-z]?\)`)

	passiveRe = regexp.MustCompile(`(?i)\b(?:is|are|was|were|be|been|being)\s+(?:\w+ly\s+)?\w+(?:ed|en)\b`)
)

// Argument-flow targets: the per-sentence rates at which a component is
// fully credited.
const (
	connectorTarget = 0.3
	evidenceTarget  = 0.3

	passiveFlag = 0.3
	hedgeFlag   = 0.02
)

// WritingQuality scores section structure, argument flow, and abstract
// completeness. Readability, passive voice, hedging, jargon, biased
// language, and overclaiming are reported as metrics only.
func WritingQuality(in Input) types.SubAnalysisReport {
	in = in.normalized()
	doc, lib := in.Doc, in.Library

	var found, missing []string
	for _, name := range lib.RequiredSections {
		if doc.HasSection(lib.Section(name)) {
			found = append(found, name)
		} else {
			missing = append(missing, name)
		}
	}
	structure := 100 * ratio(len(found), len(lib.RequiredSections))

	connectors := make(map[string]int, len(lib.Connectors))
	totalConnectors, variety := 0, 0
	for _, cat := range sortedKeys(lib.Connectors) {
		n := patterns.CountAll(doc.Lower, lib.Connectors[cat])
		connectors[cat] = n
		totalConnectors += n
		if n > 0 {
			variety++
		}
	}
	sentences := len(doc.Sentences)
	cited := 0
	for _, s := range doc.Sentences {
		if citationMarkerRe.MatchString(s) {
			cited++
		}
	}
	perSentence := ratio(totalConnectors, sentences)
	evidence := ratio(cited, sentences)
	flow := 0.0
	if sentences > 0 {
		flow = 100 * (0.3*ratio(variety, len(lib.Connectors)) +
			0.3*score.ClampRatio(perSentence/connectorTarget) +
			0.4*score.ClampRatio(evidence/evidenceTarget))
	}

	abstract := strings.ToLower(doc.Abstract(in.AbstractWords))
	components := foundGroups(abstract, lib.AbstractComponents)
	abstractScore := 100 * ratio(len(components), len(lib.AbstractComponents))

	metrics := map[string]any{
		"sections_found":          nonNil(found),
		"sections_missing":        nonNil(missing),
		"connectors":              connectors,
		"connector_variety":       variety,
		"connectors_per_sentence": score.Round2(perSentence),
		"evidence_density":        score.Round2(evidence),
		"abstract_components":     nonNil(components),
	}
	for k, v := range writingExtras(in) {
		metrics[k] = v
	}

	return newReport(types.CategoryWritingQuality, doc, metrics, map[string]float64{
		"structure_score":        structure,
		"argument_flow_score":    flow,
		"abstract_quality_score": abstractScore,
	})
}

// writingExtras computes the style metrics that do not affect the score.
func writingExtras(in Input) map[string]any {
	doc, lib := in.Doc, in.Library
	words, sentences := doc.WordCount(), len(doc.Sentences)

	avg := ratio(words, sentences)
	readability := "Complex"
	switch {
	case avg < 15:
		readability = "Easy to read"
	case avg < 25:
		readability = "Moderate complexity"
	}

	passive := 0
	for _, s := range doc.Sentences {
		if passiveRe.MatchString(s) {
			passive++
		}
	}
	passiveRatio := ratio(passive, sentences)

	hedges := patterns.CountAll(doc.Lower, lib.Hedges)
	hedgeDensity := ratio(hedges, words)

	bias := patterns.Found(doc.Lower, lib.BiasTerms)
	biasSeverity := types.SeverityLow
	switch {
	case len(bias) >= 4:
		biasSeverity = types.SeverityHigh
	case len(bias) >= 2:
		biasSeverity = types.SeverityMedium
	}

	redFlags := patterns.Found(doc.Lower, lib.RedFlags)

	return map[string]any{
		"avg_sentence_length": score.Round2(avg),
		"readability":         readability,
		"passive_voice_ratio": score.Round2(passiveRatio),
		"passive_voice_flag":  passiveRatio > passiveFlag,
		"hedge_count":         hedges,
		"hedge_density":       score.Round2(hedgeDensity),
		"hedge_flag":          hedgeDensity > hedgeFlag,
		"jargon_count":        patterns.CountAll(doc.Lower, lib.Jargon),
		"bias_terms":          nonNil(bias),
		"bias_severity":       biasSeverity,
		"objectivity_score":   score.Clamp(100 - 15*float64(len(bias))),
		"red_flags":           nonNil(redFlags),
		"red_flag_score":      score.Clamp(100 - 10*float64(len(redFlags))),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
