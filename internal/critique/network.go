// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// crossRefRe matches internal references such as "Table 2", "Fig. 3",
// "Equation 4", "Section IV", or "Appendix B".
var crossRefRe = regexp.MustCompile(`\b(?i:table|fig\.?|figure|equation|eq\.|section|appendix)\s+(?:\d+|[A-Z]\b|[IVX]+\b)`)

// Saturation points for the citation network sub-scores.
const (
	densityTarget  = 10.0 // citations per 1000 words
	recentTarget   = 0.5
	crossRefTarget = 10.0
)

// CitationNetwork scores citation density, recency, and internal
// cross-referencing. It reads citation years only; validation status is
// ignored. A document without citations scores 0 on every component.
func CitationNetwork(in Input) types.SubAnalysisReport {
	in = in.normalized()
	doc := in.Doc

	total := len(in.Citations)
	words := doc.WordCount()
	density := 0.0
	if words > 0 {
		density = float64(total) / (float64(words) / 1000)
	}

	currentYear := in.Now.Year()
	recent, dated := 0, 0
	for _, c := range in.Citations {
		if c.Year <= 0 {
			continue
		}
		dated++
		if c.Year <= currentYear && currentYear-c.Year <= in.RecencyWindowYears {
			recent++
		}
	}
	recentRatio := ratio(recent, total)

	crossRefs := len(crossRefRe.FindAllString(doc.Text, -1))

	metrics := map[string]any{
		"total_citations":      total,
		"citation_density":     score.Round2(density),
		"dated_citations":      dated,
		"recent_citations":     recent,
		"recent_ratio":         score.Round2(recentRatio),
		"recency_window_years": in.RecencyWindowYears,
		"cross_references":     crossRefs,
	}

	subs := map[string]float64{
		"citation_density_score": 0,
		"recency_score":          0,
		"cross_reference_score":  0,
	}
	if total > 0 {
		subs["citation_density_score"] = score.Saturate(density, densityTarget)
		subs["recency_score"] = score.Saturate(recentRatio, recentTarget)
		subs["cross_reference_score"] = score.Saturate(float64(crossRefs), crossRefTarget)
	}
	r := newReport(types.CategoryCitationNetwork, doc, metrics, subs)
	for _, name := range networkSubScores {
		r.Metrics[strings.TrimSuffix(name, "_score")+"_assessment"] = subAssessment(doc, r.SubScores[name])
	}
	return r
}

var networkSubScores = []string{"citation_density_score", "recency_score", "cross_reference_score"}

// subAssessment labels one sub-score with the same bands as the category.
func subAssessment(doc *document.Document, v float64) types.Assessment {
	if doc.IsEmpty() {
		return types.AssessmentInsufficient
	}
	return score.Label(v)
}
