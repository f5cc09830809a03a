// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

const (
	reproducibilityTarget = 3.0
	peerReviewTarget      = 5.0
)

// Reproducibility scores availability statements, peer-review quality
// hints, and how consistently the references follow one format.
func Reproducibility(in Input) types.SubAnalysisReport {
	in = in.normalized()
	doc, lib := in.Doc, in.Library

	repro := patterns.Found(doc.Lower, lib.Reproducibility)

	hints := patterns.Found(doc.Lower, lib.PeerReview)
	flags := map[string]bool{
		"limitations_discussed": len(patterns.Found(doc.Lower, lib.Limitations)) > 0,
		"generalizability":      len(patterns.Found(doc.Lower, lib.Generalizability)) > 0,
		"ethics_addressed":      len(patterns.Found(doc.Lower, lib.Ethics)) > 0,
		"data_availability":     len(patterns.Found(doc.Lower, lib.DataAvailability)) > 0,
	}
	hintCount := len(hints)
	for _, on := range flags {
		if on {
			hintCount++
		}
	}

	formats := make(map[types.CitationFormat]int)
	dominant := types.CitationFormat("")
	for _, c := range in.Citations {
		formats[c.Format]++
	}
	for _, f := range []types.CitationFormat{types.FormatNumbered, types.FormatAuthorYear, types.FormatOther} {
		if formats[f] > formats[dominant] {
			dominant = f
		}
	}
	consistency := 100 * ratio(formats[dominant], len(in.Citations))

	methodology := patterns.Found(doc.Lower, lib.Methodology)

	metrics := map[string]any{
		"reproducibility_indicators": nonNil(repro),
		"peer_review_hints":          nonNil(hints),
		"peer_review_hint_count":     hintCount,
		"dominant_citation_format":   string(dominant),
		"citation_formats":           formats,
		"methodology_keywords":       len(methodology),
		"methodology_score":          score.Clamp(10 * float64(len(methodology))),
	}
	for k, v := range flags {
		metrics[k] = v
	}

	return newReport(types.CategoryReproducibility, doc, metrics, map[string]float64{
		"reproducibility_score":    score.Saturate(float64(len(repro)), reproducibilityTarget),
		"peer_review_score":        score.Saturate(float64(hintCount), peerReviewTarget),
		"format_consistency_score": consistency,
	})
}
