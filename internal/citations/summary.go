// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// Summarize counts validation outcomes. ValidityRatio is Valid/Total and
// is 0 when there are no citations.
func Summarize(cits []types.Citation) types.CitationSummary {
	s := types.CitationSummary{Total: len(cits)}
	for _, c := range cits {
		switch c.Status {
		case types.CitationValid:
			s.Valid++
		case types.CitationPartialMatch:
			s.PartialMatch++
		case types.CitationInvalidFormat:
			s.InvalidFormat++
		default:
			s.NotFound++
		}
	}
	if s.Total > 0 {
		s.ValidityRatio = float64(s.Valid) / float64(s.Total)
	}
	s.QualityScore = score.Round2(s.ValidityRatio * 100)
	s.Recommendation = recommendation(s)
	return s
}

func recommendation(s types.CitationSummary) string {
	switch {
	case s.Total == 0:
		return "No citations found. Consider adding references to support your claims."
	case s.Valid == 0:
		return "No valid citations found. Review reference formatting and accuracy."
	case s.ValidityRatio < 0.5:
		return "Less than 50% of citations are valid. Review and correct citation formatting."
	case s.ValidityRatio < 0.8:
		return "Most citations are valid, but some need correction."
	default:
		return "Citations appear to be well-formatted and accurate."
	}
}
