// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// HeuristicValidator classifies citations from their own text without any
// network access. An entry with a DOI is Valid; one with a URL, or with both
// a title and a year, is a PartialMatch; anything else searchable is
// NotFound.
type HeuristicValidator struct{}

// Validate classifies each citation in place order.
func (HeuristicValidator) Validate(_ context.Context, cits []types.Citation) []types.Citation {
	out := make([]types.Citation, len(cits))
	for i, c := range cits {
		switch {
		case !Searchable(c):
			c.Status = types.CitationInvalidFormat
		case c.DOI != "":
			c.Status = types.CitationValid
		case c.URL != "", c.CleanedTitle != "" && c.Year > 0:
			c.Status = types.CitationPartialMatch
		default:
			c.Status = types.CitationNotFound
		}
		out[i] = c
	}
	return out
}
