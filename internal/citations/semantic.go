// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/paper-critic/internal/httputil"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const (
	semanticFields = "title,year,externalIds"
	semanticLimit  = 3
)

// SemanticScholarLookup searches the Semantic Scholar graph API.
type SemanticScholarLookup struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the lookup identifier.
func (l *SemanticScholarLookup) Name() string { return "semantic_scholar" }

// Search returns up to three candidate papers for q.
func (l *SemanticScholarLookup) Search(ctx context.Context, q Query) ([]Candidate, error) {
	text := q.Text()
	if text == "" {
		return nil, fmt.Errorf("empty Semantic Scholar query")
	}

	params := url.Values{
		"query":  {text},
		"limit":  {fmt.Sprintf("%d", semanticLimit)},
		"fields": {semanticFields},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}
	if l.APIKey != "" {
		req.Header.Set("x-api-key", l.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, client(l.Client), req, 2)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	cands := make([]Candidate, 0, len(sr.Data))
	for _, p := range sr.Data {
		cands = append(cands, Candidate{Title: p.Title, Year: p.Year, DOI: p.ExternalIDs.DOI})
	}
	return cands, nil
}

func client(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total int             `json:"total"`
	Data  []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string `json:"paperId"`
	Title       string `json:"title"`
	Year        int    `json:"year"`
	ExternalIDs struct {
		DOI   string `json:"DOI"`
		ArXiv string `json:"ArXiv"`
	} `json:"externalIds"`
}
