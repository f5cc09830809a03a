// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/paper-critic/internal/httputil"
)

// openAlexAPIBase is the OpenAlex Works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

const (
	openAlexSelect = "id,doi,title,publication_year"
	openAlexLimit  = 3
)

// OpenAlexLookup queries the OpenAlex Works API.
type OpenAlexLookup struct {
	Client *http.Client
	// Mailto is sent as the mailto parameter for polite pool access.
	Mailto    string
	UserAgent string
}

// Name returns the lookup identifier.
func (l *OpenAlexLookup) Name() string { return "openalex" }

// Search filters by DOI when the citation carries one and falls back to a
// relevance search over the title and tokens.
func (l *OpenAlexLookup) Search(ctx context.Context, q Query) ([]Candidate, error) {
	if q.DOI != "" {
		cands, err := l.query(ctx, url.Values{"filter": {"doi:" + strings.ToLower(q.DOI)}})
		if err != nil || len(cands) > 0 {
			return cands, err
		}
	}

	text := q.Text()
	if text == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}
	return l.query(ctx, url.Values{"search": {text}})
}

func (l *OpenAlexLookup) query(ctx context.Context, params url.Values) ([]Candidate, error) {
	params.Set("per_page", fmt.Sprintf("%d", openAlexLimit))
	params.Set("select", openAlexSelect)
	if l.Mailto != "" {
		params.Set("mailto", l.Mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, openAlexAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client(l.Client), req, 2)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	cands := make([]Candidate, 0, len(oar.Results))
	for _, w := range oar.Results {
		cands = append(cands, Candidate{
			Title: w.Title,
			Year:  w.PublicationYear,
			// OpenAlex reports DOIs as resolver URLs.
			DOI: strings.TrimPrefix(w.DOI, "https://doi.org/"),
		})
	}
	return cands, nil
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DOI             string `json:"doi"`
	PublicationYear int    `json:"publication_year"`
}
