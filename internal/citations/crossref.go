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

// crossrefAPIBase is the CrossRef works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

const crossrefRows = 3

// CrossRefLookup resolves citations against CrossRef. A citation carrying
// a DOI is fetched directly; otherwise a bibliographic search is run.
type CrossRefLookup struct {
	Client *http.Client

	// Mailto places requests in CrossRef's polite pool.
	Mailto    string
	UserAgent string
}

// Name returns the lookup identifier.
func (l *CrossRefLookup) Name() string { return "crossref" }

// Search returns candidate works for q.
func (l *CrossRefLookup) Search(ctx context.Context, q Query) ([]Candidate, error) {
	if q.DOI != "" {
		work, found, err := l.byDOI(ctx, q.DOI)
		if err != nil {
			return nil, err
		}
		if found {
			return []Candidate{work.candidate()}, nil
		}
	}

	text := q.Text()
	if text == "" {
		return nil, fmt.Errorf("empty CrossRef query")
	}
	params := url.Values{
		"query.bibliographic": {text},
		"rows":                {fmt.Sprintf("%d", crossrefRows)},
	}
	if l.Mailto != "" {
		params.Set("mailto", l.Mailto)
	}

	var sr crossrefSearchResponse
	status, err := l.get(ctx, crossrefAPIBase+"?"+params.Encode(), &sr)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("CrossRef API returned HTTP %d", status)
	}

	cands := make([]Candidate, 0, len(sr.Message.Items))
	for _, w := range sr.Message.Items {
		cands = append(cands, w.candidate())
	}
	return cands, nil
}

// byDOI fetches one work. A 404 is reported as not found, not an error.
func (l *CrossRefLookup) byDOI(ctx context.Context, doi string) (crossrefWork, bool, error) {
	apiURL := crossrefAPIBase + "/" + doi
	if l.Mailto != "" {
		apiURL += "?" + url.Values{"mailto": {l.Mailto}}.Encode()
	}

	var wr crossrefWorkResponse
	status, err := l.get(ctx, apiURL, &wr)
	if err != nil {
		return crossrefWork{}, false, err
	}
	switch status {
	case http.StatusOK:
		return wr.Message, true, nil
	case http.StatusNotFound:
		return crossrefWork{}, false, nil
	default:
		return crossrefWork{}, false, fmt.Errorf("CrossRef API returned HTTP %d", status)
	}
}

// get issues a GET and decodes a 200 response body into out.
func (l *CrossRefLookup) get(ctx context.Context, apiURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client(l.Client), req, 2)
	if err != nil {
		return 0, fmt.Errorf("CrossRef API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("parsing CrossRef response: %w", err)
	}
	return resp.StatusCode, nil
}

// CrossRef API JSON structures.
type crossrefWorkResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefSearchResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWork struct {
	DOI    string       `json:"DOI"`
	Title  []string     `json:"title"`
	Issued crossrefDate `json:"issued"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (w crossrefWork) candidate() Candidate {
	c := Candidate{DOI: w.DOI}
	if len(w.Title) > 0 {
		c.Title = strings.TrimSpace(w.Title[0])
	}
	if len(w.Issued.DateParts) > 0 && len(w.Issued.DateParts[0]) > 0 {
		c.Year = w.Issued.DateParts[0][0]
	}
	return c
}
