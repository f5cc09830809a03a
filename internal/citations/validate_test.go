// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// fakeLookup answers from a fixed table keyed by query title.
type fakeLookup struct {
	results map[string][]Candidate
	fail    map[string]bool
	block   bool
	calls   atomic.Int32
}

func (f *fakeLookup) Name() string { return "fake" }

func (f *fakeLookup) Search(ctx context.Context, q Query) ([]Candidate, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.fail[q.Title] {
		return nil, errors.New("connection refused")
	}
	return f.results[q.Title], nil
}

func TestClassify(t *testing.T) {
	const title = "Deep learning for protein folding"
	tests := []struct {
		name      string
		cands     []Candidate
		want      types.CitationStatus
		wantDOI   string
		wantMatch bool
	}{
		{
			name:      "single strong match",
			cands:     []Candidate{{Title: "Deep Learning for Protein Folding", DOI: "10.1/a", Year: 2020}},
			want:      types.CitationValid,
			wantDOI:   "10.1/a",
			wantMatch: true,
		},
		{
			name: "competing strong matches",
			cands: []Candidate{
				{Title: "Deep learning for protein folding", DOI: "10.1/a"},
				{Title: "Deep learning for protein folding revisited", DOI: "10.1/b"},
			},
			want:      types.CitationPartialMatch,
			wantMatch: true,
		},
		{
			name: "strong matches sharing a DOI",
			cands: []Candidate{
				{Title: "Deep learning for protein folding", DOI: "10.1/a"},
				{Title: "Deep learning for protein folding revisited", DOI: "10.1/A"},
			},
			want:      types.CitationValid,
			wantDOI:   "10.1/a",
			wantMatch: true,
		},
		{
			name:      "weak match",
			cands:     []Candidate{{Title: "Protein folding"}},
			want:      types.CitationPartialMatch,
			wantMatch: true,
		},
		{
			name:  "unrelated",
			cands: []Candidate{{Title: "Quantum chromodynamics"}},
			want:  types.CitationNotFound,
		},
		{
			name: "no candidates",
			want: types.CitationNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := types.Citation{CleanedTitle: title}
			classify(&c, tt.cands, "fake")
			assert.Equal(t, tt.want, c.Status)
			assert.Equal(t, tt.wantDOI, c.DOI)
			if tt.wantMatch {
				require.NotNil(t, c.Match)
				assert.Equal(t, "fake", c.Match.Source)
			} else {
				assert.Nil(t, c.Match)
			}
		})
	}
}

func TestClassifyKeepsParsedDOI(t *testing.T) {
	c := types.Citation{CleanedTitle: "Some other wording entirely", DOI: "10.5/x"}
	classify(&c, []Candidate{{Title: "Deep learning", DOI: "10.5/X"}}, "fake")
	assert.Equal(t, types.CitationValid, c.Status)
	assert.Equal(t, "10.5/x", c.DOI)
}

func TestTitleOverlap(t *testing.T) {
	assert.InDelta(t, 1.0, titleOverlap("Deep Learning", "deep learning."), 1e-9)
	assert.InDelta(t, 0.4, titleOverlap("Deep learning for protein folding", "Deep learning"), 1e-9)
	assert.Zero(t, titleOverlap("alpha beta", "gamma delta"))
	assert.Zero(t, titleOverlap("", "gamma delta"))
}

func TestLookupValidatorPreservesOrder(t *testing.T) {
	lookup := &fakeLookup{
		results: map[string][]Candidate{
			"Deep learning for protein folding": {{Title: "Deep learning for protein folding", DOI: "10.1/a"}},
			"Graph methods in citation analysis": {{Title: "Citation analysis"}},
		},
		fail: map[string]bool{"Failing lookup title here": true},
	}
	v := NewLookupValidator(lookup, types.CitationConfig{Concurrency: 4})

	in := []types.Citation{
		{CleanedTitle: "Deep learning for protein folding"},
		{RawText: "[9] ibid."},
		{CleanedTitle: "Graph methods in citation analysis"},
		{CleanedTitle: "Failing lookup title here"},
		{CleanedTitle: "Nothing matches this title"},
	}
	out := v.Validate(context.Background(), in)
	require.Len(t, out, len(in))

	want := []types.CitationStatus{
		types.CitationValid,
		types.CitationInvalidFormat,
		types.CitationPartialMatch,
		types.CitationNotFound,
		types.CitationNotFound,
	}
	for i := range want {
		assert.Equal(t, want[i], out[i].Status, "citation %d", i)
		assert.Equal(t, in[i].CleanedTitle, out[i].CleanedTitle)
	}
	assert.Equal(t, int32(4), lookup.calls.Load(), "invalid-format citations are never looked up")
}

func TestLookupValidatorTimeout(t *testing.T) {
	lookup := &fakeLookup{block: true}
	v := NewLookupValidator(lookup, types.CitationConfig{CallTimeout: 20 * time.Millisecond})

	start := time.Now()
	out := v.Validate(context.Background(), []types.Citation{{CleanedTitle: "A slow lookup title"}})
	require.Len(t, out, 1)
	assert.Equal(t, types.CitationNotFound, out[0].Status)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLookupValidatorEmpty(t *testing.T) {
	v := NewLookupValidator(&fakeLookup{}, types.CitationConfig{})
	out := v.Validate(context.Background(), nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestHeuristicValidator(t *testing.T) {
	in := []types.Citation{
		{RawText: "[1] x"},
		{CleanedTitle: "Deep learning for protein folding", DOI: "10.1/a"},
		{CleanedTitle: "Deep learning for protein folding", URL: "https://example.org"},
		{CleanedTitle: "Deep learning for protein folding", Year: 2020},
		{CleanedTitle: "Deep learning for protein folding"},
	}
	out := HeuristicValidator{}.Validate(context.Background(), in)
	require.Len(t, out, 5)
	assert.Equal(t, types.CitationInvalidFormat, out[0].Status)
	assert.Equal(t, types.CitationValid, out[1].Status)
	assert.Equal(t, types.CitationPartialMatch, out[2].Status)
	assert.Equal(t, types.CitationPartialMatch, out[3].Status)
	assert.Equal(t, types.CitationNotFound, out[4].Status)
}

func TestNewValidatorSelectsBackend(t *testing.T) {
	assert.IsType(t, HeuristicValidator{}, NewValidator(types.CitationConfig{Backend: types.BackendHeuristic}, types.HTTPConfig{}))

	v, ok := NewValidator(types.CitationConfig{Backend: types.BackendCrossRef}, types.HTTPConfig{}).(*LookupValidator)
	require.True(t, ok)
	assert.Equal(t, "crossref", v.lookup.Name())

	v, ok = NewValidator(types.CitationConfig{Backend: types.BackendOpenAlex, Mailto: "me@example.org"}, types.HTTPConfig{}).(*LookupValidator)
	require.True(t, ok)
	assert.Equal(t, "openalex", v.lookup.Name())
	assert.Equal(t, "me@example.org", v.lookup.(*OpenAlexLookup).Mailto)

	v, ok = NewValidator(types.CitationConfig{}, types.HTTPConfig{}).(*LookupValidator)
	require.True(t, ok)
	assert.Equal(t, "semantic_scholar", v.lookup.Name())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		statuses  []types.CitationStatus
		wantRatio float64
		wantRec   string
	}{
		{"none", nil, 0, "No citations found. Consider adding references to support your claims."},
		{"no valid", []types.CitationStatus{types.CitationNotFound}, 0, "No valid citations found. Review reference formatting and accuracy."},
		{"under half", []types.CitationStatus{types.CitationValid, types.CitationNotFound, types.CitationInvalidFormat}, 1.0 / 3, "Less than 50% of citations are valid. Review and correct citation formatting."},
		{"most", []types.CitationStatus{types.CitationValid, types.CitationValid, types.CitationPartialMatch}, 2.0 / 3, "Most citations are valid, but some need correction."},
		{"all", []types.CitationStatus{types.CitationValid}, 1, "Citations appear to be well-formatted and accurate."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cits []types.Citation
			for _, s := range tt.statuses {
				cits = append(cits, types.Citation{Status: s})
			}
			s := Summarize(cits)
			assert.Equal(t, len(tt.statuses), s.Total)
			assert.Equal(t, s.Total, s.Valid+s.PartialMatch+s.NotFound+s.InvalidFormat)
			assert.InDelta(t, tt.wantRatio, s.ValidityRatio, 1e-9)
			assert.Equal(t, tt.wantRec, s.Recommendation)
		})
	}
}
