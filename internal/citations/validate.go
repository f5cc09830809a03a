// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// Overlap thresholds for classifying lookup candidates.
const (
	strongOverlap  = 0.8
	partialOverlap = 0.3
)

// Validator assigns a Status to each citation. The returned slice has the
// same length and order as the input.
type Validator interface {
	Validate(ctx context.Context, cits []types.Citation) []types.Citation
}

// Query is what a Lookup receives for one citation.
type Query struct {
	Title  string
	Tokens []string
	Year   int
	DOI    string
}

// Text returns the free-text search string for q.
func (q Query) Text() string {
	if q.Title != "" {
		return q.Title
	}
	return strings.Join(q.Tokens, " ")
}

// Candidate is one bibliographic record returned by a Lookup.
type Candidate struct {
	Title string
	Year  int
	DOI   string
}

// Lookup searches an external bibliographic index.
type Lookup interface {
	Name() string
	Search(ctx context.Context, q Query) ([]Candidate, error)
}

// LookupValidator resolves citations through a Lookup with bounded
// concurrency, a per-call timeout, and optional request pacing.
type LookupValidator struct {
	lookup      Lookup
	concurrency int
	callTimeout time.Duration
	limiter     *rate.Limiter
}

// NewLookupValidator wraps lookup using the concurrency, timeout, and rate
// settings in cfg. Zero values fall back to the defaults.
func NewLookupValidator(lookup Lookup, cfg types.CitationConfig) *LookupValidator {
	def := types.DefaultConfig().Citations
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	v := &LookupValidator{
		lookup:      lookup,
		concurrency: cfg.Concurrency,
		callTimeout: cfg.CallTimeout,
	}
	if cfg.RequestsPerSecond > 0 {
		v.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return v
}

// NewValidator builds the Validator selected by cfg.Backend. An empty
// backend means Semantic Scholar; an unknown one gets the offline
// heuristic validator.
func NewValidator(cfg types.CitationConfig, httpCfg types.HTTPConfig) Validator {
	client := &http.Client{Timeout: httpCfg.Timeout}
	switch cfg.Backend {
	case types.BackendSemanticScholar, "":
		return NewLookupValidator(&SemanticScholarLookup{
			Client:    client,
			APIKey:    cfg.SemanticScholarAPIKey,
			UserAgent: httpCfg.UserAgent,
		}, cfg)
	case types.BackendCrossRef:
		return NewLookupValidator(&CrossRefLookup{
			Client:    client,
			Mailto:    cfg.Mailto,
			UserAgent: httpCfg.UserAgent,
		}, cfg)
	case types.BackendOpenAlex:
		return NewLookupValidator(&OpenAlexLookup{
			Client:    client,
			Mailto:    cfg.Mailto,
			UserAgent: httpCfg.UserAgent,
		}, cfg)
	default:
		return HeuristicValidator{}
	}
}

// Validate resolves every citation. Lookup failures mark the affected
// citation NotFound and never abort the batch.
func (v *LookupValidator) Validate(ctx context.Context, cits []types.Citation) []types.Citation {
	if len(cits) == 0 {
		return []types.Citation{}
	}
	mapper := iter.Mapper[types.Citation, types.Citation]{MaxGoroutines: v.concurrency}
	return mapper.Map(cits, func(c *types.Citation) types.Citation {
		return v.validateOne(ctx, *c)
	})
}

func (v *LookupValidator) validateOne(ctx context.Context, c types.Citation) types.Citation {
	tokens := SearchTokens(c)
	if len(tokens) < minSearchTokens {
		c.Status = types.CitationInvalidFormat
		return c
	}

	logger := zerolog.Ctx(ctx).With().
		Str("lookup", v.lookup.Name()).
		Str("citation", truncate(c.RawText, 80)).
		Logger()

	callCtx, cancel := context.WithTimeout(ctx, v.callTimeout)
	defer cancel()

	if v.limiter != nil {
		if err := v.limiter.Wait(callCtx); err != nil {
			logger.Warn().Err(err).Msg("citation lookup not attempted")
			c.Status = types.CitationNotFound
			return c
		}
	}

	cands, err := v.lookup.Search(callCtx, Query{
		Title:  c.CleanedTitle,
		Tokens: tokens,
		Year:   c.Year,
		DOI:    c.DOI,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("citation lookup failed")
		c.Status = types.CitationNotFound
		return c
	}

	classify(&c, cands, v.lookup.Name())
	logger.Debug().Str("status", string(c.Status)).Int("candidates", len(cands)).Msg("citation resolved")
	return c
}

// classify sets c.Status and c.Match from the lookup candidates. A single
// strong candidate is Valid. Several strong candidates are Valid only when
// they agree on DOI or title. A weaker best candidate is a PartialMatch.
func classify(c *types.Citation, cands []Candidate, source string) {
	title := c.CleanedTitle
	if title == "" {
		title = strings.Join(SearchTokens(*c), " ")
	}

	var strong []Candidate
	best := -1
	bestOverlap := 0.0
	for i, cand := range cands {
		ov := titleOverlap(title, cand.Title)
		if c.DOI != "" && cand.DOI != "" && strings.EqualFold(c.DOI, cand.DOI) {
			ov = 1
		}
		if ov >= strongOverlap {
			strong = append(strong, cand)
		}
		if ov > bestOverlap {
			best, bestOverlap = i, ov
		}
	}

	switch {
	case len(strong) == 1 || (len(strong) > 1 && agree(strong)):
		c.Status = types.CitationValid
	case len(strong) > 1, bestOverlap >= partialOverlap:
		c.Status = types.CitationPartialMatch
	default:
		c.Status = types.CitationNotFound
		return
	}

	m := cands[best]
	c.Match = &types.CitationMatch{
		Title:   m.Title,
		Year:    m.Year,
		DOI:     m.DOI,
		Source:  source,
		Overlap: bestOverlap,
	}
	if c.Status == types.CitationValid && c.DOI == "" {
		c.DOI = m.DOI
	}
}

// agree reports whether all candidates share a DOI or a normalized title.
func agree(cands []Candidate) bool {
	sameDOI, sameTitle := true, true
	first := cands[0]
	for _, c := range cands[1:] {
		if first.DOI == "" || !strings.EqualFold(first.DOI, c.DOI) {
			sameDOI = false
		}
		if normalizeTitle(first.Title) != normalizeTitle(c.Title) {
			sameTitle = false
		}
	}
	return sameDOI || sameTitle
}

// titleOverlap is |A∩B| / max(|A|,|B|) over the distinct lowercase words
// of the two titles.
func titleOverlap(a, b string) float64 {
	wa, wb := titleWords(a), titleWords(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	shared := 0
	for w := range wa {
		if wb[w] {
			shared++
		}
	}
	return float64(shared) / float64(max(len(wa), len(wb)))
}

func titleWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[f] = true
	}
	return words
}

func normalizeTitle(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
