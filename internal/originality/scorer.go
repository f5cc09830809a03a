// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package originality scores how much of a document is shared with a
// reference corpus (TF-IDF cosine similarity) and how much it repeats
// itself (recurring word n-grams).
package originality

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// Severity band edges on the combined score.
const (
	moderateFrom = 15.0
	highFrom     = 40.0
)

// Reference is one corpus document available for comparison.
type Reference struct {
	ID   string
	Text string
}

type refVector struct {
	id     string
	counts map[string]int

	// terms lists the keys of counts in sorted order so that floating-point
	// sums are accumulated identically on every run.
	terms []string
}

// Scorer compares documents against a fixed reference corpus. The corpus
// is tokenized once in NewScorer; Score is safe for concurrent use.
type Scorer struct {
	cfg  types.OriginalityConfig
	refs []refVector

	// df counts, per term, how many corpus documents contain it.
	df map[string]int
}

// NewScorer tokenizes the corpus. An empty corpus is valid and yields zero
// external similarity for every document.
func NewScorer(refs []Reference, cfg types.OriginalityConfig) *Scorer {
	def := types.DefaultConfig().Originality
	if cfg.NGramSize <= 0 {
		cfg.NGramSize = def.NGramSize
	}
	if cfg.ExternalWeight+cfg.InternalWeight <= 0 {
		cfg.ExternalWeight, cfg.InternalWeight = def.ExternalWeight, def.InternalWeight
	}
	s := &Scorer{cfg: cfg, df: make(map[string]int)}
	for _, r := range refs {
		counts := termCounts(strings.ToLower(r.Text))
		if len(counts) == 0 {
			continue
		}
		s.refs = append(s.refs, refVector{id: r.ID, counts: counts, terms: sortedTerms(counts)})
		for term := range counts {
			s.df[term]++
		}
	}
	return s
}

// CorpusSize returns the number of usable reference documents.
func (s *Scorer) CorpusSize() int { return len(s.refs) }

// Score computes the originality report for doc. It never fails: missing
// input or corpus degrade to zero signal.
func (s *Scorer) Score(doc *document.Document) types.OriginalityReport {
	rep := types.OriginalityReport{Matches: []types.SimilarityMatch{}}
	if doc == nil {
		doc = document.New("")
	}

	rep.CorpusSize = len(s.refs)
	rep.Matches = s.similarities(doc.Lower)
	if len(rep.Matches) > 0 {
		rep.ExternalSimilarity = score.FromRatio(rep.Matches[0].Similarity)
	}
	rep.Matches = filterMatches(rep.Matches, s.cfg.MatchThreshold)

	rep.InternalRepetition = score.FromRatio(Repetition(doc.Words, s.cfg.NGramSize))
	rep.CombinedScore = score.Clamp(s.cfg.ExternalWeight*rep.ExternalSimilarity + s.cfg.InternalWeight*rep.InternalRepetition)

	rep.Severity, rep.Message, rep.Recommendation = severity(rep.CombinedScore)
	return rep
}

// similarities returns the cosine similarity to every corpus document,
// sorted by descending similarity then ascending id.
func (s *Scorer) similarities(lower string) []types.SimilarityMatch {
	if len(s.refs) == 0 {
		return nil
	}
	input := termCounts(lower)
	if len(input) == 0 {
		return nil
	}

	n := float64(len(s.refs) + 1)
	idf := func(term string) float64 {
		df := s.df[term]
		if _, ok := input[term]; ok {
			df++
		}
		return math.Log((1+n)/(1+float64(df))) + 1
	}

	inWeights := make(map[string]float64, len(input))
	var inNorm float64
	for _, term := range sortedTerms(input) {
		w := float64(input[term]) * idf(term)
		inWeights[term] = w
		inNorm += w * w
	}
	inNorm = math.Sqrt(inNorm)

	matches := make([]types.SimilarityMatch, 0, len(s.refs))
	for _, ref := range s.refs {
		var dot, refNorm float64
		for _, term := range ref.terms {
			w := float64(ref.counts[term]) * idf(term)
			refNorm += w * w
			if iw, ok := inWeights[term]; ok {
				dot += iw * w
			}
		}
		sim := 0.0
		if inNorm > 0 && refNorm > 0 {
			sim = score.ClampRatio(dot / (inNorm * math.Sqrt(refNorm)))
		}
		matches = append(matches, types.SimilarityMatch{SourceID: ref.id, Similarity: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].SourceID < matches[j].SourceID
	})
	return matches
}

func filterMatches(all []types.SimilarityMatch, threshold float64) []types.SimilarityMatch {
	out := []types.SimilarityMatch{}
	for _, m := range all {
		if m.Similarity >= threshold && m.Similarity > 0 {
			out = append(out, m)
		}
	}
	return out
}

// Repetition returns the fraction of n-gram positions whose n-gram occurs
// more than once in words. Fewer than n words yields 0.
func Repetition(words []string, n int) float64 {
	if n <= 0 || len(words) < n {
		return 0
	}
	total := len(words) - n + 1
	counts := make(map[string]int, total)
	grams := make([]string, total)
	for i := 0; i < total; i++ {
		g := strings.Join(words[i:i+n], " ")
		grams[i] = g
		counts[g]++
	}
	repeated := 0
	for _, g := range grams {
		if counts[g] > 1 {
			repeated++
		}
	}
	return float64(repeated) / float64(total)
}

func severity(combined float64) (types.Severity, string, string) {
	switch {
	case combined < moderateFrom:
		return types.SeverityLow,
			"Low similarity detected. The document appears largely original.",
			"Continue following proper citation practices."
	case combined < highFrom:
		return types.SeverityModerate,
			"Moderate similarity detected. Some passages overlap with reference material or repeat internally.",
			"Review the matched sources and make sure borrowed ideas are cited and paraphrased."
	default:
		return types.SeverityHigh,
			"High similarity detected. Substantial overlap with reference material or heavy internal repetition.",
			"Rewrite overlapping passages in your own words and cite every source you draw on."
	}
}
