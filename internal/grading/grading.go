// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grading combines the critique, originality, and citation scores
// into one weighted overall score, a letter grade, and a ranked list of
// recommendations.
package grading

import (
	"sort"

	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// Input carries every score the aggregator weighs.
type Input struct {
	Critique    types.CritiqueReports
	Originality types.OriginalityReport

	// CitationValidityRatio is Valid/Total in [0,1], 0 without citations.
	CitationValidityRatio float64
}

// Aggregator grades an analysis with a fixed weight vector.
type Aggregator struct {
	weights   types.Weights
	threshold float64
}

// NewAggregator builds an Aggregator from cfg. All-zero weights fall back
// to types.DefaultWeights; a non-positive threshold falls back to the
// default.
func NewAggregator(cfg types.GradingConfig) *Aggregator {
	def := types.DefaultConfig().Grading
	if cfg.Weights.Sum() <= 0 {
		cfg.Weights = def.Weights
	}
	if cfg.RecommendationThreshold <= 0 {
		cfg.RecommendationThreshold = def.RecommendationThreshold
	}
	return &Aggregator{weights: cfg.Weights, threshold: cfg.RecommendationThreshold}
}

// Components returns the 0-100 score of every graded category.
// Originality is inverted so that higher always means better.
func Components(in Input) map[types.Category]float64 {
	c := in.Critique
	return map[types.Category]float64{
		types.CategoryWritingQuality:        score.Clamp(c.WritingQuality.Score),
		types.CategoryStatisticalRigor:      score.Clamp(c.StatisticalRigor.Score),
		types.CategoryCitationNetwork:       score.Clamp(c.CitationNetwork.Score),
		types.CategoryLiteraturePositioning: score.Clamp(c.LiteraturePositioning.Score),
		types.CategoryReproducibility:       score.Clamp(c.Reproducibility.Score),
		types.CategoryOriginality:           score.Clamp(100 - score.Clamp(in.Originality.CombinedScore)),
		types.CategoryCitationValidity:      score.FromRatio(in.CitationValidityRatio),
	}
}

// Grade computes the overall score as the weighted mean of the component
// scores and derives the letter grade, label, and recommendations.
func (a *Aggregator) Grade(in Input) types.GradeReport {
	components := Components(in)

	var total, weightSum float64
	for _, c := range types.Categories {
		w := a.weights.Of(c)
		if w <= 0 {
			continue
		}
		total += w * components[c]
		weightSum += w
	}
	overall := 0.0
	if weightSum > 0 {
		overall = score.Round2(score.Clamp(total / weightSum))
	}

	for c, v := range components {
		components[c] = score.Round2(v)
	}
	return types.GradeReport{
		OverallScore:    overall,
		LetterGrade:     LetterGrade(overall),
		CategoryLabel:   CategoryLabel(overall),
		Recommendations: a.recommendations(components),
		ComponentScores: components,
	}
}

// LetterGrade maps an overall score to its grade band:
// A+ >= 90, A >= 85, B+ >= 80, B >= 70, C+ >= 60, C >= 55, else F.
func LetterGrade(overall float64) types.LetterGrade {
	switch {
	case overall >= 90:
		return types.GradeAPlus
	case overall >= 85:
		return types.GradeA
	case overall >= 80:
		return types.GradeBPlus
	case overall >= 70:
		return types.GradeB
	case overall >= 60:
		return types.GradeCPlus
	case overall >= 55:
		return types.GradeC
	default:
		return types.GradeF
	}
}

// CategoryLabel describes how close the paper is to publication.
func CategoryLabel(overall float64) string {
	switch {
	case overall >= 85:
		return "Publication Ready"
	case overall >= 70:
		return "Minor Revisions"
	case overall >= 55:
		return "Major Revisions"
	default:
		return "Not Ready"
	}
}

// positiveNote is emitted when no category falls below the threshold.
const positiveNote = "The paper appears to follow good academic practices."

var advice = map[types.Category]string{
	types.CategoryWritingQuality:        "Strengthen the paper's structure: include all standard sections, link arguments with connectors, back claims with citations, and make the abstract state background, objective, methods, results, and conclusion.",
	types.CategoryStatisticalRigor:      "Report statistical tests with p-values, effect sizes, and confidence intervals, state the sample size, and check the assumptions of each test.",
	types.CategoryCitationNetwork:       "Cite more and more recent sources, and reference your tables, figures, and sections from the text.",
	types.CategoryLiteraturePositioning: "Position the work against the literature: name the specific research gap, state the contribution explicitly, and outline future work.",
	types.CategoryReproducibility:       "Improve reproducibility: share data and code, discuss limitations and ethics, and use one consistent reference format.",
	types.CategoryOriginality:           "Reduce overlap with existing sources and repeated passages; paraphrase and cite where text is reused.",
	types.CategoryCitationValidity:      "Review the reference list: several entries could not be matched to a published work.",
}

// recommendations lists one piece of advice per category scoring below
// the threshold, worst first. Ties keep the category order.
func (a *Aggregator) recommendations(components map[types.Category]float64) []string {
	var low []types.Category
	for _, c := range types.Categories {
		if components[c] < a.threshold {
			low = append(low, c)
		}
	}
	if len(low) == 0 {
		return []string{positiveNote}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return components[low[i]] < components[low[j]]
	})

	recs := make([]string, 0, len(low))
	for _, c := range low {
		recs = append(recs, advice[c])
	}
	return recs
}
