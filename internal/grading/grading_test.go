// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-critic/pkg/types"
)

func uniformInput(s float64) Input {
	r := types.SubAnalysisReport{Score: s}
	return Input{
		Critique: types.CritiqueReports{
			WritingQuality:        r,
			StatisticalRigor:      r,
			CitationNetwork:       r,
			LiteraturePositioning: r,
			Reproducibility:       r,
		},
		Originality:           types.OriginalityReport{CombinedScore: 100 - s},
		CitationValidityRatio: s / 100,
	}
}

func TestGradeUniformScores(t *testing.T) {
	agg := NewAggregator(types.DefaultConfig().Grading)

	g := agg.Grade(uniformInput(75))
	assert.InDelta(t, 75, g.OverallScore, 1e-9)
	assert.Equal(t, types.GradeB, g.LetterGrade)
	assert.Equal(t, "Minor Revisions", g.CategoryLabel)
	assert.Equal(t, []string{positiveNote}, g.Recommendations)
	assert.Len(t, g.ComponentScores, len(types.Categories))
}

func TestGradeAllZero(t *testing.T) {
	g := NewAggregator(types.GradingConfig{}).Grade(Input{Originality: types.OriginalityReport{CombinedScore: 100}})
	assert.Zero(t, g.OverallScore)
	assert.Equal(t, types.GradeF, g.LetterGrade)
	assert.Equal(t, "Not Ready", g.CategoryLabel)
	assert.Len(t, g.Recommendations, len(types.Categories))
}

func TestGradeClampsOutOfRangeInputs(t *testing.T) {
	in := uniformInput(150)
	in.Originality.CombinedScore = -20
	in.CitationValidityRatio = 3
	g := NewAggregator(types.GradingConfig{}).Grade(in)
	assert.Equal(t, 100.0, g.OverallScore)
	for c, v := range g.ComponentScores {
		assert.True(t, v >= 0 && v <= 100, "%s = %v", c, v)
	}
}

func TestGradeMonotonic(t *testing.T) {
	agg := NewAggregator(types.DefaultConfig().Grading)
	base := uniformInput(50)
	before := agg.Grade(base).OverallScore

	for _, bump := range []func(*Input){
		func(in *Input) { in.Critique.WritingQuality.Score = 90 },
		func(in *Input) { in.Critique.StatisticalRigor.Score = 90 },
		func(in *Input) { in.Critique.CitationNetwork.Score = 90 },
		func(in *Input) { in.Critique.LiteraturePositioning.Score = 90 },
		func(in *Input) { in.Critique.Reproducibility.Score = 90 },
		func(in *Input) { in.Originality.CombinedScore = 10 },
		func(in *Input) { in.CitationValidityRatio = 0.9 },
	} {
		in := base
		bump(&in)
		assert.Greater(t, agg.Grade(in).OverallScore, before)
	}
}

func TestGradeWeights(t *testing.T) {
	in := uniformInput(0)
	in.Critique.WritingQuality.Score = 100
	g := NewAggregator(types.DefaultConfig().Grading).Grade(in)
	assert.InDelta(t, 100*types.DefaultWeights.WritingQuality, g.OverallScore, 1e-9)
}

func TestRecommendationsWorstFirst(t *testing.T) {
	in := uniformInput(90)
	in.Critique.Reproducibility.Score = 20
	in.Critique.StatisticalRigor.Score = 40
	in.Critique.CitationNetwork.Score = 40
	in.CitationValidityRatio = 0.1

	g := NewAggregator(types.DefaultConfig().Grading).Grade(in)
	require.Len(t, g.Recommendations, 4)
	assert.Equal(t, advice[types.CategoryCitationValidity], g.Recommendations[0])
	assert.Equal(t, advice[types.CategoryReproducibility], g.Recommendations[1])
	assert.Equal(t, advice[types.CategoryStatisticalRigor], g.Recommendations[2])
	assert.Equal(t, advice[types.CategoryCitationNetwork], g.Recommendations[3])
}

func TestGradeIsDeterministic(t *testing.T) {
	agg := NewAggregator(types.DefaultConfig().Grading)
	in := uniformInput(63.3)
	in.Critique.Reproducibility.Score = 12
	assert.Equal(t, agg.Grade(in), agg.Grade(in))
}

func TestLetterGradeBands(t *testing.T) {
	tests := []struct {
		score float64
		want  types.LetterGrade
	}{
		{100, types.GradeAPlus},
		{90, types.GradeAPlus},
		{89.99, types.GradeA},
		{85, types.GradeA},
		{84.99, types.GradeBPlus},
		{80, types.GradeBPlus},
		{79.99, types.GradeB},
		{70, types.GradeB},
		{69.99, types.GradeCPlus},
		{60, types.GradeCPlus},
		{59.99, types.GradeC},
		{55, types.GradeC},
		{54.99, types.GradeF},
		{0, types.GradeF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LetterGrade(tt.score), "score %v", tt.score)
	}
}

func TestCategoryLabelBands(t *testing.T) {
	assert.Equal(t, "Publication Ready", CategoryLabel(85))
	assert.Equal(t, "Minor Revisions", CategoryLabel(70))
	assert.Equal(t, "Major Revisions", CategoryLabel(55))
	assert.Equal(t, "Not Ready", CategoryLabel(54.99))
}
