// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

func input(text string) Input {
	return Input{
		Doc:                document.New(text),
		Library:            patterns.Default(),
		Now:                time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		RecencyWindowYears: 5,
		AbstractWords:      300,
	}
}

func TestEmptyDocumentIsInsufficient(t *testing.T) {
	reports := Run(input(""))
	for _, r := range reports.All() {
		assert.Equal(t, types.AssessmentInsufficient, r.Assessment, r.Category)
		assert.Zero(t, r.Score, r.Category)
	}
}

func TestZeroValueInput(t *testing.T) {
	require.NotPanics(t, func() {
		for _, r := range Run(Input{}).All() {
			assert.Zero(t, r.Score)
		}
	})
}

func TestScoresStayInRange(t *testing.T) {
	text := strings.Repeat("Clearly, obviously, certainly this proves everything [1]. ", 50)
	for cat, analyze := range Analyzers {
		r := analyze(input(text))
		assert.Equal(t, cat, r.Category)
		assert.True(t, score.InRange(r.Score), "%s score %v", cat, r.Score)
		for name, v := range r.SubScores {
			assert.True(t, score.InRange(v), "%s %s = %v", cat, name, v)
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	in := input(samplePaper)
	in.Citations = []types.Citation{{Year: 2024, Format: types.FormatNumbered}}
	assert.Equal(t, Run(in), Run(in))
}

const samplePaper = `A Study of Careful Writing

Abstract
Deep learning has been widely applied to text. This study aims to measure writing quality.
We used a survey of 120 participants. Results show that structure matters.
We conclude that these findings generalize.

1. Introduction
Therefore, the effect is robust [1]. However, prior work disagrees (Smith, 2020).

2. Methods
We ran a t-test.

3. Results
Moreover, results replicate [2].

4. Discussion
The data agree.

5. Conclusion
We are done.
`

func TestWritingQualityStructure(t *testing.T) {
	r := WritingQuality(input(samplePaper))
	assert.Equal(t, 100.0, r.SubScores["structure_score"])
	assert.Equal(t, []string{}, r.Metrics["sections_missing"])

	r = WritingQuality(input("Introduction\nSome words here.\n\nResults\nMore words here."))
	assert.Equal(t, 40.0, r.SubScores["structure_score"])
}

func TestWritingQualityArgumentFlow(t *testing.T) {
	r := WritingQuality(input("Therefore, the effect is robust [1]. However, prior work disagrees (Smith, 2020). Moreover, results replicate [2]."))
	assert.Equal(t, 100.0, r.SubScores["argument_flow_score"])
	assert.Equal(t, 3, r.Metrics["connector_variety"])

	r = WritingQuality(input("The cat sat on a mat. The dog ran far away."))
	assert.Zero(t, r.SubScores["argument_flow_score"])
}

func TestWritingQualityLongAbstract(t *testing.T) {
	abstract := "Deep learning has been widely applied to text. This study aims to measure writing quality. " +
		"We used a survey of 120 participants. Results show that structure matters. " +
		"We conclude that these findings generalize. " +
		strings.Repeat("The model performs well on the benchmark corpus. ", 30)
	text := "Abstract\n" + abstract + "\n\nIntroduction\nBody text follows here."

	r := WritingQuality(input(text))
	assert.GreaterOrEqual(t, r.SubScores["abstract_quality_score"], 80.0)
}

func TestWritingQualityBiasMetrics(t *testing.T) {
	r := WritingQuality(input("Clearly this is obviously true and certainly definitely right."))
	assert.Equal(t, types.SeverityHigh, r.Metrics["bias_severity"])
	assert.Equal(t, 40.0, r.Metrics["objectivity_score"])
	assert.Equal(t, "Easy to read", r.Metrics["readability"])
}

func TestStatisticalRigor(t *testing.T) {
	text := "We ran a t-test and an ANOVA with regression analysis (p < 0.05). " +
		"The effect size was large, with a 95% CI reported. " +
		"A total of 150 participants (n = 150) took part. " +
		"Normality was checked with Shapiro-Wilk and homogeneity with Levene's test."
	r := StatisticalRigor(input(text))

	assert.Equal(t, 100.0, r.SubScores["significance_score"])
	assert.Equal(t, 100.0, r.SubScores["sample_size_score"])
	assert.Equal(t, 40.0, r.SubScores["assumptions_score"])
	assert.Equal(t, 80.0, r.Score)
	assert.Equal(t, types.AssessmentExcellent, r.Assessment)
	assert.Equal(t, 150, r.Metrics["sample_size"])
}

func TestSampleAdequacy(t *testing.T) {
	tests := []struct {
		text      string
		wantN     int
		wantLabel string
		wantScore float64
	}{
		{"no numbers at all", 0, "none", 0},
		{"we recruited 12 participants", 12, "small", 40},
		{"a sample of 30 was drawn", 30, "moderate", 70},
		{"n = 100 and n=20", 100, "moderate", 70},
		{"a sample size of 2500", 2500, "large", 100},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n := largestSampleSize(tt.text)
			assert.Equal(t, tt.wantN, n)
			label, s := sampleAdequacy(n)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantScore, s)
		})
	}
}

func TestCitationNetwork(t *testing.T) {
	text := strings.Repeat("word ", 400) + "See Table 1 and Figure 2 and Section 3."
	in := input(text)
	in.Citations = []types.Citation{{Year: 2024}, {Year: 2022}, {Year: 2010}, {}}

	r := CitationNetwork(in)
	assert.Equal(t, 100.0, r.SubScores["recency_score"])
	assert.Equal(t, 30.0, r.SubScores["cross_reference_score"])
	assert.Equal(t, 3, r.Metrics["cross_references"])
	assert.Equal(t, 2, r.Metrics["recent_citations"])

	density := 4 / (float64(in.Doc.WordCount()) / 1000)
	assert.InDelta(t, score.Round2(score.Saturate(density, densityTarget)), r.SubScores["citation_density_score"], 1e-9)

	assert.Equal(t, types.AssessmentExcellent, r.Metrics["recency_assessment"])
	assert.Equal(t, types.AssessmentPoor, r.Metrics["cross_reference_assessment"])
	assert.Equal(t, score.Label(r.SubScores["citation_density_score"]), r.Metrics["citation_density_assessment"])
}

func TestCitationNetworkSubScoreLabels(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want types.Assessment
	}{
		{"no citations", input("See Table 1 for details."), types.AssessmentPoor},
		{"empty document", input(""), types.AssessmentInsufficient},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := CitationNetwork(tc.in)
			for _, key := range []string{"citation_density_assessment", "recency_assessment", "cross_reference_assessment"} {
				assert.Equal(t, tc.want, r.Metrics[key], key)
			}
		})
	}
}

func TestCitationNetworkWithoutCitations(t *testing.T) {
	r := CitationNetwork(input("See Table 1 and Figure 2 and Appendix B for details."))
	assert.Zero(t, r.Score)
	assert.Equal(t, types.AssessmentPoor, r.Assessment)
	for name, v := range r.SubScores {
		assert.Zero(t, v, name)
	}
	assert.Equal(t, 3, r.Metrics["cross_references"])
}

func TestLiteraturePositioning(t *testing.T) {
	text := "There is limited research on transformer-based summarization. This remains unclear. " +
		"We propose a novel method. Future work will explore this."
	r := LiteraturePositioning(input(text))

	assert.Equal(t, 2, r.Metrics["gap_mentions"])
	assert.Equal(t, 1, r.Metrics["specific_gaps"])
	assert.Equal(t, 50.0, r.SubScores["gap_identification_score"])
	assert.Equal(t, 40.0, r.SubScores["novelty_score"])
	assert.Equal(t, 33.33, r.SubScores["future_work_score"])
}

func TestIsTechnicalTerm(t *testing.T) {
	for _, w := range []string{"NLP", "CNNs", "transformer-based", "classification", "epidemiology"} {
		assert.True(t, isTechnicalTerm(w), w)
	}
	for _, w := range []string{"", "the", "method", "-", "nation"} {
		assert.False(t, isTechnicalTerm(w), w)
	}
}

func TestReproducibility(t *testing.T) {
	text := "Code is available on github.com/x/y. Data are available at zenodo. " +
		"We discuss limitations and ethical approval (IRB). Funding was provided. " +
		"Conflict of interest: none."
	in := input(text)
	in.Citations = []types.Citation{
		{Format: types.FormatNumbered},
		{Format: types.FormatNumbered},
		{Format: types.FormatAuthorYear},
	}
	r := Reproducibility(in)

	assert.Equal(t, 100.0, r.SubScores["reproducibility_score"])
	assert.Equal(t, 100.0, r.SubScores["peer_review_score"])
	assert.Equal(t, 66.67, r.SubScores["format_consistency_score"])
	assert.Equal(t, "numbered", r.Metrics["dominant_citation_format"])
	assert.Equal(t, true, r.Metrics["ethics_addressed"])
}

func TestReproducibilityWithoutCitations(t *testing.T) {
	r := Reproducibility(input("Nothing here mentions availability."))
	assert.Zero(t, r.SubScores["format_consistency_score"])
}
