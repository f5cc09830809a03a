// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const samplePaper = `Measuring Attention Drift in Long Documents

Abstract
We study how attention drifts. Results show a clear effect.

1. Introduction
Attention models are widely used (Smith, 2020). However, drift is poorly understood.

## Methods
We recruited 40 participants, e.g. students, and ran a t-test.

RESULTS
The effect was significant et al. noted similar trends.

5 Discussion and Conclusion
Future work will extend this.

References
[1] Smith, J. (2020). Attention drift. Journal of Things.
`

func TestNewCachesArtifacts(t *testing.T) {
	d := New(samplePaper)

	assert.Greater(t, d.WordCount(), 40)
	assert.Equal(t, "measuring", d.Words[0])
	assert.Equal(t, "Measuring Attention Drift in Long Documents", d.Title())
	assert.False(t, d.IsEmpty())

	stats := d.Stats()
	assert.Equal(t, d.WordCount(), stats.WordCount)
	assert.Equal(t, len(d.Sentences), stats.SentenceCount)
}

func TestHeadings(t *testing.T) {
	d := New(samplePaper)

	tests := []struct {
		name     string
		variants []string
		want     bool
	}{
		{"numbered heading", []string{"introduction"}, true},
		{"markdown heading", []string{"methods"}, true},
		{"upper case heading", []string{"results"}, true},
		{"heading prefix", []string{"discussion"}, true},
		{"absent heading", []string{"appendix"}, false},
		{"body words are not headings", []string{"attention models are widely used"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.HasSection(tt.variants))
		})
	}
}

func TestAbstract(t *testing.T) {
	t.Run("heading delimited", func(t *testing.T) {
		d := New(samplePaper)
		assert.Equal(t, "We study how attention drifts. Results show a clear effect.", d.Abstract(300))
	})

	t.Run("inline label", func(t *testing.T) {
		d := New("Title Line Here Ok\nAbstract: We examine things.\nMore abstract text.\n\nIntroduction\nBody.")
		assert.Equal(t, "We examine things.\nMore abstract text.", d.Abstract(300))
	})

	t.Run("falls back to leading words", func(t *testing.T) {
		d := New(strings.Repeat("word ", 50))
		assert.Len(t, strings.Fields(d.Abstract(10)), 10)
	})

	t.Run("empty document", func(t *testing.T) {
		assert.Equal(t, "", New("").Abstract(300))
	})
}

func TestTitleLengthBounds(t *testing.T) {
	tests := []struct {
		name  string
		first string
		want  string
	}{
		{"ten characters", "Ten chars!", "Ten chars!"},
		{"nine characters", "Nine char", "Fallback Title Line"},
		{"two hundred characters", strings.Repeat("a", 200), strings.Repeat("a", 200)},
		{"two hundred one characters", strings.Repeat("a", 201), "Fallback Title Line"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := New(tc.first + "\nFallback Title Line\nBody text follows.")
			assert.Equal(t, tc.want, d.Title())
		})
	}
}

func TestSentencesProtectAbbreviations(t *testing.T) {
	d := New("Prior work (Lee et al. 2019) is relevant. See Fig. 2 for details! Done?")
	assert.Equal(t, []string{
		"Prior work (Lee et al. 2019) is relevant",
		"See Fig. 2 for details",
	}, d.Sentences)
}

func TestEmptyDocument(t *testing.T) {
	d := New("")
	assert.True(t, d.IsEmpty())
	assert.Empty(t, d.Sentences)
	assert.Equal(t, "", d.Title())
	assert.False(t, d.HasSection([]string{"introduction"}))
}
