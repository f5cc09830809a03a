// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"regexp"
	"strconv"

	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/pkg/types"
)

var (
	// pValueRe matches "p < 0.05", "p=.001", "p ≤ 0.01".
	pValueRe = regexp.MustCompile(`\bp\s*[<>=≤≥]\s*0?\.\d+`)

	// sampleSizeRes extract integer sample sizes from lower-cased text.
	sampleSizeRes = []*regexp.Regexp{
		regexp.MustCompile(`\bn\s*=\s*(\d+)`),
		regexp.MustCompile(`\b(\d+)\s+(?:participants|subjects|respondents|patients|students|samples)\b`),
		regexp.MustCompile(`\bsample (?:size )?of\s+(\d+)`),
	}
)

// Sample-size adequacy bands.
const (
	smallSampleBelow = 30
	largeSampleAbove = 100
)

// Significance reporting credits, summing to 100.
const (
	testsCredit  = 40.0
	testsTarget  = 3.0
	pValueCredit = 25.0
	effectCredit = 20.0
	ciCredit     = 15.0
)

// StatisticalRigor scores significance reporting, sample size adequacy,
// and how many standard assumptions are named.
func StatisticalRigor(in Input) types.SubAnalysisReport {
	in = in.normalized()
	doc, lib := in.Doc, in.Library

	tests := patterns.Found(doc.Lower, lib.StatisticalTests)
	hasP := pValueRe.MatchString(doc.Lower) || patterns.CountAll(doc.Lower, lib.PValues) > 0
	effects := patterns.Found(doc.Lower, lib.EffectSizes)
	hasCI := patterns.CountAll(doc.Lower, lib.ConfidenceIntervals) > 0

	significance := testsCredit * min(1, float64(len(tests))/testsTarget)
	if hasP {
		significance += pValueCredit
	}
	if len(effects) > 0 {
		significance += effectCredit
	}
	if hasCI {
		significance += ciCredit
	}

	n := largestSampleSize(doc.Lower)
	adequacy, sampleScore := sampleAdequacy(n)

	assumptions := foundGroups(doc.Lower, lib.Assumptions)
	assumptionScore := 100 * ratio(len(assumptions), len(lib.Assumptions))

	metrics := map[string]any{
		"statistical_tests":        nonNil(tests),
		"has_p_values":             hasP,
		"effect_sizes":             nonNil(effects),
		"has_confidence_intervals": hasCI,
		"sample_size":              n,
		"sample_adequacy":          adequacy,
		"assumptions_checked":      nonNil(assumptions),
	}
	return newReport(types.CategoryStatisticalRigor, doc, metrics, map[string]float64{
		"significance_score": significance,
		"sample_size_score":  sampleScore,
		"assumptions_score":  assumptionScore,
	})
}

// largestSampleSize returns the largest sample size mentioned, or 0.
func largestSampleSize(lower string) int {
	largest := 0
	for _, re := range sampleSizeRes {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			if v, err := strconv.Atoi(m[1]); err == nil && v > largest {
				largest = v
			}
		}
	}
	return largest
}

// sampleAdequacy bands a sample size: none, small (<30), moderate
// (30-100), or large (>100).
func sampleAdequacy(n int) (string, float64) {
	switch {
	case n <= 0:
		return "none", 0
	case n < smallSampleBelow:
		return "small", 40
	case n <= largeSampleAbove:
		return "moderate", 70
	default:
		return "large", 100
	}
}
