// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score holds the clamping, scaling, and banding rules shared by
// every scoring stage.
package score

import (
	"math"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// Label band edges. A score maps to the first band whose lower edge it
// reaches: [0,40) Poor, [40,60) Fair, [60,80) Good, [80,100] Excellent.
const (
	FairFrom      = 40.0
	GoodFrom      = 60.0
	ExcellentFrom = 80.0
)

// Clamp limits v to [0,100]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

// ClampRatio limits v to [0,1]. NaN becomes 0.
func ClampRatio(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// InRange reports whether v is a valid score.
func InRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}

// FromRatio scales a ratio to a score, clamping the ratio first.
func FromRatio(r float64) float64 {
	return Clamp(100 * ClampRatio(r))
}

// Saturate scales a count to 0-100, reaching 100 at limit.
func Saturate(count, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return FromRatio(count / limit)
}

// Mean averages the values and clamps the result. No values yields 0.
func Mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += Clamp(v)
	}
	return Clamp(sum / float64(len(values)))
}

// Label maps a score to its assessment band.
func Label(v float64) types.Assessment {
	v = Clamp(v)
	switch {
	case v >= ExcellentFrom:
		return types.AssessmentExcellent
	case v >= GoodFrom:
		return types.AssessmentGood
	case v >= FairFrom:
		return types.AssessmentFair
	default:
		return types.AssessmentPoor
	}
}

// Round2 rounds to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
