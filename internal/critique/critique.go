// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package critique implements the five heuristic analyzers that score a
// paper's writing, statistics, citation network, literature positioning,
// and reproducibility. Each analyzer is a pure function of its Input and
// shares nothing with the others, so they can run concurrently.
package critique

import (
	"sort"
	"time"

	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// Input is everything an analyzer may read. None of it is modified.
type Input struct {
	Doc       *document.Document
	Citations []types.Citation
	Library   *patterns.Library

	// Now anchors the citation recency window.
	Now time.Time

	RecencyWindowYears int

	// AbstractWords is how many leading words stand in for a missing
	// abstract section.
	AbstractWords int
}

// Analyzer scores one category.
type Analyzer func(Input) types.SubAnalysisReport

// Analyzers maps each critique category to its analyzer.
var Analyzers = map[types.Category]Analyzer{
	types.CategoryWritingQuality:        WritingQuality,
	types.CategoryStatisticalRigor:      StatisticalRigor,
	types.CategoryCitationNetwork:       CitationNetwork,
	types.CategoryLiteraturePositioning: LiteraturePositioning,
	types.CategoryReproducibility:       Reproducibility,
}

// Run executes all five analyzers sequentially.
func Run(in Input) types.CritiqueReports {
	return types.CritiqueReports{
		WritingQuality:        WritingQuality(in),
		StatisticalRigor:      StatisticalRigor(in),
		CitationNetwork:       CitationNetwork(in),
		LiteraturePositioning: LiteraturePositioning(in),
		Reproducibility:       Reproducibility(in),
	}
}

// normalized fills defaults so analyzers never see a nil document or
// library.
func (in Input) normalized() Input {
	if in.Doc == nil {
		in.Doc = document.New("")
	}
	if in.Library == nil {
		in.Library = &patterns.Library{}
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	def := types.DefaultConfig().Critique
	if in.RecencyWindowYears <= 0 {
		in.RecencyWindowYears = def.RecencyWindowYears
	}
	if in.AbstractWords <= 0 {
		in.AbstractWords = def.AbstractWords
	}
	return in
}

// newReport clamps the sub-scores, averages them into the category score,
// and attaches the label. An empty document is labeled Insufficient Data.
func newReport(c types.Category, doc *document.Document, metrics map[string]any, subs map[string]float64) types.SubAnalysisReport {
	values := make([]float64, 0, len(subs))
	for _, k := range sortedKeys(subs) {
		subs[k] = score.Round2(score.Clamp(subs[k]))
		values = append(values, subs[k])
	}
	r := types.SubAnalysisReport{
		Category:  c,
		Metrics:   metrics,
		SubScores: subs,
		Score:     score.Round2(score.Mean(values...)),
	}
	if doc.IsEmpty() {
		r.Score = 0
		r.Assessment = types.AssessmentInsufficient
		return r
	}
	r.Assessment = score.Label(r.Score)
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// foundGroups returns the sorted names of groups with at least one phrase
// present in lower.
func foundGroups(lower string, groups map[string][]string) []string {
	var found []string
	for _, name := range sortedKeys(groups) {
		for _, p := range groups[name] {
			if patterns.Contains(lower, p) {
				found = append(found, name)
				break
			}
		}
	}
	return found
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / float64(d)
}
