// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Category identifies one scored dimension of the assessment.
type Category string

const (
	CategoryWritingQuality        Category = "writing_quality"
	CategoryStatisticalRigor      Category = "statistical_rigor"
	CategoryCitationNetwork       Category = "citation_network"
	CategoryLiteraturePositioning Category = "literature_positioning"
	CategoryReproducibility       Category = "reproducibility"
	CategoryOriginality           Category = "originality"
	CategoryCitationValidity      Category = "citation_validity"
)

// Categories lists every graded category in report order.
var Categories = []Category{
	CategoryWritingQuality,
	CategoryStatisticalRigor,
	CategoryCitationNetwork,
	CategoryLiteraturePositioning,
	CategoryReproducibility,
	CategoryOriginality,
	CategoryCitationValidity,
}

// Assessment is the label attached to a 0-100 score.
type Assessment string

const (
	AssessmentPoor         Assessment = "Poor"
	AssessmentFair         Assessment = "Fair"
	AssessmentGood         Assessment = "Good"
	AssessmentExcellent    Assessment = "Excellent"
	AssessmentInsufficient Assessment = "Insufficient Data"
)

// Severity grades how serious an originality or bias finding is.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
)

// SimilarityMatch is one corpus document whose cosine similarity to the
// analyzed document reached the reporting threshold.
type SimilarityMatch struct {
	SourceID   string  `json:"source_id" yaml:"source_id"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// OriginalityReport holds corpus similarity and internal repetition.
// Higher values mean less original text.
type OriginalityReport struct {
	ExternalSimilarity float64           `json:"external_similarity" yaml:"external_similarity"`
	InternalRepetition float64           `json:"internal_repetition" yaml:"internal_repetition"`
	CombinedScore      float64           `json:"combined_score" yaml:"combined_score"`
	Matches            []SimilarityMatch `json:"matches" yaml:"matches"`

	// CorpusSize is the number of reference documents compared against.
	CorpusSize int `json:"corpus_size" yaml:"corpus_size"`

	Severity       Severity `json:"severity" yaml:"severity"`
	Message        string   `json:"message" yaml:"message"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// SubAnalysisReport is one critique category's findings.
type SubAnalysisReport struct {
	Category Category `json:"category" yaml:"category"`

	// Metrics holds named numeric, boolean, string, or list features.
	Metrics map[string]any `json:"metrics" yaml:"metrics"`

	// SubScores holds the component scores averaged into Score.
	SubScores map[string]float64 `json:"sub_scores" yaml:"sub_scores"`

	Score      float64    `json:"score" yaml:"score"`
	Assessment Assessment `json:"assessment_label" yaml:"assessment_label"`
}

// CritiqueReports groups the five category reports under stable names.
type CritiqueReports struct {
	WritingQuality        SubAnalysisReport `json:"writing_quality" yaml:"writing_quality"`
	StatisticalRigor      SubAnalysisReport `json:"statistical_rigor" yaml:"statistical_rigor"`
	CitationNetwork       SubAnalysisReport `json:"citation_network" yaml:"citation_network"`
	LiteraturePositioning SubAnalysisReport `json:"literature_positioning" yaml:"literature_positioning"`
	Reproducibility       SubAnalysisReport `json:"reproducibility" yaml:"reproducibility"`
}

// All returns the five reports in category order.
func (c CritiqueReports) All() []SubAnalysisReport {
	return []SubAnalysisReport{
		c.WritingQuality,
		c.StatisticalRigor,
		c.CitationNetwork,
		c.LiteraturePositioning,
		c.Reproducibility,
	}
}

// LetterGrade is the final grade band.
type LetterGrade string

const (
	GradeAPlus LetterGrade = "A+"
	GradeA     LetterGrade = "A"
	GradeBPlus LetterGrade = "B+"
	GradeB     LetterGrade = "B"
	GradeCPlus LetterGrade = "C+"
	GradeC     LetterGrade = "C"
	GradeF     LetterGrade = "F"
)

// GradeReport is the aggregated result of one analysis.
type GradeReport struct {
	OverallScore    float64              `json:"overall_score" yaml:"overall_score"`
	LetterGrade     LetterGrade          `json:"letter_grade" yaml:"letter_grade"`
	CategoryLabel   string               `json:"category_label" yaml:"category_label"`
	Recommendations []string             `json:"recommendations" yaml:"recommendations"`
	ComponentScores map[Category]float64 `json:"component_scores" yaml:"component_scores"`
}

// DocumentStats describes the analyzed text itself.
type DocumentStats struct {
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	WordCount     int    `json:"word_count" yaml:"word_count"`
	SentenceCount int    `json:"sentence_count" yaml:"sentence_count"`
	CharCount     int    `json:"char_count" yaml:"char_count"`
}

// AnalysisReport is the composite result handed to callers. Field names
// and nesting are part of the output contract.
type AnalysisReport struct {
	ID              string            `json:"id" yaml:"id"`
	Source          string            `json:"source,omitempty" yaml:"source,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at" yaml:"generated_at"`
	Summary         string            `json:"summary" yaml:"summary"`
	Stats           DocumentStats     `json:"stats" yaml:"stats"`
	Originality     OriginalityReport `json:"originality" yaml:"originality"`
	Citations       []Citation        `json:"citations" yaml:"citations"`
	CitationSummary CitationSummary   `json:"citation_summary" yaml:"citation_summary"`
	Critique        CritiqueReports   `json:"critique" yaml:"critique"`
	Grade           GradeReport       `json:"grade" yaml:"grade"`
}
