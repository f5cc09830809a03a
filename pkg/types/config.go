// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
	"time"
)

// Config is the root configuration for paper-critic. DefaultConfig supplies
// every value; a config file or environment overrides individual keys.
type Config struct {
	Log         LogConfig         `json:"log" yaml:"log"`
	HTTP        HTTPConfig        `json:"http" yaml:"http"`
	Corpus      CorpusConfig      `json:"corpus" yaml:"corpus"`
	Originality OriginalityConfig `json:"originality" yaml:"originality"`
	Citations   CitationConfig    `json:"citations" yaml:"citations"`
	Critique    CritiqueConfig    `json:"critique" yaml:"critique"`
	Grading     GradingConfig     `json:"grading" yaml:"grading"`
	Summary     SummaryConfig     `json:"summary" yaml:"summary"`
	Tracing     TracingConfig     `json:"tracing" yaml:"tracing"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is "console" for human-readable output or "json" for JSON lines.
	Format string `json:"format" yaml:"format"`
}

// HTTPConfig holds shared HTTP settings used by the bibliographic lookups.
type HTTPConfig struct {
	// Timeout is the client-level HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CorpusConfig locates the reference corpus used for similarity scoring.
type CorpusConfig struct {
	// DBPath is the sqlite corpus file. Ignored when Dir is set.
	DBPath string `json:"db_path" yaml:"db_path"`

	// Dir is a plain directory of .txt/.md reference documents.
	Dir string `json:"dir" yaml:"dir"`

	// MaxDocuments bounds how many documents are loaded at startup.
	MaxDocuments int `json:"max_documents" yaml:"max_documents"`
}

// OriginalityConfig tunes the originality scorer.
type OriginalityConfig struct {
	// NGramSize is the word length of shingles used for internal repetition.
	NGramSize int `json:"ngram_size" yaml:"ngram_size"`

	// MatchThreshold is the minimum cosine similarity reported as a match.
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold"`

	// ExternalWeight and InternalWeight combine the two signals; they sum to 1.
	ExternalWeight float64 `json:"external_weight" yaml:"external_weight"`
	InternalWeight float64 `json:"internal_weight" yaml:"internal_weight"`
}

// Citation validation backends.
const (
	BackendSemanticScholar = "semantic_scholar"
	BackendCrossRef        = "crossref"
	BackendOpenAlex        = "openalex"
	BackendHeuristic       = "heuristic"
)

// CitationConfig controls reference extraction and validation.
type CitationConfig struct {
	// Backend selects the validator: semantic_scholar, crossref, openalex,
	// or heuristic.
	Backend string `json:"backend" yaml:"backend"`

	// Concurrency bounds in-flight lookups.
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// CallTimeout bounds a single lookup, retries included.
	CallTimeout time.Duration `json:"call_timeout" yaml:"call_timeout"`

	// RequestsPerSecond paces lookups across all workers. Zero disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxCitations caps how many entries are extracted from one document.
	MaxCitations int `json:"max_citations" yaml:"max_citations"`

	// MinLength discards reference fragments shorter than this many characters.
	MinLength int `json:"min_length" yaml:"min_length"`

	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// Mailto identifies the caller to the CrossRef and OpenAlex polite pools.
	Mailto string `json:"mailto,omitempty" yaml:"mailto,omitempty"`
}

// CritiqueConfig tunes the five critique analyzers.
type CritiqueConfig struct {
	// RecencyWindowYears is how many years back a citation counts as recent.
	RecencyWindowYears int `json:"recency_window_years" yaml:"recency_window_years"`

	// AbstractWords is how many leading words stand in for a missing abstract.
	AbstractWords int `json:"abstract_words" yaml:"abstract_words"`

	// PatternsFile optionally overrides the built-in pattern tables.
	PatternsFile string `json:"patterns_file" yaml:"patterns_file"`
}

// Weights assigns each graded category its share of the overall score.
type Weights struct {
	WritingQuality        float64 `json:"writing_quality" yaml:"writing_quality"`
	StatisticalRigor      float64 `json:"statistical_rigor" yaml:"statistical_rigor"`
	CitationNetwork       float64 `json:"citation_network" yaml:"citation_network"`
	LiteraturePositioning float64 `json:"literature_positioning" yaml:"literature_positioning"`
	Reproducibility       float64 `json:"reproducibility" yaml:"reproducibility"`
	Originality           float64 `json:"originality" yaml:"originality"`
	CitationValidity      float64 `json:"citation_validity" yaml:"citation_validity"`
}

// Of returns the weight for category c.
func (w Weights) Of(c Category) float64 {
	switch c {
	case CategoryWritingQuality:
		return w.WritingQuality
	case CategoryStatisticalRigor:
		return w.StatisticalRigor
	case CategoryCitationNetwork:
		return w.CitationNetwork
	case CategoryLiteraturePositioning:
		return w.LiteraturePositioning
	case CategoryReproducibility:
		return w.Reproducibility
	case CategoryOriginality:
		return w.Originality
	case CategoryCitationValidity:
		return w.CitationValidity
	}
	return 0
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var s float64
	for _, c := range Categories {
		s += w.Of(c)
	}
	return s
}

func (w Weights) scaled(f float64) Weights {
	return Weights{
		WritingQuality:        w.WritingQuality * f,
		StatisticalRigor:      w.StatisticalRigor * f,
		CitationNetwork:       w.CitationNetwork * f,
		LiteraturePositioning: w.LiteraturePositioning * f,
		Reproducibility:       w.Reproducibility * f,
		Originality:           w.Originality * f,
		CitationValidity:      w.CitationValidity * f,
	}
}

// DefaultWeights is the overall-score weight vector.
var DefaultWeights = Weights{
	WritingQuality:        0.20,
	StatisticalRigor:      0.15,
	CitationNetwork:       0.10,
	LiteraturePositioning: 0.10,
	Reproducibility:       0.10,
	Originality:           0.20,
	CitationValidity:      0.15,
}

// GradingConfig controls overall-score aggregation.
type GradingConfig struct {
	Weights Weights `json:"weights" yaml:"weights"`

	// RecommendationThreshold is the category score below which a
	// recommendation is emitted.
	RecommendationThreshold float64 `json:"recommendation_threshold" yaml:"recommendation_threshold"`
}

// Summarizer backends.
const (
	SummaryAnthropic  = "anthropic"
	SummaryExtractive = "extractive"
)

// SummaryConfig selects the summarization collaborator.
type SummaryConfig struct {
	Backend string `json:"backend" yaml:"backend"`

	// Model is the Claude model identifier used by the anthropic backend.
	Model string `json:"model" yaml:"model"`

	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxInputChars truncates the text sent for summarization.
	MaxInputChars int `json:"max_input_chars" yaml:"max_input_chars"`

	// Sentences is the length of the extractive fallback summary.
	Sentences int `json:"sentences" yaml:"sentences"`
}

// TracingConfig enables OTLP span export when Endpoint is set.
type TracingConfig struct {
	OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint"`
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "console"},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "paper-critic/0.1",
		},
		Corpus: CorpusConfig{
			DBPath:       "corpus/corpus.db",
			MaxDocuments: 500,
		},
		Originality: OriginalityConfig{
			NGramSize:      5,
			MatchThreshold: 0.05,
			ExternalWeight: 0.7,
			InternalWeight: 0.3,
		},
		Citations: CitationConfig{
			Backend:           BackendSemanticScholar,
			Concurrency:       4,
			CallTimeout:       10 * time.Second,
			RequestsPerSecond: 1,
			MaxCitations:      100,
			MinLength:         20,
		},
		Critique: CritiqueConfig{
			RecencyWindowYears: 5,
			AbstractWords:      300,
		},
		Grading: GradingConfig{
			Weights:                 DefaultWeights,
			RecommendationThreshold: 60,
		},
		Summary: SummaryConfig{
			Backend:       SummaryExtractive,
			Model:         "claude-sonnet-4-20250514",
			MaxInputChars: 1024,
			Sentences:     3,
		},
	}
}

// Normalize repairs out-of-range values in place and returns one warning
// per repair. A bad configuration never prevents an analysis from running.
func (c *Config) Normalize() []string {
	def := DefaultConfig()
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if c.Corpus.MaxDocuments <= 0 {
		warn("corpus.max_documents %d is not positive, using %d", c.Corpus.MaxDocuments, def.Corpus.MaxDocuments)
		c.Corpus.MaxDocuments = def.Corpus.MaxDocuments
	}

	o := &c.Originality
	if o.NGramSize <= 0 {
		warn("originality.ngram_size %d is not positive, using %d", o.NGramSize, def.Originality.NGramSize)
		o.NGramSize = def.Originality.NGramSize
	}
	if o.MatchThreshold < 0 || o.MatchThreshold > 1 {
		warn("originality.match_threshold %.3f is outside [0,1], using %.2f", o.MatchThreshold, def.Originality.MatchThreshold)
		o.MatchThreshold = def.Originality.MatchThreshold
	}
	if o.ExternalWeight < 0 || o.InternalWeight < 0 || o.ExternalWeight+o.InternalWeight == 0 {
		warn("originality weights %.2f/%.2f are invalid, using %.1f/%.1f",
			o.ExternalWeight, o.InternalWeight, def.Originality.ExternalWeight, def.Originality.InternalWeight)
		o.ExternalWeight, o.InternalWeight = def.Originality.ExternalWeight, def.Originality.InternalWeight
	} else if sum := o.ExternalWeight + o.InternalWeight; !nearlyOne(sum) {
		warn("originality weights sum to %.3f, rescaling to 1", sum)
		o.ExternalWeight /= sum
		o.InternalWeight /= sum
	}

	ct := &c.Citations
	switch ct.Backend {
	case BackendSemanticScholar, BackendCrossRef, BackendOpenAlex, BackendHeuristic:
	default:
		warn("citations.backend %q is unknown, using %s", ct.Backend, BackendHeuristic)
		ct.Backend = BackendHeuristic
	}
	if ct.Concurrency <= 0 {
		warn("citations.concurrency %d is not positive, using %d", ct.Concurrency, def.Citations.Concurrency)
		ct.Concurrency = def.Citations.Concurrency
	}
	if ct.CallTimeout <= 0 {
		warn("citations.call_timeout %v is not positive, using %v", ct.CallTimeout, def.Citations.CallTimeout)
		ct.CallTimeout = def.Citations.CallTimeout
	}
	if ct.RequestsPerSecond < 0 {
		warn("citations.requests_per_second %.2f is negative, disabling pacing", ct.RequestsPerSecond)
		ct.RequestsPerSecond = 0
	}
	if ct.MaxCitations <= 0 {
		warn("citations.max_citations %d is not positive, using %d", ct.MaxCitations, def.Citations.MaxCitations)
		ct.MaxCitations = def.Citations.MaxCitations
	}
	if ct.MinLength <= 0 {
		ct.MinLength = def.Citations.MinLength
	}

	if c.Critique.RecencyWindowYears <= 0 {
		warn("critique.recency_window_years %d is not positive, using %d", c.Critique.RecencyWindowYears, def.Critique.RecencyWindowYears)
		c.Critique.RecencyWindowYears = def.Critique.RecencyWindowYears
	}
	if c.Critique.AbstractWords <= 0 {
		c.Critique.AbstractWords = def.Critique.AbstractWords
	}

	g := &c.Grading
	for _, cat := range Categories {
		if g.Weights.Of(cat) < 0 {
			warn("grading.weights.%s is negative, using defaults", cat)
			g.Weights = DefaultWeights
			break
		}
	}
	if sum := g.Weights.Sum(); sum == 0 {
		warn("grading.weights are all zero, using defaults")
		g.Weights = DefaultWeights
	} else if !nearlyOne(sum) {
		warn("grading.weights sum to %.3f, rescaling to 1", sum)
		g.Weights = g.Weights.scaled(1 / sum)
	}
	if g.RecommendationThreshold < 0 || g.RecommendationThreshold > 100 {
		warn("grading.recommendation_threshold %.1f is outside [0,100], using %.0f", g.RecommendationThreshold, def.Grading.RecommendationThreshold)
		g.RecommendationThreshold = def.Grading.RecommendationThreshold
	}

	s := &c.Summary
	if s.Backend != SummaryAnthropic && s.Backend != SummaryExtractive {
		warn("summary.backend %q is unknown, using %s", s.Backend, SummaryExtractive)
		s.Backend = SummaryExtractive
	}
	if s.MaxInputChars <= 0 {
		s.MaxInputChars = def.Summary.MaxInputChars
	}
	if s.Sentences <= 0 {
		s.Sentences = def.Summary.Sentences
	}
	if s.Model == "" {
		s.Model = def.Summary.Model
	}

	return warnings
}

func nearlyOne(v float64) bool {
	return math.Abs(v-1) < 1e-9
}
