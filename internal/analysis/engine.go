// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis runs every assessment stage over one document and
// joins the results into an AnalysisReport. Stages run concurrently and
// never fail the analysis: a stage that errors or panics contributes its
// zero-signal result instead.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdiddy/paper-critic/internal/citations"
	"github.com/pdiddy/paper-critic/internal/critique"
	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/internal/grading"
	"github.com/pdiddy/paper-critic/internal/originality"
	"github.com/pdiddy/paper-critic/internal/patterns"
	"github.com/pdiddy/paper-critic/internal/score"
	"github.com/pdiddy/paper-critic/internal/summarize"
	"github.com/pdiddy/paper-critic/internal/tracing"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// Engine holds the per-process collaborators. It keeps no per-request
// state, so one Engine may analyze many documents concurrently.
type Engine struct {
	cfg        types.Config
	lib        *patterns.Library
	refs       []originality.Reference
	validator  citations.Validator
	summarizer summarize.Summarizer
	now        func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLibrary replaces the built-in pattern library.
func WithLibrary(lib *patterns.Library) Option {
	return func(e *Engine) { e.lib = lib }
}

// WithReferences sets the originality reference corpus.
func WithReferences(refs []originality.Reference) Option {
	return func(e *Engine) { e.refs = refs }
}

// WithValidator replaces the citation validator chosen by configuration.
func WithValidator(v citations.Validator) Option {
	return func(e *Engine) { e.validator = v }
}

// WithSummarizer replaces the summarizer chosen by configuration.
func WithSummarizer(s summarize.Summarizer) Option {
	return func(e *Engine) { e.summarizer = s }
}

// WithClock sets the time source used for report timestamps and citation
// recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an Engine from cfg. Collaborators not supplied as options
// are derived from cfg.
func New(cfg types.Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.lib == nil {
		e.lib = patterns.Default()
	}
	if e.validator == nil {
		e.validator = citations.NewValidator(cfg.Citations, cfg.HTTP)
	}
	if e.summarizer == nil {
		e.summarizer = summarize.New(cfg.Summary)
	}
	return e
}

// pipeline is the per-request state shared by the stages of one Analyze
// call. Each stage writes only its own fields.
type pipeline struct {
	doc       *document.Document
	extracted []types.Citation
	input     critique.Input

	originality types.OriginalityReport
	citations   []types.Citation
	summary     string
	critique    types.CritiqueReports
}

// Analyze assesses text. It always returns a well-formed report.
func (e *Engine) Analyze(ctx context.Context, text string) types.AnalysisReport {
	ctx, span := tracing.Tracer().Start(ctx, "analyze")
	defer span.End()
	logger := zerolog.Ctx(ctx)

	now := e.now()
	p := e.prepare(ctx, text, now)
	span.SetAttributes(
		attribute.Int("document.words", p.doc.WordCount()),
		attribute.Int("document.citations", len(p.extracted)),
	)

	scorer := originality.NewScorer(e.refs, e.cfg.Originality)
	var wg conc.WaitGroup
	wg.Go(func() {
		e.stage(ctx, "originality", func(context.Context) {
			p.originality = scorer.Score(p.doc)
		})
	})
	wg.Go(func() {
		e.stage(ctx, "citations", func(ctx context.Context) {
			validated := e.validator.Validate(ctx, p.extracted)
			if len(validated) == len(p.extracted) {
				p.citations = validated
			}
		})
	})
	wg.Go(func() {
		e.stage(ctx, "summary", func(ctx context.Context) {
			s, err := e.summarizer.Summarize(ctx, summarize.Truncate(text, e.cfg.Summary.MaxInputChars))
			if err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("summary unavailable")
				return
			}
			p.summary = s
		})
	})
	for _, c := range critiqueOrder {
		target := reportFor(&p.critique, c)
		analyze := critique.Analyzers[c]
		wg.Go(func() {
			e.stage(ctx, string(c), func(context.Context) {
				*target = analyze(p.input)
			})
		})
	}
	wg.Wait()

	rep := types.AnalysisReport{
		ID:          uuid.NewString(),
		GeneratedAt: now.UTC(),
		Summary:     p.summary,
		Stats:       p.doc.Stats(),
		Originality: p.originality,
		Citations:   p.citations,
		Critique:    p.critique,
	}
	rep.CitationSummary = citations.Summarize(rep.Citations)
	sanitize(ctx, &rep)

	rep.Grade = grading.NewAggregator(e.cfg.Grading).Grade(grading.Input{
		Critique:              rep.Critique,
		Originality:           rep.Originality,
		CitationValidityRatio: rep.CitationSummary.ValidityRatio,
	})

	span.SetAttributes(attribute.Float64("grade.overall", rep.Grade.OverallScore))
	logger.Info().
		Str("report", rep.ID).
		Int("words", rep.Stats.WordCount).
		Int("citations", rep.CitationSummary.Total).
		Float64("overall", rep.Grade.OverallScore).
		Str("grade", string(rep.Grade.LetterGrade)).
		Msg("analysis complete")
	return rep
}

var critiqueOrder = []types.Category{
	types.CategoryWritingQuality,
	types.CategoryStatisticalRigor,
	types.CategoryCitationNetwork,
	types.CategoryLiteraturePositioning,
	types.CategoryReproducibility,
}

// prepare builds the document and extracts citations, then seeds every
// stage result with its fallback.
func (e *Engine) prepare(ctx context.Context, text string, now time.Time) *pipeline {
	p := &pipeline{doc: document.New(text)}
	e.stage(ctx, "extract_citations", func(context.Context) {
		p.extracted = citations.NewExtractor(e.lib, e.cfg.Citations).Extract(p.doc)
	})
	if p.extracted == nil {
		p.extracted = []types.Citation{}
	}

	p.input = critique.Input{
		Doc:                p.doc,
		Citations:          p.extracted,
		Library:            e.lib,
		Now:                now,
		RecencyWindowYears: e.cfg.Critique.RecencyWindowYears,
		AbstractWords:      e.cfg.Critique.AbstractWords,
	}

	p.originality = types.OriginalityReport{Matches: []types.SimilarityMatch{}, Severity: types.SeverityLow}
	p.citations = make([]types.Citation, len(p.extracted))
	for i, c := range p.extracted {
		c.Status = types.CitationNotFound
		p.citations[i] = c
	}
	for _, c := range critiqueOrder {
		*reportFor(&p.critique, c) = fallbackReport(c, p.doc)
	}
	return p
}

// reportFor addresses the field of cr holding category c.
func reportFor(cr *types.CritiqueReports, c types.Category) *types.SubAnalysisReport {
	switch c {
	case types.CategoryWritingQuality:
		return &cr.WritingQuality
	case types.CategoryStatisticalRigor:
		return &cr.StatisticalRigor
	case types.CategoryCitationNetwork:
		return &cr.CitationNetwork
	case types.CategoryLiteraturePositioning:
		return &cr.LiteraturePositioning
	default:
		return &cr.Reproducibility
	}
}

func fallbackReport(c types.Category, doc *document.Document) types.SubAnalysisReport {
	r := types.SubAnalysisReport{
		Category:   c,
		Metrics:    map[string]any{},
		SubScores:  map[string]float64{},
		Assessment: score.Label(0),
	}
	if doc.IsEmpty() {
		r.Assessment = types.AssessmentInsufficient
	}
	return r
}

// stage runs fn inside its own span and recovers a panic into a logged
// error so the remaining stages still complete.
func (e *Engine) stage(ctx context.Context, name string, fn func(context.Context)) {
	ctx, span := tracing.Tracer().Start(ctx, "stage."+name, trace.WithAttributes(attribute.String("stage", name)))
	defer span.End()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("stage %s panicked: %v", name, r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			zerolog.Ctx(ctx).Error().Err(err).Msg("analysis stage failed")
		}
		zerolog.Ctx(ctx).Debug().Str("stage", name).Dur("elapsed", time.Since(start)).Msg("stage finished")
	}()
	fn(ctx)
}

// sanitize clamps every score into [0,100], logging each correction.
func sanitize(ctx context.Context, rep *types.AnalysisReport) {
	fix := func(name string, v *float64) {
		if !score.InRange(*v) {
			zerolog.Ctx(ctx).Debug().Str("score", name).Float64("value", *v).Msg("clamping out-of-range score")
			*v = score.Clamp(*v)
		}
	}
	fix("originality.external_similarity", &rep.Originality.ExternalSimilarity)
	fix("originality.internal_repetition", &rep.Originality.InternalRepetition)
	fix("originality.combined_score", &rep.Originality.CombinedScore)

	for _, c := range critiqueOrder {
		r := reportFor(&rep.Critique, c)
		fix(string(c), &r.Score)
		for k, v := range r.SubScores {
			fix(string(c)+"."+k, &v)
			r.SubScores[k] = v
		}
	}
}
