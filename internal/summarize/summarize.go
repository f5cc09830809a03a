// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize produces the short plain-text summary attached to a
// report. Summaries are never scored.
package summarize

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-critic/internal/document"
	"github.com/pdiddy/paper-critic/pkg/types"
)

// Summarizer condenses document text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// New returns the Summarizer selected by cfg. The anthropic backend falls
// back to the extractive summary when it is unconfigured or fails.
func New(cfg types.SummaryConfig) Summarizer {
	extractive := Extractive{Sentences: cfg.Sentences}
	if cfg.Backend != types.SummaryAnthropic {
		return extractive
	}
	a, err := NewAnthropic(cfg)
	if err != nil {
		return extractive
	}
	return Fallback{Primary: a, Secondary: extractive}
}

// Extractive returns the opening sentences of the text.
type Extractive struct {
	Sentences int
}

// Summarize joins the first Sentences sentences. Empty text yields "".
func (e Extractive) Summarize(_ context.Context, text string) (string, error) {
	n := e.Sentences
	if n <= 0 {
		n = types.DefaultConfig().Summary.Sentences
	}
	sentences := document.New(text).Sentences
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	if len(sentences) == 0 {
		return "", nil
	}
	for i, s := range sentences {
		if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
			sentences[i] = s + "."
		}
	}
	return strings.Join(sentences, " "), nil
}

// Fallback tries Primary and uses Secondary when Primary errors or
// returns nothing.
type Fallback struct {
	Primary   Summarizer
	Secondary Summarizer
}

// Summarize implements Summarizer.
func (f Fallback) Summarize(ctx context.Context, text string) (string, error) {
	out, err := f.Primary.Summarize(ctx, text)
	if err == nil && strings.TrimSpace(out) != "" {
		return out, nil
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("summarizer failed, using fallback")
	}
	return f.Secondary.Summarize(ctx, text)
}

// Truncate cuts text to at most max runes. A non-positive max keeps text.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max])
}
