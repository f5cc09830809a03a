// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/paper-critic/pkg/types"
)

const systemPrompt = "You summarize academic papers for reviewers. Reply with one plain-text paragraph of at most five sentences covering the research question, method, main result, and conclusion. Do not add commentary."

const maxSummaryTokens = 512

// Messager is the part of the Anthropic client the summarizer uses.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// ClientCreator builds a Messager for an API key.
type ClientCreator func(apiKey string) Messager

func defaultClientCreator(apiKey string) Messager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newClient ClientCreator = defaultClientCreator

// Anthropic summarizes with a Claude model.
type Anthropic struct {
	messages      Messager
	model         anthropic.Model
	maxInputChars int
}

// NewAnthropic returns a Claude summarizer. It fails when no API key is
// configured.
func NewAnthropic(cfg types.SummaryConfig) (*Anthropic, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errors.New("anthropic api key not configured")
	}
	model := anthropic.ModelClaudeSonnet4_20250514
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}
	return &Anthropic{
		messages:      newClient(key),
		model:         model,
		maxInputChars: cfg.MaxInputChars,
	}, nil
}

// Summarize sends the truncated text to the model and returns its reply.
func (a *Anthropic) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(Truncate(text, a.maxInputChars))
	if text == "" {
		return "", nil
	}
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   maxSummaryTokens,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(text))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic summary: %w", err)
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
