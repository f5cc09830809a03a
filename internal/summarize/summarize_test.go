// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-critic/pkg/types"
)

type mockMessager struct {
	response *anthropic.Message
	err      error
	params   anthropic.MessageNewParams
}

func (m *mockMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	m.params = params
	return m.response, m.err
}

func newMockMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
	}
}

func withMockClient(mock *mockMessager) func() {
	old := newClient
	newClient = func(_ string) Messager { return mock }
	return func() { newClient = old }
}

const paper = "We study citation quality. We built a checker. It found many errors. Authors should verify references."

func TestExtractive(t *testing.T) {
	got, err := Extractive{Sentences: 2}.Summarize(context.Background(), paper)
	require.NoError(t, err)
	assert.Equal(t, "We study citation quality. We built a checker.", got)

	got, err = Extractive{}.Summarize(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnthropicSummarize(t *testing.T) {
	mock := &mockMessager{response: newMockMessage("  A checker for citations.  ")}
	defer withMockClient(mock)()

	a, err := NewAnthropic(types.SummaryConfig{APIKey: "k", Model: "claude-test", MaxInputChars: 10})
	require.NoError(t, err)

	got, err := a.Summarize(context.Background(), paper)
	require.NoError(t, err)
	assert.Equal(t, "A checker for citations.", got)
	assert.Equal(t, anthropic.Model("claude-test"), mock.params.Model)
	require.Len(t, mock.params.Messages, 1)
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropic(types.SummaryConfig{APIKey: "  "})
	assert.Error(t, err)
}

func TestNewSelectsBackend(t *testing.T) {
	assert.IsType(t, Extractive{}, New(types.SummaryConfig{Backend: types.SummaryExtractive}))
	assert.IsType(t, Extractive{}, New(types.SummaryConfig{Backend: types.SummaryAnthropic}))

	defer withMockClient(&mockMessager{})()
	assert.IsType(t, Fallback{}, New(types.SummaryConfig{Backend: types.SummaryAnthropic, APIKey: "k"}))
}

func TestFallbackOnError(t *testing.T) {
	defer withMockClient(&mockMessager{err: errors.New("overloaded")})()

	s := New(types.SummaryConfig{Backend: types.SummaryAnthropic, APIKey: "k", Sentences: 1})
	got, err := s.Summarize(context.Background(), paper)
	require.NoError(t, err)
	assert.Equal(t, "We study citation quality.", got)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "héllo", Truncate("héllo", 0))
	assert.Equal(t, "hi", Truncate("hi", 10))
}
