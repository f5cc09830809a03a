// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// newAnalyzeCmd returns a command wired to runAnalyze with a JSON report
// written to out and the analysis config set to offline backends.
func newAnalyzeCmd(t *testing.T, out *bytes.Buffer, logs *bytes.Buffer) *cobra.Command {
	t.Helper()

	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg = types.DefaultConfig()
	cfg.Citations.Backend = types.BackendHeuristic
	cfg.Summary.Backend = types.SummaryExtractive

	logger := zerolog.New(logs)
	cmd := &cobra.Command{RunE: runAnalyze}
	cmd.Flags().String("format", "json", "")
	cmd.Flags().String("output", "", "")
	cmd.SetOut(out)
	cmd.SetContext(logger.WithContext(context.Background()))
	return cmd
}

func TestAnalyzeUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		name    string
		content string
	}{
		{"truncated file", "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\n"},
		{"not a pdf at all", "this is plain text with a pdf extension"},
		{"empty file", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, "scan.pdf")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			var out, logs bytes.Buffer
			cmd := newAnalyzeCmd(t, &out, &logs)
			require.NoError(t, runAnalyze(cmd, []string{path}))

			var rep types.AnalysisReport
			require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
			assert.Equal(t, path, rep.Source)
			assert.Zero(t, rep.Stats.WordCount)
			assert.Empty(t, rep.Citations)
			for _, r := range rep.Critique.All() {
				assert.Equal(t, types.AssessmentInsufficient, r.Assessment, r.Category)
				assert.Zero(t, r.Score)
			}
			assert.Equal(t, types.GradeF, rep.Grade.LetterGrade)
			assert.Contains(t, logs.String(), "text extraction failed")
		})
	}
}

func TestAnalyzeTextFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "paper.md")
	require.NoError(t, os.WriteFile(path, []byte(
		"Measuring Attention Drift in Long Documents\n\nAbstract\nWe study attention drift in long documents.\n"), 0o644))

	var out, logs bytes.Buffer
	cmd := newAnalyzeCmd(t, &out, &logs)
	require.NoError(t, runAnalyze(cmd, []string{path}))

	var rep types.AnalysisReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "Measuring Attention Drift in Long Documents", rep.Stats.Title)
	assert.Positive(t, rep.Stats.WordCount)
	assert.NotContains(t, logs.String(), "text extraction failed")
}

func TestAnalyzeInputErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsupported := filepath.Join(dir, "paper.docx")
	require.NoError(t, os.WriteFile(unsupported, []byte("binary"), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.pdf")},
		{"unsupported type", unsupported},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, logs bytes.Buffer
			cmd := newAnalyzeCmd(t, &out, &logs)
			assert.Error(t, runAnalyze(cmd, []string{tc.path}))
			assert.Empty(t, out.String())
		})
	}
}
