// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// Markdown renders rep as a Markdown document.
func Markdown(rep types.AnalysisReport) string {
	var b strings.Builder

	title := rep.Stats.Title
	if title == "" {
		title = "Paper assessment"
	}
	fmt.Fprintf(&b, "# %s\n\n", escape(title))
	fmt.Fprintf(&b, "- Report: `%s`\n", rep.ID)
	if rep.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", rep.Source)
	}
	fmt.Fprintf(&b, "- Generated: %s\n", rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "- Words: %d, sentences: %d\n\n", rep.Stats.WordCount, rep.Stats.SentenceCount)

	g := rep.Grade
	fmt.Fprintf(&b, "## Grade: %s (%.2f)\n\n%s.\n\n", g.LetterGrade, g.OverallScore, g.CategoryLabel)

	if rep.Summary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", escape(rep.Summary))
	}

	b.WriteString("## Scores\n\n| Category | Score | Assessment |\n|---|---:|---|\n")
	for _, r := range rep.Critique.All() {
		fmt.Fprintf(&b, "| %s | %.2f | %s |\n", r.Category, r.Score, r.Assessment)
	}
	b.WriteString("\n")

	for _, r := range rep.Critique.All() {
		fmt.Fprintf(&b, "### %s\n\n", r.Category)
		keys := make([]string, 0, len(r.SubScores))
		for k := range r.SubScores {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %.2f\n", k, r.SubScores[k])
		}
		b.WriteString("\n")
	}

	o := rep.Originality
	fmt.Fprintf(&b, "## Originality\n\n")
	fmt.Fprintf(&b, "- External similarity: %.2f (corpus of %d)\n", o.ExternalSimilarity, o.CorpusSize)
	fmt.Fprintf(&b, "- Internal repetition: %.2f\n", o.InternalRepetition)
	fmt.Fprintf(&b, "- Combined: %.2f, severity %s\n\n", o.CombinedScore, o.Severity)
	if o.Message != "" {
		fmt.Fprintf(&b, "%s %s\n\n", o.Message, o.Recommendation)
	}

	cs := rep.CitationSummary
	fmt.Fprintf(&b, "## Citations\n\n%d total: %d valid, %d partial, %d not found, %d invalid format.\n\n",
		cs.Total, cs.Valid, cs.PartialMatch, cs.NotFound, cs.InvalidFormat)
	if cs.Recommendation != "" {
		fmt.Fprintf(&b, "%s\n\n", cs.Recommendation)
	}
	if len(rep.Citations) > 0 {
		b.WriteString("| # | Status | Citation |\n|---:|---|---|\n")
		for i, c := range rep.Citations {
			fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, c.Status, escape(c.RawText))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommendations\n\n")
	for _, r := range g.Recommendations {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}

// WriteHTML renders the Markdown report to a standalone HTML page.
func WriteHTML(w io.Writer, rep types.AnalysisReport) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(rep)), &body); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := fmt.Fprintf(w, htmlPage, htmlEscaper.Replace(titleOf(rep)), body.String())
	return err
}

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.6em; }
</style>
</head>
<body>
%s</body>
</html>
`

var (
	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	mdEscaper   = strings.NewReplacer("|", `\|`, "<", "&lt;", ">", "&gt;", "\n", " ")
)

func titleOf(rep types.AnalysisReport) string {
	if rep.Stats.Title != "" {
		return rep.Stats.Title
	}
	return "Paper assessment"
}

// escape keeps free text from breaking table rows or injecting markup.
func escape(s string) string {
	return mdEscaper.Replace(s)
}
