// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// WriteTable writes a human-readable summary of rep.
func WriteTable(w io.Writer, rep types.AnalysisReport) error {
	ew := &errWriter{w: w}

	title := rep.Stats.Title
	if title == "" {
		title = "(untitled)"
	}
	ew.printf("Report:   %s\n", rep.ID)
	ew.printf("Title:    %s\n", title)
	ew.printf("Words:    %d   Sentences: %d\n", rep.Stats.WordCount, rep.Stats.SentenceCount)
	ew.printf("Grade:    %s  %.2f  (%s)\n\n", rep.Grade.LetterGrade, rep.Grade.OverallScore, rep.Grade.CategoryLabel)

	ew.printf("%-24s  %-8s  %s\n", "Category", "Score", "Assessment")
	ew.printf("%s\n", strings.Repeat("-", 50))
	for _, r := range rep.Critique.All() {
		ew.printf("%-24s  %-8.2f  %s\n", r.Category, r.Score, r.Assessment)
	}
	o := rep.Originality
	ew.printf("%-24s  %-8.2f  %s similarity\n", types.CategoryOriginality, o.CombinedScore, o.Severity)
	cs := rep.CitationSummary
	ew.printf("%-24s  %-8.2f  %d/%d valid\n\n", types.CategoryCitationValidity, cs.QualityScore, cs.Valid, cs.Total)

	if len(rep.Citations) > 0 {
		ew.printf("%-4s  %-14s  %-60s\n", "#", "Status", "Citation")
		ew.printf("%s\n", strings.Repeat("-", 82))
		for i, c := range rep.Citations {
			ew.printf("%-4d  %-14s  %-60s\n", i+1, c.Status, truncate(c.RawText, 60))
		}
		ew.printf("\n")
	}

	if rep.Summary != "" {
		ew.printf("Summary:\n  %s\n\n", rep.Summary)
	}

	ew.printf("Recommendations:\n")
	for _, r := range rep.Grade.Recommendations {
		ew.printf("  - %s\n", r)
	}
	return ew.err
}

// errWriter remembers the first write error so rendering code can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
