// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders an AnalysisReport as a table, JSON, YAML,
// Markdown, or HTML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-critic/pkg/types"
)

// Format names an output rendering.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ParseFormat validates a format name. Matching is case-insensitive and
// "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of table, json, yaml, markdown, html)", s)
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep types.AnalysisReport, format Format) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, rep)
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatYAML:
		return WriteYAML(w, rep)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(rep))
		return err
	case FormatHTML:
		return WriteHTML(w, rep)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep types.AnalysisReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteYAML writes rep as YAML.
func WriteYAML(w io.Writer, rep types.AnalysisReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
