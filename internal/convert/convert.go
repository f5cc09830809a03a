// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts plain text from paper files. It picks a
// Converter by file extension: PDF via ledongthuc/pdf, HTML via goquery,
// and Markdown or plain text read directly.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for file types no converter handles.
var ErrUnsupported = errors.New("unsupported file type")

// Converter turns a file into plain text.
type Converter interface {
	// Convert reads the file at path and returns its text.
	Convert(path string) (string, error)
}

// ForPath returns the converter for path's extension.
func ForPath(path string) (Converter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDFConverter{}, nil
	case ".html", ".htm":
		return HTMLConverter{}, nil
	case ".txt", ".text", ".md", ".markdown":
		return TextConverter{}, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

// Supported reports whether Extract can handle path.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}

// Extract converts the file at path to text with the matching converter.
func Extract(path string) (string, error) {
	c, err := ForPath(path)
	if err != nil {
		return "", err
	}
	text, err := c.Convert(path)
	if err != nil {
		return "", err
	}
	return text, nil
}

// TextConverter reads plain text and Markdown. YAML frontmatter is dropped.
type TextConverter struct{}

// Convert reads path and strips a leading frontmatter block.
func (TextConverter) Convert(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return stripFrontmatter(string(data)), nil
}

// stripFrontmatter removes a "---" delimited block at the top of content.
func stripFrontmatter(content string) string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return content
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return content
	}
	return strings.TrimLeft(rest[end+len("\n---\n"):], "\n")
}

// normalizeLines trims every line, collapses inner whitespace, and drops
// blank runs longer than one line.
func normalizeLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
