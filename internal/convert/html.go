// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements that carry one line of paper text each.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, figcaption, dt, dd"

// HTMLConverter extracts readable text from HTML papers. Headings are
// emitted with a "## " marker so section detection recognizes them.
type HTMLConverter struct{}

// Convert parses the HTML file at path and returns its text.
func (HTMLConverter) Convert(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parsing HTML %s: %w", path, err)
	}
	return htmlText(doc), nil
}

func htmlText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header > nav").Remove()

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(s)[0] == 'h' && len(goquery.NodeName(s)) == 2 {
			text = "## " + text
			lines = append(lines, "")
		}
		lines = append(lines, text)
	})

	if len(lines) == 0 {
		return normalizeLines(doc.Find("body").Text())
	}
	return normalizeLines(strings.Join(lines, "\n"))
}
