// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want Converter
	}{
		{"paper.pdf", PDFConverter{}},
		{"paper.PDF", PDFConverter{}},
		{"paper.html", HTMLConverter{}},
		{"paper.htm", HTMLConverter{}},
		{"paper.txt", TextConverter{}},
		{"paper.md", TextConverter{}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ForPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ForPath("paper.docx")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, Supported("paper.docx"))
	assert.True(t, Supported("notes.markdown"))
}

func TestExtractText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "paper.txt", "Introduction\nBody text.\n")

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Introduction\nBody text.\n", text)
}

func TestExtractMarkdownStripsFrontmatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "paper.md", "---\npaper_id: \"x\"\n---\n\n# Title\nBody.\n")

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\nBody.\n", text)
}

func TestStripFrontmatterLeavesPlainContent(t *testing.T) {
	assert.Equal(t, "no frontmatter", stripFrontmatter("no frontmatter"))
	assert.Equal(t, "---\nunterminated", stripFrontmatter("---\nunterminated"))
}

func TestExtractHTML(t *testing.T) {
	dir := t.TempDir()
	html := `<html><head><style>p{color:red}</style><script>var x = 1;</script></head>
<body>
<h1>A Study of Things</h1>
<p>Abstract: we study   things.</p>
<h2>Related work</h2>
<ul><li><p>Nested paragraph</p></li></ul>
<p></p>
</body></html>`
	path := writeFile(t, dir, "paper.html", html)

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "## A Study of Things\nAbstract: we study things.\n\n## Related work\nNested paragraph", text)
	assert.NotContains(t, text, "var x")
}

func TestExtractHTMLWithoutBlocks(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bare.html", "<html><body>just   some text</body></html>")

	text, err := Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "just some text", text)
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Extract(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "broken.pdf", "this is not a pdf")
	_, err = Extract(bad)
	assert.Error(t, err)
}

func TestNormalizeLines(t *testing.T) {
	in := "\n\n  first   line \n\n\n second\n\n"
	assert.Equal(t, "first line\n\nsecond", normalizeLines(in))
}
