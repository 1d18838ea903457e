package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "diagram.html")
	mermaidCode := "flowchart TD\nA(Alice) --> B[Meets Bob]"

	err := WriteHTML(path, "- Alice\n- Bob", mermaidCode)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, `<pre class="mermaid">`)
	assert.Contains(t, html, mermaidCode)
	assert.Contains(t, html, "mermaid.initialize")
	// Summary Markdown rendered to a list.
	assert.Contains(t, html, "<li>Alice</li>")
}

func TestExtractMermaidBlockRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.html")
	mermaidCode := "flowchart TD\nA --> B\nB --> C((End))"

	require.NoError(t, WriteHTML(path, "summary", mermaidCode))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mermaidCode, ExtractMermaidBlock(string(data)))
}

func TestExtractMermaidBlockMissing(t *testing.T) {
	assert.Equal(t, "", ExtractMermaidBlock("<html><body>nothing here</body></html>"))
}
