package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"diagram-gen/internal/helper"
)

// htmlTemplate embeds the Mermaid code verbatim in a <pre> block; the
// mermaid@11 script renders it client side. The summary section is
// rendered from Markdown separately.
const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body>
  <pre class="mermaid">
%s
  </pre>

  <details>
    <summary>Document summary</summary>
%s
  </details>

  <script type="module">
    import mermaid from 'https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs';
    mermaid.initialize({ startOnLoad: true });
  </script>
</body>
</html>`

var mermaidBlockRe = regexp.MustCompile(`(?s)<pre class="mermaid">\s*(.*?)\s*</pre>`)

// WriteHTML renders the result artifact and writes it to outputFile,
// creating the output directory if needed. The mermaid code is embedded
// verbatim; the summary is converted from Markdown to HTML.
func WriteHTML(outputFile, summary, mermaidCode string) error {
	if err := helper.CreateFolder(filepath.Dir(outputFile)); err != nil {
		return err
	}

	summaryHTML, err := markdownToHTML(summary)
	if err != nil {
		return err
	}

	content := fmt.Sprintf(htmlTemplate, mermaidCode, summaryHTML)
	return os.WriteFile(outputFile, []byte(content), 0o644)
}

// ExtractMermaidBlock pulls the diagram text back out of a rendered
// artifact. Returns "" when no mermaid block is present.
func ExtractMermaidBlock(htmlContent string) string {
	m := mermaidBlockRe.FindStringSubmatch(htmlContent)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func markdownToHTML(text string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.Trim(buf.String(), " \t\n\r"), nil
}
