package mermaid

import (
	"strings"

	"diagram-gen/internal/models"
)

const (
	fence       = "```"
	mermaidOpen = "```mermaid"
)

// Normalize turns a raw LLM reply into clean Mermaid flowchart text. The
// model is instructed to emit only diagram syntax, but free-text generation
// is unreliable: replies can arrive wrapped in commentary or code fences.
// This is a best-effort line filter, not a parser; a prose line that happens
// to end in ')' passes, and a diagram line with an unanticipated node-shape
// suffix is dropped. Returns *models.MalformedDiagramError when the filtered
// text does not start with the flowchart keyword.
func Normalize(raw string) (string, error) {
	code := strings.TrimSpace(raw)

	if strings.Contains(code, mermaidOpen) {
		code = strings.SplitN(code, mermaidOpen, 2)[1]
		code = strings.SplitN(code, fence, 2)[0]
		code = strings.TrimSpace(code)
	} else if strings.Contains(code, fence) {
		code = strings.TrimSpace(strings.ReplaceAll(code, fence, ""))
	}

	var kept []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if keepLine(line) {
			kept = append(kept, line)
		}
	}
	code = strings.Join(kept, "\n")

	if !strings.HasPrefix(code, "flowchart") {
		return "", &models.MalformedDiagramError{Text: code}
	}
	return code, nil
}

// keepLine reports whether a trimmed line looks like flowchart syntax:
// the header, an edge, or a node declaration ending in a recognized
// shape delimiter.
func keepLine(line string) bool {
	return strings.HasPrefix(line, "flowchart") ||
		strings.Contains(line, "-->") ||
		strings.HasSuffix(line, "]") ||
		strings.HasSuffix(line, ")") ||
		strings.HasSuffix(line, "}}") ||
		strings.HasSuffix(line, "/]")
}
