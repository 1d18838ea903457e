package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput flags empty or otherwise unusable caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtraction flags a document whose pages all yielded no text.
	ErrExtraction = errors.New("no text could be extracted")
)

// MalformedDiagramError is returned when the normalized LLM reply does not
// look like a flowchart. Text carries the offending output for diagnostics.
type MalformedDiagramError struct {
	Text string
}

func (e *MalformedDiagramError) Error() string {
	return fmt.Sprintf("generated code doesn't start with 'flowchart': %q", e.Text)
}
