package prompt

import (
	"fmt"
	"strings"

	"diagram-gen/internal/models"
)

// Stage selects which pipeline step the prompt drives.
type Stage string

const (
	StageSummary Stage = "summary"
	StageDiagram Stage = "diagram"
)

// Style selects the template family for the content domain.
type Style string

const (
	StyleResearch Style = "research"
	StyleStory    Style = "story"
)

// ParseStyle maps a config value onto a Style, defaulting to research.
func ParseStyle(s string) Style {
	if strings.EqualFold(s, string(StyleStory)) {
		return StyleStory
	}
	return StyleResearch
}

// Build fills the template for the given stage and style with context,
// verbatim and untruncated. Pre-chunking oversized context is the caller's
// responsibility.
func Build(stage Stage, style Style, context string) (string, error) {
	if strings.TrimSpace(context) == "" {
		return "", fmt.Errorf("%w: prompt context is empty", models.ErrInvalidInput)
	}

	switch stage {
	case StageSummary:
		if style == StyleStory {
			return fmt.Sprintf(models.StorySummaryPrompt, context), nil
		}
		return fmt.Sprintf(models.ResearchSummaryPrompt, context), nil
	case StageDiagram:
		if style == StyleStory {
			return fmt.Sprintf(models.StoryDiagramPrompt, context), nil
		}
		return fmt.Sprintf(models.ResearchDiagramPrompt, context), nil
	default:
		return "", fmt.Errorf("%w: unknown prompt stage %q", models.ErrInvalidInput, stage)
	}
}
