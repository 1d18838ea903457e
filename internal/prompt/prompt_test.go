package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diagram-gen/internal/models"
)

func TestBuildFillsContextVerbatim(t *testing.T) {
	context := "Alice met Bob in Paris. 100% of the story happens there."

	tests := []struct {
		name  string
		stage Stage
		style Style
	}{
		{name: "research summary", stage: StageSummary, style: StyleResearch},
		{name: "story summary", stage: StageSummary, style: StyleStory},
		{name: "research diagram", stage: StageDiagram, style: StyleResearch},
		{name: "story diagram", stage: StageDiagram, style: StyleStory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Build(tt.stage, tt.style, context)
			require.NoError(t, err)
			assert.Contains(t, out, context)
			// Exactly one substitution point per template.
			assert.Equal(t, 1, strings.Count(out, context))
			assert.NotContains(t, out, "%s")
			assert.NotContains(t, out, "%!")
		})
	}
}

func TestBuildSelectsTemplateByStyle(t *testing.T) {
	research, err := Build(StageSummary, StyleResearch, "some text")
	require.NoError(t, err)
	story, err := Build(StageSummary, StyleStory, "some text")
	require.NoError(t, err)

	assert.NotEqual(t, research, story)
	assert.Contains(t, research, "Entities")
	assert.Contains(t, story, "CHARACTERS")
}

func TestBuildDiagramTemplatesMentionFlowchart(t *testing.T) {
	for _, style := range []Style{StyleResearch, StyleStory} {
		out, err := Build(StageDiagram, style, "a summary")
		require.NoError(t, err)
		assert.Contains(t, out, "flowchart TD")
	}
}

func TestBuildEmptyContext(t *testing.T) {
	for _, context := range []string{"", "   ", "\n\t"} {
		_, err := Build(StageSummary, StyleResearch, context)
		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidInput))
	}
}

func TestBuildUnknownStage(t *testing.T) {
	_, err := Build(Stage("translate"), StyleResearch, "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleStory, ParseStyle("story"))
	assert.Equal(t, StyleStory, ParseStyle("Story"))
	assert.Equal(t, StyleResearch, ParseStyle("research"))
	assert.Equal(t, StyleResearch, ParseStyle(""))
	assert.Equal(t, StyleResearch, ParseStyle("unknown"))
}
