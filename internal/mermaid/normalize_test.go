package mermaid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diagram-gen/internal/models"
)

const testFence = "```"

func TestNormalizeCleanInputUnchanged(t *testing.T) {
	input := "flowchart TD\nA(Start) --> B[Work]\nB --> C((End))"

	out, err := Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)

	// Running the output through again must be a no-op.
	again, err := Normalize(out)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestNormalizeMermaidFencedBlock(t *testing.T) {
	input := "Here is the diagram:\n" +
		testFence + "mermaid\n" +
		"flowchart TD\n" +
		"A(Alice) --> B[Meets Bob]\n" +
		"B --> C{{Decide to leave}}\n" +
		"C --> D((Ending))\n" +
		testFence + "\n" +
		"Hope that helps!"

	want := "flowchart TD\n" +
		"A(Alice) --> B[Meets Bob]\n" +
		"B --> C{{Decide to leave}}\n" +
		"C --> D((Ending))"

	out, err := Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, want, out)
	assert.NotContains(t, out, testFence)
}

func TestNormalizeGenericFences(t *testing.T) {
	input := testFence + "\nflowchart LR\nA --> B\n" + testFence

	out, err := Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, "flowchart LR\nA --> B", out)
	assert.NotContains(t, out, testFence)
}

func TestNormalizeDropsProseLines(t *testing.T) {
	input := "flowchart TD\n" +
		"This line is plain commentary\n" +
		"A[Step one]\n" +
		"\n" +
		"Another explanation here\n" +
		"A --> B"

	out, err := Normalize(input)
	require.NoError(t, err)
	assert.NotContains(t, out, "commentary")
	assert.NotContains(t, out, "explanation")
	assert.Equal(t, "flowchart TD\nA[Step one]\nA --> B", out)
}

func TestNormalizePreservesLineOrder(t *testing.T) {
	input := "flowchart TD\nC --> D\nA --> B\nB --> C"

	out, err := Normalize(input)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "C --> D", lines[1])
	assert.Equal(t, "A --> B", lines[2])
	assert.Equal(t, "B --> C", lines[3])
}

func TestNormalizeMissingFlowchartHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "edges without header", input: "A --> B\nB --> C"},
		{name: "prose only", input: "I could not generate a diagram."},
		{name: "empty reply", input: "   \n  "},
		{name: "graph keyword instead", input: "graph TD\nA --> B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.Error(t, err)

			var malformed *models.MalformedDiagramError
			assert.True(t, errors.As(err, &malformed))
		})
	}
}

func TestNormalizeMalformedErrorCarriesText(t *testing.T) {
	_, err := Normalize("A --> B")

	var malformed *models.MalformedDiagramError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "A --> B", malformed.Text)
}

func TestNormalizeNodeShapeSuffixes(t *testing.T) {
	tests := []struct {
		name string
		line string
		keep bool
	}{
		{name: "box", line: "A[Event]", keep: true},
		{name: "rounded", line: "A(Character)", keep: true},
		{name: "decision", line: "A{{Decision}}", keep: true},
		{name: "subroutine slash", line: "A[/Input/]", keep: true},
		{name: "prose", line: "And then everything changed", keep: false},
		{name: "trailing period", line: "The story ends.", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize("flowchart TD\n" + tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.keep, strings.Contains(out, tt.line))
		})
	}
}
