package models

// Prompt templates for the two pipeline stages. Each template has exactly
// one %s slot that is filled verbatim with the stage's context text.
const (
	// ResearchSummaryPrompt condenses a paper into diagram-relevant facts.
	ResearchSummaryPrompt = `From the given passage, produce a structured very concise summary that contains only the most relevant:
- Entities (people, objects, systems, concepts)
- Relationships (actions, dependencies, sequences, connections)
- Processes (steps, workflows, interactions)

Focus on information that would be important for creating a flowchart or Mermaid diagram.

Text: %s`

	// StorySummaryPrompt condenses a narrative passage into five fixed lines.
	StorySummaryPrompt = `You are given a short story or narrative passage. Produce a concise, story-focused summary aimed at diagramming the narrative. Provide five short sections, each as a single-line bullet:

CHARACTERS: comma-separated list of main characters (1-3 words each)
RELATIONSHIPS: short phrases describing key relationships (e.g., "Alice -> Bob: mentor")
LOCATIONS: important settings (comma-separated)
TIMELINE: 4-8 short event phrases in chronological order (comma-separated)
RESOLUTION: one short sentence describing the ending or outcome

Output only these five lines (no extra text, no markdown). Example:
CHARACTERS: Alice, Bob
RELATIONSHIPS: Alice -> Bob: collaborator
LOCATIONS: Paris, Berlin
TIMELINE: Meeting in Paris, Decision about project, Travel to Berlin, Update sent
RESOLUTION: The team agrees to continue work remotely

Story content: %s`

	// ResearchDiagramPrompt turns a structured summary into Mermaid code.
	ResearchDiagramPrompt = `Generate a well-structured Mermaid flowchart code from the following text summary.

Requirements:
1. Start with EXACTLY: flowchart TD
2. Create meaningful node IDs (A, B, C... or descriptive names)
3. Use appropriate node shapes:
   - [Text] for processes/actions
   - (Text) for start/end points
   - {{Text}} for decisions/conditionals
   - [[Text]] for subroutines
4. Add clear edge labels using |label text| syntax
5. For connections, use ONLY: --> or -->|label|
6. NO quotes around labels
7. NO extra prose: output ONLY the Mermaid diagram lines (no markdown fences, no commentary)
8. Ensure every node referenced in connections is defined

Text Summary:
%s

Generate only valid Mermaid code (no explanations):`

	// StoryDiagramPrompt turns a story summary into a compact Mermaid flowchart.
	StoryDiagramPrompt = `Produce a concise Mermaid flowchart representing the story. Rules:

- Start output with: flowchart TD
- Use node types:
  * A(Character) for characters
  * A[Event] for events (timeline)
  * A{{Decision}} for key choices or conflicts
  * A[[Location]] for places
  * A((Outcome)) for final resolution
- Keep labels short (1-4 words)
- Use node IDs A..Z
- Connect events in chronological order, and link characters to the events they participate in
- Output ONLY the mermaid diagram lines (no extra text or markdown)

Prefer a compact diagram (8-14 nodes). Based on the summary below, generate the mermaid code:
%s`
)
