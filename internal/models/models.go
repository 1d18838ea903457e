package models

// Page represents the extracted text of one source page. Slides and sheets
// are counted as pages for non-paginated formats.
type Page struct {
	Number int
	Text   string
}

// Result is the outcome of one pipeline run.
type Result struct {
	Summary       string `json:"summary"`
	Mermaid       string `json:"mermaid_code"`
	TextLength    int    `json:"text_length"`
	SummaryLength int    `json:"summary_length"`
	MermaidLength int    `json:"mermaid_length"`
	OutputPath    string `json:"output_path,omitempty"`
}
