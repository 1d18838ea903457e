package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"diagram-gen/internal/helper"
	"diagram-gen/internal/llmservice"
	"diagram-gen/internal/mermaid"
	"diagram-gen/internal/models"
	"diagram-gen/internal/parser"
	"diagram-gen/internal/prompt"
	"diagram-gen/internal/render"
	"diagram-gen/internal/store"
)

// Pipeline runs the document -> summary -> mermaid sequence. Each stage
// blocks on the previous one; a failed stage aborts the whole run and no
// partial result is returned.
type Pipeline struct {
	summaryLLM llmservice.Completer
	diagramLLM llmservice.Completer
	style      prompt.Style
	db         *bun.DB // nil disables run history
}

func New(summaryLLM, diagramLLM llmservice.Completer, style prompt.Style, db *bun.DB) *Pipeline {
	return &Pipeline{
		summaryLLM: summaryLLM,
		diagramLLM: diagramLLM,
		style:      style,
		db:         db,
	}
}

// FromDocument extracts text from the document at path and runs the full
// pipeline. outputFile, when non-empty, receives the HTML artifact.
func (p *Pipeline) FromDocument(ctx context.Context, path, outputFile string) (*models.Result, error) {
	pages, err := parser.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("document text extraction failed: %w", err)
	}
	log.Info().Int("pages", len(pages)).Str("file", path).Msg("Extracted document text")

	kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return p.run(ctx, pages, kind, filepath.Base(path), outputFile)
}

// FromText runs the full pipeline on raw input text.
func (p *Pipeline) FromText(ctx context.Context, text, outputFile string) (*models.Result, error) {
	pages, err := parser.LoadText(text)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, pages, "text", "", outputFile)
}

func (p *Pipeline) run(ctx context.Context, pages []models.Page, sourceKind, sourceName, outputFile string) (*models.Result, error) {
	inputText := parser.JoinPages(pages)

	summaryPrompt, err := prompt.Build(prompt.StageSummary, p.style, inputText)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}
	summary, err := p.summaryLLM.Complete(ctx, summaryPrompt)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}
	log.Info().Int("summary_length", len(summary)).Msg("Generated summary")

	diagramPrompt, err := prompt.Build(prompt.StageDiagram, p.style, summary)
	if err != nil {
		return nil, fmt.Errorf("mermaid code generation failed: %w", err)
	}
	reply, err := p.diagramLLM.Complete(ctx, diagramPrompt)
	if err != nil {
		return nil, fmt.Errorf("mermaid code generation failed: %w", err)
	}
	mermaidCode, err := mermaid.Normalize(reply)
	if err != nil {
		return nil, fmt.Errorf("mermaid code generation failed: %w", err)
	}
	log.Info().Int("mermaid_length", len(mermaidCode)).Msg("Generated mermaid code")

	result := &models.Result{
		Summary:       summary,
		Mermaid:       mermaidCode,
		TextLength:    len(inputText),
		SummaryLength: len(summary),
		MermaidLength: len(mermaidCode),
	}

	if outputFile != "" {
		if err := render.WriteHTML(outputFile, summary, mermaidCode); err != nil {
			log.Warn().Err(err).Str("file", outputFile).Msg("Failed to save output file")
		} else {
			result.OutputPath = outputFile
			log.Info().Str("file", outputFile).Msg("Saved HTML artifact")
		}
	}

	if p.db != nil {
		id, err := helper.GenerateUUID()
		if err == nil {
			err = store.SaveRun(ctx, p.db, id, sourceKind, sourceName, result)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Failed to record run")
		}
	}

	return result, nil
}
