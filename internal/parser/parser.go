package parser

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"diagram-gen/internal/models"
)

// noTextPlaceholder stands in for pages with no extractable text so page
// numbering stays aligned with the source document.
const noTextPlaceholder = "[No text found]"

// LoadText wraps raw input text as a single synthetic page.
func LoadText(raw string) ([]models.Page, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: text must be a non-empty string", models.ErrInvalidInput)
	}
	return []models.Page{{Number: 1, Text: raw}}, nil
}

// LoadDocument extracts page-level text from a document file, dispatching on
// the file extension. Slides and sheets count as pages. Fails with
// models.ErrExtraction when every page yields empty or whitespace-only text.
func LoadDocument(filePath string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return parsePDF(filePath)
	case ".docx":
		return parseDOCX(filePath)
	case ".pptx":
		return parsePPTX(filePath)
	case ".xlsx":
		return parseXLSX(filePath)
	case ".ods":
		return parseODS(filePath)
	case ".txt":
		return parseText(filePath)
	default:
		return nil, fmt.Errorf("%w: unsupported file format: %s", models.ErrInvalidInput, ext)
	}
}

// JoinPages concatenates page text into the combined pipeline input.
func JoinPages(pages []models.Page) string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}

func parsePDF(filePath string) ([]models.Page, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var texts []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		texts = append(texts, pageText)
	}
	return pagesFromTexts(texts, filePath)
}

func parseDOCX(filePath string) ([]models.Page, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return pagesFromTexts([]string{content}, filePath)
}

func parsePPTX(filePath string) ([]models.Page, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	for _, file := range f.File {
		if !strings.HasPrefix(file.Name, "ppt/slides/slide") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		texts = append(texts, extractTextFromXML(string(data)))
	}
	return pagesFromTexts(texts, filePath)
}

func parseXLSX(filePath string) ([]models.Page, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		texts = append(texts, text.String())
	}
	return pagesFromTexts(texts, filePath)
}

func parseODS(filePath string) ([]models.Page, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		texts = append(texts, text.String())
	}
	return pagesFromTexts(texts, filePath)
}

func parseText(filePath string) ([]models.Page, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return pagesFromTexts([]string{string(data)}, filePath)
}

// pagesFromTexts numbers the given per-page texts. The emptiness check runs
// before placeholder substitution; placeholders never count as text.
func pagesFromTexts(texts []string, filePath string) ([]models.Page, error) {
	hasText := false
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			hasText = true
			break
		}
	}
	if !hasText {
		return nil, fmt.Errorf("%w from the document: %s", models.ErrExtraction, filePath)
	}

	pages := make([]models.Page, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			t = noTextPlaceholder
		}
		pages[i] = models.Page{Number: i + 1, Text: t}
	}
	return pages, nil
}

func extractTextFromXML(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<a:t>")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		endIdx := strings.Index(part, "</a:t>")
		if endIdx >= 0 {
			text.WriteString(part[:endIdx] + " ")
		}
	}
	return text.String()
}
