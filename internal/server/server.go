package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"diagram-gen/internal/models"
	"diagram-gen/internal/render"
	"diagram-gen/internal/store"
)

const (
	defaultRequestTimeout = 120 * time.Second
	defaultRunsLimit      = 20
)

// Runner is the pipeline surface the HTTP handlers need; the concrete
// implementation is *pipeline.Pipeline.
type Runner interface {
	FromDocument(ctx context.Context, path, outputFile string) (*models.Result, error)
	FromText(ctx context.Context, text, outputFile string) (*models.Result, error)
}

// RunLister lists recorded pipeline runs; the concrete implementation is
// *store.History. A nil RunLister means run history is not configured.
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]store.Run, error)
}

type Server struct {
	pipe    Runner
	history RunLister
	timeout time.Duration
}

func New(pipe Runner, history RunLister, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Server{pipe: pipe, history: history, timeout: timeout}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"error":               "Not Found",
			"message":             "Requested URL was not found on the server.",
			"available_endpoints": []string{"/", "/health", "/api/process-pdf", "/api/process-text", "/api/runs"},
		})
	})

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Post("/api/process-pdf", s.handleProcessPDF)
	r.Post("/api/process-text", s.handleProcessText)
	r.Get("/api/runs", s.handleRuns)
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "diagram-gen backend",
		"endpoints": map[string]string{
			"/api/process-pdf":  "POST (upload PDF file)",
			"/api/process-text": `POST (send raw text as JSON {"text": "..."})`,
			"/api/runs":         "GET (recent run history)",
			"/health":           "GET (health check)",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "Run history is not configured")
		return
	}

	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.history.RecentRuns(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list runs")
		writeError(w, http.StatusInternalServerError, "Listing runs failed: "+err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

func (s *Server) handleProcessPDF(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "File must be a PDF")
		return
	}

	tempPDF, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}
	defer os.Remove(tempPDF.Name())

	if _, err := io.Copy(tempPDF, file); err != nil {
		tempPDF.Close()
		writeError(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}
	tempPDF.Close()

	tempHTML := filepath.Join(os.TempDir(), filepath.Base(tempPDF.Name())+".html")
	defer os.Remove(tempHTML)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.pipe.FromDocument(ctx, tempPDF.Name(), tempHTML)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, processResponse(result, tempHTML))
}

func (s *Server) handleProcessText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text *string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Text == nil {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}
	if strings.TrimSpace(*payload.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text must be a non-empty string")
		return
	}

	tempFile, err := os.CreateTemp("", "text-*.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}
	tempHTML := tempFile.Name()
	tempFile.Close()
	defer os.Remove(tempHTML)

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.pipe.FromText(ctx, *payload.Text, tempHTML)
	if err != nil {
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, processResponse(result, tempHTML))
}

// processResponse mirrors the original service's reply shape. The display
// code is re-read from the artifact when one was written; the raw pipeline
// output is returned alongside.
func processResponse(result *models.Result, artifactPath string) map[string]interface{} {
	display := result.Mermaid
	if data, err := os.ReadFile(artifactPath); err == nil {
		if code := render.ExtractMermaidBlock(string(data)); code != "" {
			display = code
		}
	}

	return map[string]interface{}{
		"success":      true,
		"mermaid_code": display,
		"raw_mermaid":  result.Mermaid,
		"summary":      result.Summary,
		"stats": map[string]int{
			"text_length":    result.TextLength,
			"summary_length": result.SummaryLength,
			"mermaid_length": result.MermaidLength,
		},
	}
}

func writePipelineError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, models.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	log.Error().Err(err).Msg("Pipeline request failed")
	writeError(w, status, "Processing failed: "+err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}
