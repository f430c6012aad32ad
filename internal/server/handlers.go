package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/pipeline"
	"github.com/desertthunder/castaway/internal/services"
	"github.com/desertthunder/castaway/internal/shared"
)

// Converter is the pipeline surface the HTTP layer depends on.
// *pipeline.Orchestrator satisfies it; tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, req pipeline.Request) (*models.ConversionOutcome, error)
	Summarize(ctx context.Context, req pipeline.Request) (*models.Summary, error)
}

// ConversionHandler implements [Handler] for the conversion service endpoints.
type ConversionHandler struct {
	converter Converter
	searcher  services.Searcher
	logger    *log.Logger
}

// NewConversionHandler creates a handler over the given pipeline and searcher.
func NewConversionHandler(converter Converter, searcher services.Searcher, logger *log.Logger) *ConversionHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ConversionHandler{converter: converter, searcher: searcher, logger: logger}
}

// Routes returns the path patterns this handler serves.
func (h *ConversionHandler) Routes() []string {
	return []string{"/search", "/convert", "/summarize", "/health"}
}

// ServeHTTP dispatches to the endpoint implementations.
func (h *ConversionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/health":
		h.health(w, r)
	case "/search":
		h.post(w, r, h.search)
	case "/convert":
		h.post(w, r, h.convert)
	case "/summarize":
		h.post(w, r, h.summarize)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *ConversionHandler) post(w http.ResponseWriter, r *http.Request, fn func(http.ResponseWriter, *http.Request)) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	fn(w, r)
}

// health reports process liveness. It touches no external service, so it
// succeeds whenever the process is up.
func (h *ConversionHandler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Query        string                `json:"query"`
	ResultsCount int                   `json:"results_count"`
	Results      []models.SearchResult `json:"results"`
}

func (h *ConversionHandler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 10
	}

	results, err := h.searcher.Search(r.Context(), req.Query, req.MaxResults)
	if err != nil {
		h.fail(w, err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:        req.Query,
		ResultsCount: len(results),
		Results:      results,
	})
}

type convertRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (h *ConversionHandler) convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	outcome, err := h.converter.Convert(r.Context(), pipeline.Request{URL: req.URL, Title: req.Title})
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

type summarizeRequest struct {
	URL string `json:"url"`
}

func (h *ConversionHandler) summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	summary, err := h.converter.Summarize(r.Context(), pipeline.Request{URL: req.URL})
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// fail maps a pipeline or search failure to exactly one error response.
func (h *ConversionHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err)
	} else {
		h.logger.Warn("request rejected", "error", err)
	}
	writeError(w, status, err.Error())
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrSearch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
