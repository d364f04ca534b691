// Package httpapi is the invocation surface for the analysis
// pipeline: authenticated JSON over HTTP, with acquisition and
// persistence handled by their own collaborators.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cognicore/propdoc/internal/fetch"
	"github.com/cognicore/propdoc/pkg/propdoc"
	"github.com/cognicore/propdoc/pkg/propdoc/fields"
	"github.com/cognicore/propdoc/pkg/propdoc/internalerr"
	"github.com/cognicore/propdoc/pkg/propdoc/store"
)

// Server handles the analysis API.
type Server struct {
	analyzer *propdoc.Analyzer
	store    store.Store
	fetcher  *fetch.Fetcher
	tokens   map[string]struct{}
	logger   *slog.Logger
	maxBody  int64
}

// Options configures a Server.
type Options struct {
	Analyzer   *propdoc.Analyzer
	Store      store.Store
	Fetcher    *fetch.Fetcher
	AuthTokens []string // empty means open access
	Logger     *slog.Logger
	MaxBody    int64
}

// NewServer creates a Server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxBody := opts.MaxBody
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	tokens := make(map[string]struct{}, len(opts.AuthTokens))
	for _, t := range opts.AuthTokens {
		tokens[t] = struct{}{}
	}
	return &Server{
		analyzer: opts.Analyzer,
		store:    opts.Store,
		fetcher:  opts.Fetcher,
		tokens:   tokens,
		logger:   logger,
		maxBody:  maxBody,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /analyze", s.auth(s.handleAnalyze))
	mux.HandleFunc("GET /analyses/{id}", s.auth(s.handleGetAnalysis))
	mux.HandleFunc("GET /users/{id}/analyses", s.auth(s.handleListAnalyses))
}

// auth rejects requests without a known bearer token before any work
// happens. With no tokens configured the API is open.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(s.tokens) > 0 {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				s.writeError(w, http.StatusUnauthorized, internalerr.ErrUnauthenticated)
				return
			}
			if _, known := s.tokens[token]; !known {
				s.writeError(w, http.StatusUnauthorized, internalerr.ErrUnauthenticated)
				return
			}
		}
		next(w, r)
	}
}

type analyzeRequest struct {
	Text     string `json:"text"`
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	Link     string `json:"link"`
	UserID   string `json:"user_id"`
}

type analyzeResponse struct {
	ID     string                  `json:"id,omitempty"`
	Result *propdoc.AnalysisResult `json:"result,omitempty"`
	Fields *fields.FieldSet        `json:"fields,omitempty"`
	Simple *fields.SimpleFields    `json:"simple,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	switch {
	case req.Text != "":
		s.analyzeText(w, r, req)
	case req.FileURL != "":
		s.analyzeFetched(w, r, req, "upload")
	case req.Link != "":
		s.analyzeFetched(w, r, req, "link")
	default:
		// Empty text is a valid degenerate document, not an error.
		s.analyzeText(w, r, req)
	}
}

func (s *Server) analyzeText(w http.ResponseWriter, r *http.Request, req analyzeRequest) {
	result, err := s.runPipeline(req.Text)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := analyzeResponse{Result: &result}
	if req.UserID != "" {
		id, err := s.persist(r.Context(), req, "text", result)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.ID = id
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// analyzeFetched serves the upload and link flows: acquire text, run
// the full pipeline for persistence, answer with the fields shape.
func (s *Server) analyzeFetched(w http.ResponseWriter, r *http.Request, req analyzeRequest, source string) {
	if s.fetcher == nil {
		s.writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("%w: no fetcher configured", internalerr.ErrExtraction))
		return
	}

	var text string
	var err error
	if source == "upload" {
		text, err = s.fetcher.FetchFile(r.Context(), req.FileURL, req.FileType)
	} else {
		text, err = s.fetcher.FetchLink(r.Context(), req.Link)
	}
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	result, err := s.runPipeline(text)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := analyzeResponse{Fields: &result.Fields}
	if result.Fields.Empty() {
		sf := fieldsFallback(s.analyzer, text)
		resp.Simple = sf
	}
	if req.UserID != "" {
		id, err := s.persist(r.Context(), req, source, result)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.ID = id
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func fieldsFallback(a *propdoc.Analyzer, text string) *fields.SimpleFields {
	_, sf := a.AnalyzeFields(text)
	return sf
}

// runPipeline guards the pure pipeline: a fault in any stage becomes
// a generic internal error instead of tearing down the server or
// leaking stack detail.
func (s *Server) runPipeline(text string) (result propdoc.AnalysisResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("analysis pipeline fault", "panic", rec)
			err = errors.New("internal analysis failure")
		}
	}()
	return s.analyzer.Analyze(text), nil
}

func (s *Server) persist(ctx context.Context, req analyzeRequest, source string, result propdoc.AnalysisResult) (string, error) {
	if s.store == nil {
		return "", nil
	}
	rec := store.AnalysisRecord{
		ID:        store.NewID(),
		UserID:    req.UserID,
		Filename:  req.Filename,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Result:    result,
	}
	if err := s.store.SaveAnalysis(ctx, rec); err != nil {
		return "", fmt.Errorf("save analysis: %w", err)
	}
	return rec.ID, nil
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, internalerr.ErrNotFound)
		return
	}
	rec, err := s.store.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, internalerr.ErrNotFound) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recordJSON(rec))
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"analyses": []any{}})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	recs, err := s.store.ListByUser(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]map[string]any, len(recs))
	for i, rec := range recs {
		out[i] = recordJSON(rec)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"analyses": out})
}

func recordJSON(rec store.AnalysisRecord) map[string]any {
	return map[string]any{
		"id":         rec.ID,
		"user_id":    rec.UserID,
		"filename":   rec.Filename,
		"source":     rec.Source,
		"created_at": rec.CreatedAt.Format(time.RFC3339Nano),
		"result":     rec.Result,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError hides internal detail for 5xx answers and logs the cause.
func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
		msg = "internal error"
	}
	s.writeJSON(w, status, map[string]string{"error": msg})
}
