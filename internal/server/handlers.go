// Package server exposes pattern alignment over HTTP: callers POST a
// pattern and a text, and get back the edit cost, the rendered diff, the
// chunk structure, and any capture spans.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coregx/fuzzyre"
	"github.com/coregx/fuzzyre/align"
	"github.com/coregx/fuzzyre/diff"
	"github.com/coregx/fuzzyre/graph"
)

// maxCachedPatterns bounds the compiled-pattern cache. When full, the
// whole cache is dropped rather than tracking recency; repeated patterns
// dominate real traffic and recompilation is cheap.
const maxCachedPatterns = 256

// Handler holds the HTTP handlers for the alignment API.
type Handler struct {
	config fuzzyre.Config
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]*fuzzyre.Regex
}

// NewHandler creates a Handler that compiles patterns with the given
// configuration.
func NewHandler(config fuzzyre.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		config: config,
		logger: logger,
		cache:  make(map[string]*fuzzyre.Regex),
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/match", h.handleMatch)
}

type matchRequest struct {
	Pattern string `json:"pattern"`
	Text    string `json:"text"`
}

type matchResponse struct {
	Pattern  string         `json:"pattern"`
	Cost     int            `json:"cost"`
	Exact    bool           `json:"exact"`
	Diff     string         `json:"diff"`
	Chunks   []diff.Chunk   `json:"chunks"`
	Captures [][]align.Span `json:"captures"`
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Pattern == "" && req.Text == "" {
		writeError(w, http.StatusBadRequest, "pattern and text are both empty")
		return
	}

	re, err := h.compile(req.Pattern)
	if err != nil {
		status := http.StatusBadRequest
		if !isPatternError(err) {
			status = http.StatusInternalServerError
		}
		h.logger.Warn("pattern rejected", "pattern", req.Pattern, "error", err)
		writeError(w, status, err.Error())
		return
	}

	res, err := re.Align(req.Text)
	if err != nil {
		h.logger.Error("alignment failed", "pattern", req.Pattern, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Debug("aligned",
		"pattern", req.Pattern,
		"text_len", len(req.Text),
		"cost", res.Cost,
	)

	writeJSON(w, http.StatusOK, matchResponse{
		Pattern:  req.Pattern,
		Cost:     res.Cost,
		Exact:    res.IsExact(),
		Diff:     res.Diff(),
		Chunks:   res.Chunks(),
		Captures: res.Captures,
	})
}

// compile returns a cached compilation of pattern, compiling on miss.
func (h *Handler) compile(pattern string) (*fuzzyre.Regex, error) {
	h.mu.Lock()
	re, ok := h.cache[pattern]
	h.mu.Unlock()
	if ok {
		return re, nil
	}

	re, err := fuzzyre.CompileWithConfig(pattern, h.config)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	if len(h.cache) >= maxCachedPatterns {
		h.cache = make(map[string]*fuzzyre.Regex)
	}
	h.cache[pattern] = re
	h.mu.Unlock()
	return re, nil
}

func isPatternError(err error) bool {
	var ce *graph.CompileError
	return errors.As(err, &ce)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"message": message,
		},
	})
}
