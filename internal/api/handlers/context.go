package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/mux"

	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/brain"
	"github.com/xieerduoyishengzhidi/pentosh-brain/internal/contracts"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/logger"
	"github.com/xieerduoyishengzhidi/pentosh-brain/pkg/redis"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// latestCacheTTL is short: a new artifact appears at most once per run and
// readers tolerate a minute of staleness.
const latestCacheTTL = time.Minute

// ContextHandler serves written context artifacts.
// SSOT: context API handlers live only in this struct.
type ContextHandler struct {
	writer *brain.Writer
	cache  *redis.Cache
	logger *logger.Logger
}

// NewContextHandler creates a new context handler
func NewContextHandler(writer *brain.Writer, cache *redis.Cache, log *logger.Logger) *ContextHandler {
	return &ContextHandler{
		writer: writer,
		cache:  cache,
		logger: log,
	}
}

// GetLatest returns the most recent context artifact
// GET /api/context/latest
func (h *ContextHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cached contracts.DailyContext
	if hit, err := h.cache.Get(ctx, "context:latest", &cached); err == nil && hit {
		respondJSON(w, http.StatusOK, &cached)
		return
	}

	dc, err := h.writer.Latest()
	if err != nil {
		h.logger.WithError(err).Warn("No latest context available")
		respondError(w, http.StatusNotFound, "No context artifacts available")
		return
	}

	if err := h.cache.Set(ctx, "context:latest", dc, latestCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache latest context")
	}

	respondJSON(w, http.StatusOK, dc)
}

// GetByDate returns the context artifact for one date
// GET /api/context/{date}
func (h *ContextHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if !datePattern.MatchString(date) {
		respondError(w, http.StatusBadRequest, "Date must be YYYY-MM-DD")
		return
	}

	dc, err := h.writer.Read(date)
	if err != nil {
		respondError(w, http.StatusNotFound, "No context artifact for "+date)
		return
	}

	respondJSON(w, http.StatusOK, dc)
}

// GetSignals returns only the signal vector of the latest context
// GET /api/signals
func (h *ContextHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	dc, err := h.writer.Latest()
	if err != nil {
		respondError(w, http.StatusNotFound, "No context artifacts available")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":             dc.Date,
		"symbol":           dc.Symbol,
		"pentosh1_signals": dc.Signals,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
