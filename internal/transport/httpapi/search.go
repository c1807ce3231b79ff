package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nearserve/nearserve/internal/domain/search"
	"github.com/nearserve/nearserve/internal/metrics"
)

type searchRequest struct {
	Service   string   `json:"service"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"` // miles
}

// handleSearch handles POST /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	resp, err := s.search.Search(r.Context(), search.Request{
		Service:     req.Service,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		RadiusMiles: req.Radius,
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, r, err, CodeSearchError)
		return
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	metrics.SearchResults.Observe(float64(len(resp.Providers)))

	writeJSON(w, http.StatusOK, searchResponseToView(resp))
}

// handleSuggestions handles GET /api/v1/suggestions.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, CodeValidationError, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.suggest.Suggest(r.Context(), query, limit)
	if err != nil {
		metrics.SuggestionRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, r, err, CodeSuggestionsError)
		return
	}

	metrics.SuggestionRequestsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"suggestions": suggestionsToView(entries),
	})
}
