package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleGetProvider handles GET /api/v1/providers/{id}.
func (s *Server) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	p, err := s.directory.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"provider": providerToView(&p),
	})
}

type lookupRequest struct {
	IDs []string `json:"ids"`
}

// handleLookup handles POST /api/v1/providers/lookup.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	providers, err := s.directory.Lookup(r.Context(), req.IDs)
	if err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	views := make([]providerView, 0, len(providers))
	for i := range providers {
		views = append(views, providerToView(&providers[i]))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"providers": views,
	})
}
