package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
	profileuc "github.com/nearserve/nearserve/internal/usecase/profile"
)

type updateProfileRequest struct {
	Name     *string       `json:"name"`
	Phone    *string       `json:"phone"`
	Service  *string       `json:"service"`
	Bio      *string       `json:"bio"`
	Website  *string       `json:"website"`
	Location *locationView `json:"location"`
}

// handleUpdateProfile handles PUT /api/v1/profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	in := profileuc.UpdateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Service: req.Service,
		Bio:     req.Bio,
		Website: req.Website,
	}
	if req.Location != nil {
		in.Location = &domprov.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	p, err := s.profile.Update(r.Context(), claims.ProviderID, in)
	if err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"provider": providerToView(&p),
	})
}

// handleAddPhotos handles POST /api/v1/profile/photos (multipart form,
// field name "photos").
func (s *Server) handleAddPhotos(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}
	if !s.photosEnabled {
		writeError(w, http.StatusServiceUnavailable, CodeInternalError, "photo storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid multipart body or upload too large")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File["photos"]
	uploads := make([]profileuc.Upload, 0, len(files))
	opened := make([]interface{ Close() error }, 0, len(files))
	defer func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}()
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "unreadable upload")
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, profileuc.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	p, err := s.profile.AddPhotos(r.Context(), claims.ProviderID, uploads)
	if err != nil {
		s.handleDomainError(w, r, err, CodeUploadError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"provider": providerToView(&p),
	})
}

// handleDeletePhoto handles DELETE /api/v1/profile/photos/{key}. The key is
// the object key and may contain slashes.
func (s *Server) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "authentication required")
		return
	}
	if !s.photosEnabled {
		writeError(w, http.StatusServiceUnavailable, CodeInternalError, "photo storage is not configured")
		return
	}

	key := chi.URLParam(r, "*")
	if key == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "photo key is required")
		return
	}

	p, err := s.profile.DeletePhoto(r.Context(), claims.ProviderID, key)
	if err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"provider": providerToView(&p),
	})
}
