// Package httpapi is the chi HTTP transport for the marketplace API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nearserve/nearserve/internal/domain"
	logpkg "github.com/nearserve/nearserve/internal/logger"
	accountuc "github.com/nearserve/nearserve/internal/usecase/account"
	directoryuc "github.com/nearserve/nearserve/internal/usecase/directory"
	healthuc "github.com/nearserve/nearserve/internal/usecase/health"
	profileuc "github.com/nearserve/nearserve/internal/usecase/profile"
	searchuc "github.com/nearserve/nearserve/internal/usecase/search"
	suggestuc "github.com/nearserve/nearserve/internal/usecase/suggest"
)

// Server holds the use case services behind the HTTP surface.
type Server struct {
	search    *searchuc.Service
	suggest   *suggestuc.Service
	account   *accountuc.Service
	profile   *profileuc.Service
	directory *directoryuc.Service
	health    *healthuc.Service
	verifier  TokenVerifier
	logger    *zap.Logger

	maxUploadBytes int64
	photosEnabled  bool

	errorHandlers []errorHandler
}

// Options carries the optional server knobs.
type Options struct {
	MaxUploadBytes int64
	PhotosEnabled  bool
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	account *accountuc.Service,
	profile *profileuc.Service,
	directory *directoryuc.Service,
	health *healthuc.Service,
	verifier TokenVerifier,
	logger *zap.Logger,
	opts Options,
) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	s := &Server{
		search:         search,
		suggest:        suggest,
		account:        account,
		profile:        profile,
		directory:      directory,
		health:         health,
		verifier:       verifier,
		logger:         logger,
		maxUploadBytes: opts.MaxUploadBytes,
		photosEnabled:  opts.PhotosEnabled,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrMissingCoordinates, http.StatusBadRequest, CodeMissingCoordinates),
		sentinelHandler(domain.ErrMissingService, http.StatusBadRequest, CodeMissingService),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, CodeInvalidCoordinates),
		sentinelHandler(domain.ErrRadiusTooLarge, http.StatusBadRequest, CodeRadiusTooLarge),
		sentinelHandler(domain.ErrInvalidProviderID, http.StatusBadRequest, CodeInvalidProviderID),
		sentinelHandler(domain.ErrTooManyIDs, http.StatusBadRequest, CodeTooManyIDs),
		sentinelHandler(domain.ErrProviderNotFound, http.StatusNotFound, CodeProviderNotFound),
		sentinelHandler(domain.ErrDuplicateEntry, http.StatusConflict, CodeDuplicateEntry),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials),
		sentinelHandler(domain.ErrAccountInactive, http.StatusForbidden, CodeAccountInactive),
		sentinelHandler(domain.ErrAccountBlocked, http.StatusForbidden, CodeAccountBlocked),
		sentinelHandler(domain.ErrEmailNotVerified, http.StatusForbidden, CodeEmailNotVerified),
		sentinelHandler(domain.ErrEmailAlreadyVerified, http.StatusConflict, CodeEmailAlreadyVerified),
		sentinelHandler(domain.ErrInvalidCode, http.StatusBadRequest, CodeInvalidCode),
		sentinelHandler(domain.ErrCodeExpired, http.StatusBadRequest, CodeCodeExpired),
		sentinelHandler(domain.ErrPhotoLimit, http.StatusBadRequest, CodePhotoLimitExceeded),
		sentinelHandler(domain.ErrPhotoNotFound, http.StatusNotFound, CodePhotoNotFound),
	}
	return s
}

// RegisterRoutes mounts all API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Get("/suggestions", s.handleSuggestions)

		r.Post("/providers", s.handleRegister)
		r.Get("/providers/{id}", s.handleGetProvider)
		r.Post("/providers/lookup", s.handleLookup)

		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/verify-email", s.handleVerifyEmail)
		r.Post("/auth/forgot-password", s.handleForgotPassword)
		r.Post("/auth/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(s.verifier))
			r.Put("/profile", s.handleUpdateProfile)
			r.Post("/profile/photos", s.handleAddPhotos)
			r.Delete("/profile/photos/*", s.handleDeletePhoto)
		})
	})

	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleDomainError maps a use case error onto the response envelope.
// fallbackCode covers errors no handler claims, reported as HTTP 500.
// Logs through the request-scoped logger when the middleware installed one.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallbackCode, "internal error")
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
