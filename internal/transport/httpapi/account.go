package httpapi

import (
	"net/http"

	domprov "github.com/nearserve/nearserve/internal/domain/provider"
	"github.com/nearserve/nearserve/internal/metrics"
	accountuc "github.com/nearserve/nearserve/internal/usecase/account"
)

type registerRequest struct {
	Name     string        `json:"name"`
	Phone    string        `json:"phone"`
	Service  string        `json:"service"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Bio      string        `json:"bio"`
	Website  string        `json:"website"`
	Location *locationView `json:"location"`
}

// handleRegister handles POST /api/v1/providers.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	in := accountuc.RegisterInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Service:  req.Service,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Website:  req.Website,
	}
	if req.Location != nil {
		in.Location = &domprov.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
		}
	}

	p, err := s.account.Register(r.Context(), in)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, r, err, CodeRegistrationError)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "registration successful, check your email for the verification code",
		"provider": providerToView(&p),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin handles POST /api/v1/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	sess, err := s.account.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"token":    sess.Token,
		"provider": providerToView(&sess.Provider),
	})
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// handleVerifyEmail handles POST /api/v1/auth/verify-email.
func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	if err := s.account.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "email verified",
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// handleForgotPassword handles POST /api/v1/auth/forgot-password.
func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	if err := s.account.RequestPasswordReset(r.Context(), req.Email); err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	// Same response whether or not the account exists.
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "if the email is registered, a reset code has been sent",
	})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// handleResetPassword handles POST /api/v1/auth/reset-password.
func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid request body")
		return
	}

	if err := s.account.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		s.handleDomainError(w, r, err, CodeInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password updated",
	})
}
