package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/logirate/backend/internal/domain"
	"github.com/logirate/backend/internal/middleware"
)

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	First           string `json:"first"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, r, fmt.Errorf("%w: passwords do not match", domain.ErrValidation))
		return
	}

	user, err := s.auth.Register(r.Context(), req.First, req.Surname, req.Email, req.Address, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "registration successful",
		"user":    user,
	})
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// Profile handles GET /auth/profile.
// Requires a bearer token; the user is taken from the verified claims.
func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, domain.ErrUnauthorized)
		return
	}

	user, err := s.auth.Profile(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// forgotPasswordRequest is the body of POST /auth/forgot-password.
type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /auth/forgot-password.
// The response is 202 whether or not the email has an account, so the
// endpoint cannot be used to probe which addresses are registered.
func (s *Server) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}

	writeMessage(w, http.StatusAccepted, "if the email is registered, a reset link has been sent")
}

// resetPasswordRequest is the body of POST /auth/reset-password/{token}.
type resetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword handles POST /auth/reset-password/{token}.
func (s *Server) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		respondError(w, r, fmt.Errorf("%w: passwords do not match", domain.ErrValidation))
		return
	}

	err := s.auth.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		// An unknown token maps to 400, not 404: the token is request
		// content, not a resource path.
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusBadRequest, "invalid or expired reset token")
			return
		}
		respondError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "password has been reset")
}
