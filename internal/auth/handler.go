// internal/auth/handler.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"quiz-portal/internal/guard"
	"quiz-portal/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginErrorResponse struct {
	Error             string `json:"error"`
	RemainingAttempts *int   `json:"remaining_attempts,omitempty"`
	Warning           string `json:"warning,omitempty"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	token, attempt, err := h.service.Login(req.Email, req.Password)
	switch {
	case err == nil:
		json.NewEncoder(w).Encode(map[string]string{"token": token})

	case errors.Is(err, guard.ErrBlocked):
		// Distinct from invalid credentials so the client routes the
		// user to password reset instead of retrying.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusLocked)
		json.NewEncoder(w).Encode(loginErrorResponse{
			Error: "Account blocked due to too many failed login attempts. Reset your password to continue.",
		})

	case errors.Is(err, ErrInvalidCredentials):
		resp := loginErrorResponse{Error: "Invalid credentials"}
		if remaining := guard.RemainingAttempts(attempt); remaining <= 2 {
			resp.RemainingAttempts = &remaining
			if remaining > 0 {
				resp.Warning = "Your account will be blocked after further failed attempts."
			} else {
				resp.Warning = "Your account has been blocked. Reset your password to continue."
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(resp)

	default:
		http.Error(w, "Service temporarily unavailable, please retry", http.StatusServiceUnavailable)
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: req.Password,
	}

	if err := h.service.Register(user); err != nil {
		http.Error(w, "Registration failed", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
