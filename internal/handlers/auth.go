package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskhub/taskhub/internal/auth"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Auth *auth.Service
}

var validate = validator.New()

// ==========================
// Register
// ==========================

// Register creates a new user from a username/password pair.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required,min=1,max=100"`
		Password string `json:"password" validate:"required,min=1,max=72"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(input); err != nil {
		JSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	_, err := h.Auth.Register(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUser) {
			JSONError(w, "username already registered", http.StatusBadRequest)
			return
		}
		slog.Error("register failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]string{"message": "user created successfully"}, http.StatusOK)
}

// ==========================
// Token (login)
// ==========================

// Token verifies the credentials and returns a bearer access token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(input); err != nil {
		JSONError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.Auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			JSONError(w, "incorrect username or password", http.StatusUnauthorized)
			return
		}
		slog.Error("login failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	}, http.StatusOK)
}

// ==========================
// Logout
// ==========================

// Logout is a stateless acknowledgment: tokens expire on their own and there
// is no revocation store.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	JSON(w, map[string]string{"message": "logout successful"}, http.StatusOK)
}
