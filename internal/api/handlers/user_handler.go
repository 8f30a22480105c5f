package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/isdelr/card-binder-be/internal/auth"
	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/models"
	"github.com/isdelr/card-binder-be/internal/services"
	"github.com/isdelr/card-binder-be/internal/session"
	"github.com/isdelr/card-binder-be/internal/validator"
	"github.com/rs/zerolog/log"
)

// SessionStore is the slice of the session store the handlers need.
type SessionStore interface {
	Establish(username string) (session.Session, error)
	Current() (string, error)
	Clear() error
}

// UserHandler handles HTTP requests for registration and login.
type UserHandler struct {
	service  services.UserServiceProvider
	sessions SessionStore
	events   services.EventServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, sessions SessionStore, events services.EventServiceProvider) *UserHandler {
	return &UserHandler{service: service, sessions: sessions, events: events}
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload models.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validator.GetValidator().Struct(payload); err != nil {
		http.Error(w, "Invalid registration details: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUser) {
			http.Error(w, "Username already exists. Try another one.", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	_ = h.events.CreateEvent(r.Context(), "user.register", "Account created", user.Username)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// Login handles user authentication. A successful login establishes the
// session handoff token consumed by subsequent collection operations.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload models.AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validator.GetValidator().Struct(payload); err != nil {
		http.Error(w, "Invalid login details", http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		// Unknown user and wrong password get the same response.
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	sess, err := h.sessions.Establish(user.Username)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to establish session")
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}

	_ = h.events.CreateEvent(r.Context(), "user.login", "Logged in", user.Username)

	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    sess.Token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": sess.Token,
		"user":  user,
	})
}

// Logout clears the session. Logging out without a session is not an error.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
		http.Error(w, "Failed to clear session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

// GetMe retrieves the currently logged-in user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve session user from context")
		http.Error(w, "Could not retrieve user from session", http.StatusInternalServerError)
		return
	}

	user, err := h.service.GetUserByUsername(r.Context(), username)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Session user not found in DB")
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
