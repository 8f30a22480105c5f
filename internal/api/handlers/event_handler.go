package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/isdelr/card-binder-be/internal/auth"
	"github.com/isdelr/card-binder-be/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests related to the activity trail.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to get the user's recent activity.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from session", http.StatusInternalServerError)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetRecentEvents(r.Context(), username, limit)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to retrieve events")
		http.Error(w, "Failed to retrieve events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}
