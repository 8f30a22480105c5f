package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/card-binder-be/internal/auth"
	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/models"
	"github.com/isdelr/card-binder-be/internal/services"
	"github.com/isdelr/card-binder-be/internal/validator"
	"github.com/rs/zerolog/log"
)

// CollectionHandler handles HTTP requests for a user's card collection.
type CollectionHandler struct {
	service services.CollectionServiceProvider
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service services.CollectionServiceProvider) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// Acquire handles adding a picked search result to the collection.
func (h *CollectionHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from session", http.StatusInternalServerError)
		return
	}

	var payload models.AcquirePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validator.GetValidator().Struct(payload); err != nil {
		http.Error(w, "Missing selection label", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Acquire(r.Context(), username, payload.Label)
	if err != nil {
		h.writeAcquireError(w, r, username, payload.Label, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// writeAcquireError maps pipeline failures onto HTTP statuses. Every
// failure is recoverable; the caller is expected to show a message and let
// the user retry.
func (h *CollectionHandler) writeAcquireError(w http.ResponseWriter, r *http.Request, username, label string, err error) {
	switch {
	case errors.Is(err, common.ErrMalformedSelection):
		http.Error(w, "Selection could not be understood", http.StatusBadRequest)
	case errors.Is(err, common.ErrPriceUnresolved):
		http.Error(w, "Could not retrieve price data for the selected card", http.StatusUnprocessableEntity)
	case errors.Is(err, common.ErrCatalogUnavailable):
		http.Error(w, "Card catalog unavailable", http.StatusBadGateway)
	case errors.Is(err, common.ErrDuplicateEntry):
		http.Error(w, "Card is already in the collection", http.StatusConflict)
	case errors.Is(err, common.ErrStorageUnavailable):
		http.Error(w, "Collection storage unavailable", http.StatusServiceUnavailable)
	default:
		log.Error().Err(err).Str("username", username).Str("label", label).Msg("Failed to acquire card")
		http.Error(w, "Failed to acquire card", http.StatusInternalServerError)
	}
}

// List handles retrieving the user's collection.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from session", http.StatusInternalServerError)
		return
	}

	entries, err := h.service.ListForUser(r.Context(), username)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to list collection")
		http.Error(w, "Collection storage unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// Remove handles deleting the user's entries matching a card name. Removing
// a name the user does not own is a no-op.
func (h *CollectionHandler) Remove(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from session", http.StatusInternalServerError)
		return
	}

	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	removed, err := h.service.Remove(r.Context(), username, name)
	if err != nil {
		log.Error().Err(err).Str("username", username).Str("name", name).Msg("Failed to remove card")
		http.Error(w, "Collection storage unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"removed": removed})
}
