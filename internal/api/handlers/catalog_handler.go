package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/isdelr/card-binder-be/internal/catalog"
	"github.com/isdelr/card-binder-be/internal/models"
	"github.com/isdelr/card-binder-be/internal/selection"
	"github.com/rs/zerolog/log"
)

// CatalogProvider is the slice of the catalog client the handlers need.
type CatalogProvider interface {
	Search(ctx context.Context, name, set string) ([]models.CatalogEntry, error)
	ListSets(ctx context.Context) ([]string, error)
}

// CatalogHandler handles HTTP requests against the external card catalog.
type CatalogHandler struct {
	catalog CatalogProvider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(c CatalogProvider) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Search handles a free-text card search. Each result carries the rendered
// label a list widget shows, alongside the structured entry, and the whole
// set is keyed by an opaque search id.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "Missing 'name' query parameter", http.StatusBadRequest)
		return
	}
	set := r.URL.Query().Get("set")
	if set == "" {
		set = catalog.AllSets
	}

	entries, err := h.catalog.Search(r.Context(), name, set)
	if err != nil {
		log.Warn().Err(err).Str("name", name).Str("set", set).Msg("Catalog search unavailable")
		http.Error(w, "Card catalog unavailable", http.StatusBadGateway)
		return
	}

	resp := models.SearchResponse{
		SearchID: uuid.New().String(),
		Results:  make([]models.SearchResult, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Results = append(resp.Results, models.SearchResult{
			Label: selection.FormatLabel(entry),
			Entry: entry,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListSets handles the request for the set filter options. On catalog
// failure the caller still gets a usable listing holding only the
// "All Sets" sentinel.
func (h *CatalogHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.catalog.ListSets(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("Catalog set listing unavailable, serving sentinel only")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sets)
}
