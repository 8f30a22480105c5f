package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/models"
	"github.com/isdelr/card-binder-be/internal/selection"
)

// CatalogSearcher is the slice of the catalog client the collection
// pipeline needs.
type CatalogSearcher interface {
	Search(ctx context.Context, name, set string) ([]models.CatalogEntry, error)
}

// CollectionServiceProvider defines the interface for collection services.
type CollectionServiceProvider interface {
	Acquire(ctx context.Context, username, label string) (models.CollectionEntry, error)
	ResolveAuthoritative(ctx context.Context, identity models.CardIdentity) (models.CatalogEntry, error)
	ListForUser(ctx context.Context, username string) ([]models.CollectionEntry, error)
	Remove(ctx context.Context, username, name string) (int64, error)
}

// CollectionService provides business logic for a user's card collection.
type CollectionService struct {
	db      *sql.DB
	catalog CatalogSearcher
	events  EventServiceProvider
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(db *sql.DB, catalog CatalogSearcher, events EventServiceProvider) *CollectionService {
	return &CollectionService{db: db, catalog: catalog, events: events}
}

// Acquire runs the full acquisition pipeline for a picked search-result
// label: recover the structured identity, re-fetch the authoritative price
// from the catalog, then persist the entry for the user. The initial search
// results are not trusted for pricing; only the fresh lookup is.
func (s *CollectionService) Acquire(ctx context.Context, username, label string) (models.CollectionEntry, error) {
	identity, err := selection.ParseLabel(label)
	if err != nil {
		return models.CollectionEntry{}, err
	}

	resolved, err := s.ResolveAuthoritative(ctx, identity)
	if err != nil {
		return models.CollectionEntry{}, err
	}

	value := 0.0
	if resolved.MarketPrice != nil {
		value = *resolved.MarketPrice
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO cards (name, set_name, card_number, rarity, value, username) VALUES (?, ?, ?, ?, ?, ?)",
		identity.Name, identity.Set, identity.Number, identity.Rarity, value, username)
	if err != nil {
		if isUniqueViolation(err) {
			return models.CollectionEntry{}, common.ErrDuplicateEntry
		}
		return models.CollectionEntry{}, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.CollectionEntry{}, err
	}

	entry := models.CollectionEntry{
		ID:       id,
		Username: username,
		Name:     identity.Name,
		Set:      identity.Set,
		Number:   identity.Number,
		Rarity:   identity.Rarity,
		Value:    value,
	}
	_ = s.events.CreateEvent(ctx, "card.acquire",
		fmt.Sprintf("Added %s (%s #%s) at $%.2f", entry.Name, entry.Set, entry.Number, entry.Value), username)
	return entry, nil
}

// ResolveAuthoritative re-queries the catalog scoped to the identity's name
// and set, and scans the fresh results for an exact match on (set, number).
// No exact match fails with common.ErrPriceUnresolved rather than a silent
// zero price; the catalog may have changed between the two queries.
func (s *CollectionService) ResolveAuthoritative(ctx context.Context, identity models.CardIdentity) (models.CatalogEntry, error) {
	results, err := s.catalog.Search(ctx, identity.Name, identity.Set)
	if err != nil {
		return models.CatalogEntry{}, err
	}

	for _, entry := range results {
		if entry.Set == identity.Set && entry.Number == identity.Number {
			return entry, nil
		}
	}
	return models.CatalogEntry{}, fmt.Errorf("%w: %s %s #%s",
		common.ErrPriceUnresolved, identity.Name, identity.Set, identity.Number)
}

// ListForUser retrieves the user's entries in insertion order. A user with
// no entries gets an empty slice, not an error.
func (s *CollectionService) ListForUser(ctx context.Context, username string) ([]models.CollectionEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, set_name, card_number, rarity, value, last_updated FROM cards WHERE username = ? ORDER BY id",
		username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	entries := []models.CollectionEntry{}
	for rows.Next() {
		entry := models.CollectionEntry{Username: username}
		var rarity sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Set, &entry.Number, &rarity, &entry.Value, &entry.LastUpdated); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
		}
		entry.Rarity = rarity.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return entries, nil
}

// Remove deletes all of the user's entries matching name exactly, across
// printings, and returns how many went away. Zero matches is a no-op, not
// an error.
func (s *CollectionService) Remove(ctx context.Context, username, name string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM cards WHERE username = ? AND name = ?", username, name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		_ = s.events.CreateEvent(ctx, "card.remove",
			fmt.Sprintf("Removed %s (%d printing(s))", name, removed), username)
	}
	return removed, nil
}
