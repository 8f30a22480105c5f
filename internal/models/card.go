package models

import "time"

// CardIdentity is the structured key that disambiguates printings sharing a
// name: (name, set, number). Rarity rides along for display.
type CardIdentity struct {
	Name   string `json:"name"`
	Set    string `json:"set"`
	Number string `json:"number"`
	Rarity string `json:"rarity"`
}

// CatalogEntry is a card record as returned by the external catalog. It is
// produced fresh on every query and never stored.
//
// MarketPrice is nil when the catalog carried no price tier for the
// printing. Callers may display nil as zero, but the distinction is kept so
// a later lookup can attempt re-resolution.
type CatalogEntry struct {
	Name        string   `json:"name"`
	Set         string   `json:"set"`
	Number      string   `json:"number"`
	Rarity      string   `json:"rarity"`
	MarketPrice *float64 `json:"marketPrice,omitempty"`
}

// Identity returns the structured key for this entry.
func (e CatalogEntry) Identity() CardIdentity {
	return CardIdentity{Name: e.Name, Set: e.Set, Number: e.Number, Rarity: e.Rarity}
}

// CollectionEntry is a card a user has acquired, as persisted.
type CollectionEntry struct {
	ID          int64     `json:"id"`
	Username    string    `json:"-"`
	Name        string    `json:"name"`
	Set         string    `json:"set"`
	Number      string    `json:"number"`
	Rarity      string    `json:"rarity"`
	Value       float64   `json:"value"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// AcquirePayload defines the structure for acquisition requests. Label is
// the rendered search-result line the user picked.
type AcquirePayload struct {
	Label string `json:"label" validate:"required"`
}

// SearchResult pairs a catalog entry with its rendered display label. The
// label is what a list widget shows and what comes back in an
// AcquirePayload.
type SearchResult struct {
	Label string       `json:"label"`
	Entry CatalogEntry `json:"entry"`
}

// SearchResponse is the result of one catalog search. SearchID is an opaque
// handle identifying this result set.
type SearchResponse struct {
	SearchID string         `json:"searchId"`
	Results  []SearchResult `json:"results"`
}
