// Package catalog wraps the external card catalog API. All transport and
// upstream failures are absorbed here and reported as
// common.ErrCatalogUnavailable; raw HTTP errors never cross this boundary.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/models"
	"github.com/rs/zerolog/log"
)

// AllSets is the sentinel set filter meaning "do not restrict by set". It is
// always the first element of a set listing.
const AllSets = "All Sets"

// Client queries the external card catalog.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a new catalog client. apiKey may be empty for anonymous,
// rate-limited access.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Wire types for the catalog's JSON responses.

type priceTier struct {
	Market *float64 `json:"market"`
}

type cardRecord struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Rarity string `json:"rarity"`
	Set    struct {
		Name string `json:"name"`
	} `json:"set"`
	TCGPlayer struct {
		Prices struct {
			Holofoil *priceTier `json:"holofoil"`
			Normal   *priceTier `json:"normal"`
		} `json:"prices"`
	} `json:"tcgplayer"`
}

type cardsResponse struct {
	Data []cardRecord `json:"data"`
}

type setRecord struct {
	Name        string `json:"name"`
	ReleaseDate string `json:"releaseDate"`
}

type setsResponse struct {
	Data []setRecord `json:"data"`
}

// Search looks up cards whose name contains name (case-insensitive), and
// whose set equals set unless set is empty or the AllSets sentinel.
func (c *Client) Search(ctx context.Context, name, set string) ([]models.CatalogEntry, error) {
	query := fmt.Sprintf("name:%q", "*"+name+"*")
	if set != "" && set != AllSets {
		query += fmt.Sprintf(" set.name:%q", set)
	}

	var resp cardsResponse
	if err := c.get(ctx, "/cards", url.Values{"q": []string{query}}, &resp); err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Catalog search failed")
		return nil, common.ErrCatalogUnavailable
	}

	entries := make([]models.CatalogEntry, 0, len(resp.Data))
	for _, rec := range resp.Data {
		entries = append(entries, rec.toEntry())
	}
	return entries, nil
}

// ListSets returns the known set names sorted ascending by release date,
// with the AllSets sentinel first. On failure the sentinel-only listing is
// returned alongside the error so a caller can still render a filter.
func (c *Client) ListSets(ctx context.Context) ([]string, error) {
	var resp setsResponse
	if err := c.get(ctx, "/sets", nil, &resp); err != nil {
		log.Warn().Err(err).Msg("Catalog set listing failed")
		return []string{AllSets}, common.ErrCatalogUnavailable
	}

	sets := resp.Data
	sort.SliceStable(sets, func(i, j int) bool {
		return releaseKey(sets[i]) < releaseKey(sets[j])
	})

	names := make([]string, 0, len(sets)+1)
	names = append(names, AllSets)
	for _, s := range sets {
		names = append(names, s.Name)
	}
	return names, nil
}

// releaseKey sorts sets with no release date after all dated ones.
func releaseKey(s setRecord) string {
	if s.ReleaseDate == "" {
		return "9999-99-99"
	}
	return s.ReleaseDate
}

// get performs an authenticated GET against the catalog and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// toEntry normalizes a raw catalog record into a CatalogEntry, resolving
// the market price from the available tiers: premium (holofoil) first, then
// standard. With no tier at all the price stays unset.
func (rec cardRecord) toEntry() models.CatalogEntry {
	entry := models.CatalogEntry{
		Name:   valueOr(rec.Name, "Unknown"),
		Set:    valueOr(rec.Set.Name, "Unknown Set"),
		Number: valueOr(rec.Number, "N/A"),
		Rarity: valueOr(rec.Rarity, "Unknown Rarity"),
	}

	prices := rec.TCGPlayer.Prices
	switch {
	case prices.Holofoil != nil:
		entry.MarketPrice = marketOrZero(prices.Holofoil)
	case prices.Normal != nil:
		entry.MarketPrice = marketOrZero(prices.Normal)
	}
	return entry
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func marketOrZero(tier *priceTier) *float64 {
	if tier.Market != nil {
		return tier.Market
	}
	zero := 0.0
	return &zero
}
