// Package tcgapi is a small client for the Pokémon TCG API v2.
package tcgapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://api.pokemontcg.io/v2"
	MaxPageSize    = 250
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		APIKey:  strings.TrimSpace(apiKey),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type Set struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"` // yyyy/mm/dd
	Total       int64  `json:"total"`
	Images      struct {
		Logo   string `json:"logo"`
		Symbol string `json:"symbol"`
	} `json:"images"`
}

type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Number    string   `json:"number"`
	Rarity    string   `json:"rarity"`
	Supertype string   `json:"supertype"`
	Subtypes  []string `json:"subtypes"`
	Images    struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
	TCGPlayer *struct {
		URL    string                     `json:"url"`
		Prices map[string]json.RawMessage `json:"prices"`
	} `json:"tcgplayer"`
}

type page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Count      int `json:"count"`
	TotalCount int `json:"totalCount"`
}

// StatusError is returned for any non-200 response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokemontcg api returned %d for %s", e.Code, e.URL)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := strings.TrimRight(c.BaseURL, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pokecard-services/1.0")
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode, URL: u}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", u, err)
	}
	return nil
}

func pageQuery(p, size int) url.Values {
	if size <= 0 || size > MaxPageSize {
		size = MaxPageSize
	}
	if p < 1 {
		p = 1
	}
	return url.Values{"page": {strconv.Itoa(p)}, "pageSize": {strconv.Itoa(size)}}
}

// Sets fetches every set, following pages until a short page.
func (c *Client) Sets(ctx context.Context) ([]Set, error) {
	var all []Set
	for p := 1; ; p++ {
		var pg page[Set]
		if err := c.get(ctx, "/sets", pageQuery(p, MaxPageSize), &pg); err != nil {
			return nil, err
		}
		all = append(all, pg.Data...)
		if len(pg.Data) < MaxPageSize {
			return all, nil
		}
	}
}

// CardsForSet fetches every card of one set.
func (c *Client) CardsForSet(ctx context.Context, setID string) ([]Card, error) {
	var all []Card
	for p := 1; ; p++ {
		q := pageQuery(p, MaxPageSize)
		q.Set("q", "set.id:"+setID)

		var pg page[Card]
		if err := c.get(ctx, "/cards", q, &pg); err != nil {
			return nil, err
		}
		all = append(all, pg.Data...)
		if len(pg.Data) < MaxPageSize {
			return all, nil
		}
	}
}

type Prices struct {
	Market decimal.NullDecimal
	Low    decimal.NullDecimal
	Mid    decimal.NullDecimal
	High   decimal.NullDecimal
	URL    string
}

// tierOrder is the preference order among TCGplayer printing tiers.
var tierOrder = []string{"holofoil", "1stEditionHolofoil", "unlimitedHolofoil", "reverseHolofoil", "normal"}

type tier struct {
	Low    *float64 `json:"low"`
	Mid    *float64 `json:"mid"`
	High   *float64 `json:"high"`
	Market *float64 `json:"market"`
}

func nullable(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}

// Prices picks the first printing tier that carries a price and fills
// missing fields from flat top-level prices.
func (c *Card) Prices() Prices {
	var out Prices
	if c.TCGPlayer == nil {
		return out
	}
	out.URL = c.TCGPlayer.URL

	var chosen tier
	for _, name := range tierOrder {
		raw, ok := c.TCGPlayer.Prices[name]
		if !ok {
			continue
		}
		var t tier
		if err := json.Unmarshal(raw, &t); err != nil {
			continue
		}
		if t.Market != nil || t.Mid != nil {
			chosen = t
			break
		}
	}

	flat := func(key string) *float64 {
		raw, ok := c.TCGPlayer.Prices[key]
		if !ok {
			return nil
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil
		}
		return &f
	}
	pick := func(v *float64, key string) decimal.NullDecimal {
		if v != nil {
			return nullable(v)
		}
		return nullable(flat(key))
	}

	out.Market = pick(chosen.Market, "market")
	out.Low = pick(chosen.Low, "low")
	out.Mid = pick(chosen.Mid, "mid")
	out.High = pick(chosen.High, "high")
	return out
}
