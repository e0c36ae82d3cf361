package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/avvvet/pokecard-services/internal/apperr"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/rarity"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/store"
)

const (
	DefaultChaseLimit  = 24
	MaxChaseLimit      = 100
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
	relatedLimit       = 8
	searchCandidates   = 500
	shortQueryRunes    = 3
)

type CardService struct {
	sets        *SetService
	cardStore   *store.CardStore
	gradedStore *store.GradedPriceStore
}

func NewCardService(sets *SetService, cardStore *store.CardStore, gradedStore *store.GradedPriceStore) *CardService {
	return &CardService{sets: sets, cardStore: cardStore, gradedStore: gradedStore}
}

// ParseLimit reads an optional row limit. Empty means def; anything that is
// not an integer in [1, max] is rejected.
func ParseLimit(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	if strings.TrimLeft(raw, "0123456789") != "" {
		return 0, apperr.Invalid("limit must be an integer", raw)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid("limit must be between 1 and "+strconv.Itoa(max), raw)
	}
	if n < 1 || n > max {
		return 0, apperr.Invalid("limit must be between 1 and "+strconv.Itoa(max), raw)
	}
	return n, nil
}

// rarityMembers returns the stored rarity strings selected by raw, nil for no
// filter.
func rarityMembers(raw string) (rarity.Rarity, []string, error) {
	if rarity.IsAll(raw) {
		return "", nil, nil
	}
	r, ok := rarity.Normalize(raw)
	if !ok {
		return "", nil, apperr.Invalid("unknown rarity", raw)
	}
	return r, rarity.Members(r), nil
}

// UncoveredRarities lists stored rarity strings that no rarity filter can
// select.
func (s *CardService) UncoveredRarities(ctx context.Context) ([]string, error) {
	stored, err := s.cardStore.Rarities(ctx)
	if err != nil {
		return nil, err
	}
	return rarity.Uncovered(stored), nil
}

type ChaseCards struct {
	SetID  string         `json:"set_id"`
	Rarity rarity.Rarity  `json:"rarity,omitempty"`
	Cards  []*models.Card `json:"cards"`
}

// ChaseCards ranks the priced cards of one set by market price, then mid
// price, both descending.
func (s *CardService) ChaseCards(ctx context.Context, setToken, rarityParam, limitParam string) (*ChaseCards, error) {
	setID, err := s.sets.Resolve(ctx, setToken)
	if err != nil {
		return nil, err
	}
	r, members, err := rarityMembers(rarityParam)
	if err != nil {
		return nil, err
	}
	limit, err := ParseLimit(limitParam, DefaultChaseLimit, MaxChaseLimit)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardStore.ChaseCards(ctx, setID, members, limit)
	if err != nil {
		return nil, err
	}
	return &ChaseCards{SetID: setID, Rarity: r, Cards: cards}, nil
}

type CardWithRelated struct {
	Card    *models.CardDetail `json:"card"`
	Related []*models.Card     `json:"related"`
}

func (s *CardService) Detail(ctx context.Context, cardID string) (*CardWithRelated, error) {
	id := strings.TrimSpace(cardID)
	card, err := s.cardStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperr.NotFound("card not found", cardID)
	}
	related, err := s.cardStore.Related(ctx, &card.Card, relatedLimit)
	if err != nil {
		return nil, err
	}
	return &CardWithRelated{Card: card, Related: related}, nil
}

type CardPrice struct {
	CardID string              `json:"card_id"`
	Name   string              `json:"name"`
	SetID  string              `json:"set_id"`
	Price  decimal.NullDecimal `json:"price"`
	Source string              `json:"source,omitempty"` // "market" or "mid"
}

func (s *CardService) Price(ctx context.Context, cardID string) (*CardPrice, error) {
	card, err := s.cardStore.GetByID(ctx, strings.TrimSpace(cardID))
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperr.NotFound("card not found", cardID)
	}

	out := &CardPrice{CardID: card.ID, Name: card.Name, SetID: card.SetID}
	switch {
	case card.MarketPrice.Valid:
		out.Price, out.Source = card.MarketPrice, "market"
	case card.MidPrice.Valid:
		out.Price, out.Source = card.MidPrice, "mid"
	}
	return out, nil
}

// graderKeys maps stored grading authorities to response keys. Anything else
// is not reported.
var graderKeys = map[string]string{
	"PSA":     "psa",
	"CGC":     "cgc",
	"BGS":     "bgs",
	"BECKETT": "bgs",
}

// GradedPrices returns the recorded price per grading authority. Authorities
// without a row are absent from the map.
func (s *CardService) GradedPrices(ctx context.Context, cardID string) (map[string]*models.GradedPrice, error) {
	id := strings.TrimSpace(cardID)
	ok, err := s.cardStore.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("card not found", cardID)
	}

	rows, err := s.gradedStore.ByCard(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.GradedPrice, len(rows))
	for _, gp := range rows {
		key, ok := graderKeys[strings.ToUpper(strings.TrimSpace(gp.Grader))]
		if !ok {
			continue
		}
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = gp
	}
	return out, nil
}

type SearchQuery struct {
	Query  string
	Set    string
	Rarity string
	Limit  string
}

type SearchResult struct {
	Query string         `json:"query"`
	SetID string         `json:"set_id,omitempty"`
	Count int            `json:"count"`
	Cards []*models.Card `json:"cards"`
}

// Search finds cards by name. Short queries are prefix matches ordered by
// price; longer ones are ranked by fuzzy match score.
func (s *CardService) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	query := strings.Join(strings.Fields(q.Query), " ")
	if query == "" {
		return nil, apperr.Invalid("query parameter q is required", q.Query)
	}
	limit, err := ParseLimit(q.Limit, DefaultSearchLimit, MaxSearchLimit)
	if err != nil {
		return nil, err
	}

	filter := store.SearchFilter{}
	if strings.TrimSpace(q.Set) != "" {
		if filter.SetID, err = s.sets.Resolve(ctx, q.Set); err != nil {
			return nil, err
		}
	}
	if _, filter.Rarities, err = rarityMembers(q.Rarity); err != nil {
		return nil, err
	}

	var cards []*models.Card
	if utf8.RuneCountInString(query) < shortQueryRunes {
		filter.Prefix = query
		filter.Limit = limit
		if cards, err = s.cardStore.Search(ctx, filter); err != nil {
			return nil, err
		}
	} else {
		filter.Limit = searchCandidates
		candidates, err := s.cardStore.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		cards = rankByName(query, candidates, limit)
	}

	return &SearchResult{Query: query, SetID: filter.SetID, Count: len(cards), Cards: cards}, nil
}

type cardNames []*models.Card

func (c cardNames) String(i int) string { return c[i].Name }
func (c cardNames) Len() int            { return len(c) }

func rankByName(query string, candidates []*models.Card, limit int) []*models.Card {
	matches := fuzzy.FindFrom(query, cardNames(candidates))
	out := make([]*models.Card, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}
