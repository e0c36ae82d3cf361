package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/avvvet/pokecard-services/internal/apperr"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/store"
)

// SetService resolves set tokens and serves set-scoped reads.
type SetService struct {
	setStore      *store.SetStore
	pullRateStore *store.PullRateStore
}

func NewSetService(setStore *store.SetStore, pullRateStore *store.PullRateStore) *SetService {
	return &SetService{setStore: setStore, pullRateStore: pullRateStore}
}

// cleanToken percent-decodes, trims and collapses inner whitespace.
// Input that does not decode is used as given.
func cleanToken(raw string) string {
	tok := raw
	if dec, err := url.PathUnescape(raw); err == nil {
		tok = dec
	}
	return strings.Join(strings.Fields(tok), " ")
}

// Resolve maps an id, slug, alias or display name to the canonical set id.
// First match wins: id, then slug or alias, then display name. There is no
// partial matching.
func (s *SetService) Resolve(ctx context.Context, token string) (string, error) {
	tok := cleanToken(token)
	if tok == "" {
		return "", apperr.NotFound("set not found", token)
	}

	id, ok, err := s.setStore.IDMatching(ctx, tok)
	if err != nil || ok {
		return id, err
	}

	id, ok, err = s.setStore.IDBySlugOrAlias(ctx, strings.ToLower(tok))
	if err != nil || ok {
		return id, err
	}

	ids, err := s.setStore.IDsByName(ctx, tok)
	if err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", apperr.NotFound("set not found", token)
	case 1:
		return ids[0], nil
	default:
		return "", apperr.Invalid("ambiguous set identifier, use the set id", token)
	}
}

func isAllSeries(series string) bool {
	switch strings.ToLower(strings.TrimSpace(series)) {
	case "", "all", "all series":
		return true
	}
	return false
}

// ListSets returns every set, or only those of one series.
func (s *SetService) ListSets(ctx context.Context, series string) ([]*models.Set, error) {
	if isAllSeries(series) {
		series = ""
	}
	return s.setStore.List(ctx, strings.TrimSpace(series))
}

func (s *SetService) GetSet(ctx context.Context, token string) (*models.Set, error) {
	id, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	set, err := s.setStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, apperr.NotFound("set not found", token)
	}
	return set, nil
}

// PullRates returns the resolved set id and its pull rates.
func (s *SetService) PullRates(ctx context.Context, token string) (string, []*models.PullRate, error) {
	id, err := s.Resolve(ctx, token)
	if err != nil {
		return "", nil, err
	}
	rates, err := s.pullRateStore.BySet(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return id, rates, nil
}
