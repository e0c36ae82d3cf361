package models

import "github.com/shopspring/decimal"

// Set is one expansion. ID is the canonical identifier every alias resolves to.
type Set struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Series      string              `json:"series"`
	ReleaseDate string              `json:"release_date"`
	LogoURL     string              `json:"logo_url"`
	Total       int64               `json:"total"`
	ValueIndex  decimal.NullDecimal `json:"value_index"`
	Aliases     []string            `json:"aliases,omitempty"`
}

type SetAlias struct {
	Alias string `json:"alias"` // stored lowercase
	SetID string `json:"set_id"`
}
