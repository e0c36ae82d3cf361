package comm

import "encoding/json"

// message types answered by the catalog service
const (
	TypeGetSets         = "get-sets"
	TypeGetSet          = "get-set"
	TypeGetPullRates    = "get-pull-rates"
	TypeGetChaseCards   = "get-chase-cards"
	TypeGetGradedPrices = "get-graded-prices"
	TypeGetPrice        = "get-price"
	TypeSearchCards     = "search-cards"
)

type Request struct {
	Type string          `json:"type"` // e.g. "get-set", "get-chase-cards"
	Data json.RawMessage `json:"data"`
}

// Reply carries either Data or Error, never both.
type Reply struct {
	Type  string          `json:"type"` // request type + "-response"
	Data  json.RawMessage `json:"data,omitempty"`
	SetID string          `json:"set_id,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Identifier string `json:"identifier,omitempty"`
}

type SetQuery struct {
	Set    string `json:"set"`
	Series string `json:"series,omitempty"`
}

// Limit fields accept a JSON number or a numeric string.
type ChaseQuery struct {
	Set    string      `json:"set"`
	Rarity string      `json:"rarity,omitempty"`
	Limit  json.Number `json:"limit,omitempty"`
}

type CardQuery struct {
	CardID string `json:"card_id"`
}

type SearchQuery struct {
	Query  string      `json:"q"`
	Set    string      `json:"set,omitempty"`
	Rarity string      `json:"rarity,omitempty"`
	Limit  json.Number `json:"limit,omitempty"`
}
