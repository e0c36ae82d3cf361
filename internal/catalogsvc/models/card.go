package models

import "github.com/shopspring/decimal"

type Card struct {
	ID            string              `json:"id"`
	SetID         string              `json:"set_id"` // FK to sets(id)
	Name          string              `json:"name"`
	Rarity        string              `json:"rarity"`
	Supertype     string              `json:"supertype,omitempty"`
	Subtype       string              `json:"subtype,omitempty"`
	Number        string              `json:"number,omitempty"`
	ImageURL      string              `json:"image_url,omitempty"`
	SmallImageURL string              `json:"small_image_url,omitempty"`
	MarketPrice   decimal.NullDecimal `json:"market_price"`
	LowPrice      decimal.NullDecimal `json:"low_price"`
	MidPrice      decimal.NullDecimal `json:"mid_price"`
	HighPrice     decimal.NullDecimal `json:"high_price"`
}

// Price is the market price, falling back to mid.
func (c *Card) Price() decimal.NullDecimal {
	if c.MarketPrice.Valid {
		return c.MarketPrice
	}
	return c.MidPrice
}

// CardDetail is a card joined with its owning set.
type CardDetail struct {
	Card
	SetName   string `json:"set_name"`
	SetSeries string `json:"set_series"`
}
