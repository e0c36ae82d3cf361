package models

import "github.com/shopspring/decimal"

type PullRate struct {
	ID          int64               `json:"id"`
	SetID       string              `json:"set_id"`    // FK to sets(id)
	PackType    string              `json:"pack_type"` // e.g. "Booster Pack"
	Category    string              `json:"category"`
	Label       string              `json:"label"`
	RatePerPack decimal.NullDecimal `json:"rate_per_pack"`
	Notes       string              `json:"notes"`
}
