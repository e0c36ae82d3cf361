package models

import "github.com/shopspring/decimal"

type GradedPrice struct {
	CardID     string              `json:"card_id"` // FK to cards(id)
	Grader     string              `json:"grader"`  // PSA, CGC or BGS
	Grade      string              `json:"grade"`
	GradeLabel string              `json:"grade_label"`
	Market     decimal.NullDecimal `json:"market"`
	Low        decimal.NullDecimal `json:"low"`
	High       decimal.NullDecimal `json:"high"`
	Source     string              `json:"source"`
	UpdatedAt  string              `json:"updated_at"`
}
