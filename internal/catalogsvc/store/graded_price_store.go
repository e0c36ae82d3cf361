package store

import (
	"context"
	"database/sql"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
)

type GradedPriceStore struct {
	db *sql.DB
}

func NewGradedPriceStore(db *sql.DB) *GradedPriceStore {
	return &GradedPriceStore{db: db}
}

func (s *GradedPriceStore) ByCard(ctx context.Context, cardID string) ([]*models.GradedPrice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT card_id, grader, grade, grade_label, market, low, high, source, COALESCE(updated_at, '')
		FROM graded_prices
		WHERE card_id = ?
		ORDER BY grader`, cardID)
	if err != nil {
		return nil, unavailable("query graded prices", err)
	}
	defer rows.Close()

	prices := []*models.GradedPrice{}
	for rows.Next() {
		var gp models.GradedPrice
		err := rows.Scan(
			&gp.CardID,
			&gp.Grader,
			&gp.Grade,
			&gp.GradeLabel,
			&gp.Market,
			&gp.Low,
			&gp.High,
			&gp.Source,
			&gp.UpdatedAt,
		)
		if err != nil {
			return nil, unavailable("scan graded price", err)
		}
		prices = append(prices, &gp)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("query graded prices", err)
	}
	return prices, nil
}
