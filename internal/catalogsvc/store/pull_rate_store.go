package store

import (
	"context"
	"database/sql"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
)

type PullRateStore struct {
	db *sql.DB
}

func NewPullRateStore(db *sql.DB) *PullRateStore {
	return &PullRateStore{db: db}
}

func (s *PullRateStore) BySet(ctx context.Context, setID string) ([]*models.PullRate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, set_id, pack_type, category, label, rate_per_pack, notes
		FROM pull_rates
		WHERE set_id = ?
		ORDER BY category, id`, setID)
	if err != nil {
		return nil, unavailable("query pull rates", err)
	}
	defer rows.Close()

	rates := []*models.PullRate{}
	for rows.Next() {
		var pr models.PullRate
		err := rows.Scan(
			&pr.ID,
			&pr.SetID,
			&pr.PackType,
			&pr.Category,
			&pr.Label,
			&pr.RatePerPack,
			&pr.Notes,
		)
		if err != nil {
			return nil, unavailable("scan pull rate", err)
		}
		rates = append(rates, &pr)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("query pull rates", err)
	}
	return rates, nil
}
