package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
)

// Dataset is everything one seeding run writes.
type Dataset struct {
	Sets         []models.Set
	Aliases      []models.SetAlias
	Cards        []models.Card
	PullRates    map[string][]models.PullRate // replaced per set id
	GradedPrices []models.GradedPrice
}

type Summary struct {
	Sets         int  `json:"sets"`
	Aliases      int  `json:"aliases"`
	Cards        int  `json:"cards"`
	PullRates    int  `json:"pull_rates"`
	GradedPrices int  `json:"graded_prices"`
	Fallback     bool `json:"fallback"`
}

// Apply writes ds in a single transaction. Rows are upserted, so applying the
// same dataset twice leaves the tables unchanged.
func Apply(ctx context.Context, db *sql.DB, ds Dataset) (Summary, error) {
	var sum Summary

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return sum, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i := range ds.Sets {
		if err := upsertSet(ctx, tx, &ds.Sets[i]); err != nil {
			return sum, err
		}
		sum.Sets++
	}

	for _, a := range ds.Aliases {
		alias := strings.ToLower(strings.TrimSpace(a.Alias))
		if alias == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO set_aliases (alias, set_id) VALUES (?, ?)
			ON CONFLICT(alias) DO UPDATE SET set_id = excluded.set_id`, alias, a.SetID); err != nil {
			return sum, fmt.Errorf("insert alias %s: %w", alias, err)
		}
		sum.Aliases++
	}

	for _, c := range ds.Cards {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cards (id, set_id, name, rarity, supertype, subtype, number, image_url, small_image_url,
			                   market_price, low_price, mid_price, high_price, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(id) DO UPDATE SET
			    set_id = excluded.set_id, name = excluded.name, rarity = excluded.rarity,
			    supertype = excluded.supertype, subtype = excluded.subtype, number = excluded.number,
			    image_url = excluded.image_url, small_image_url = excluded.small_image_url,
			    market_price = excluded.market_price, low_price = excluded.low_price,
			    mid_price = excluded.mid_price, high_price = excluded.high_price,
			    updated_at = CURRENT_TIMESTAMP`,
			c.ID, c.SetID, c.Name, c.Rarity, c.Supertype, c.Subtype, c.Number, c.ImageURL, c.SmallImageURL,
			c.MarketPrice, c.LowPrice, c.MidPrice, c.HighPrice); err != nil {
			return sum, fmt.Errorf("upsert card %s: %w", c.ID, err)
		}
		sum.Cards++
	}

	for setID, rates := range ds.PullRates {
		if _, err := tx.ExecContext(ctx, `DELETE FROM pull_rates WHERE set_id = ?`, setID); err != nil {
			return sum, fmt.Errorf("clear pull rates %s: %w", setID, err)
		}
		for _, pr := range rates {
			packType := pr.PackType
			if packType == "" {
				packType = "Booster Pack"
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO pull_rates (set_id, pack_type, category, label, rate_per_pack, notes, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
				setID, packType, pr.Category, pr.Label, pr.RatePerPack, pr.Notes); err != nil {
				return sum, fmt.Errorf("insert pull rate %s/%s: %w", setID, pr.Category, err)
			}
			sum.PullRates++
		}
	}

	for _, gp := range ds.GradedPrices {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO graded_prices (card_id, grader, grade, grade_label, market, low, high, source, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(card_id, grader) DO UPDATE SET
			    grade = excluded.grade, grade_label = excluded.grade_label, market = excluded.market,
			    low = excluded.low, high = excluded.high, source = excluded.source,
			    updated_at = CURRENT_TIMESTAMP`,
			gp.CardID, strings.ToUpper(gp.Grader), gp.Grade, gp.GradeLabel, gp.Market, gp.Low, gp.High, gp.Source); err != nil {
			return sum, fmt.Errorf("upsert graded price %s/%s: %w", gp.CardID, gp.Grader, err)
		}
		sum.GradedPrices++
	}

	if err := tx.Commit(); err != nil {
		return sum, fmt.Errorf("commit: %w", err)
	}
	return sum, nil
}

// upsertSet lowercases the slug, deriving a missing one from the name. A slug already owned by
// another set gets the set id appended so slugs stay unique.
func upsertSet(ctx context.Context, tx *sql.Tx, s *models.Set) error {
	s.Slug = strings.ToLower(strings.TrimSpace(s.Slug))
	if s.Slug == "" {
		s.Slug = Slugify(s.Name)
	}
	if s.Slug == "" {
		s.Slug = Slugify(s.ID)
	}

	var owner string
	err := tx.QueryRowContext(ctx, `SELECT id FROM sets WHERE slug = ? AND id != ?`, s.Slug, s.ID).Scan(&owner)
	switch {
	case err == nil:
		s.Slug = s.Slug + "-" + Slugify(s.ID)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check slug %s: %w", s.Slug, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sets (id, name, slug, series, release_date, logo_url, total, value_index, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name, slug = excluded.slug, series = excluded.series,
		    release_date = excluded.release_date, logo_url = excluded.logo_url,
		    total = excluded.total, value_index = excluded.value_index,
		    updated_at = CURRENT_TIMESTAMP`,
		s.ID, s.Name, s.Slug, s.Series, s.ReleaseDate, s.LogoURL, s.Total, s.ValueIndex)
	if err != nil {
		return fmt.Errorf("upsert set %s: %w", s.ID, err)
	}
	return nil
}
