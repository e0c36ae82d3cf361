package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
)

type CardStore struct {
	db *sql.DB
}

func NewCardStore(db *sql.DB) *CardStore {
	return &CardStore{db: db}
}

const cardColumns = `c.id, c.set_id, c.name, c.rarity, c.supertype, c.subtype, c.number,
	c.image_url, c.small_image_url, c.market_price, c.low_price, c.mid_price, c.high_price`

func scanCard(row rowScanner, extra ...any) (*models.Card, error) {
	c := &models.Card{}
	dest := []any{
		&c.ID,
		&c.SetID,
		&c.Name,
		&c.Rarity,
		&c.Supertype,
		&c.Subtype,
		&c.Number,
		&c.ImageURL,
		&c.SmallImageURL,
		&c.MarketPrice,
		&c.LowPrice,
		&c.MidPrice,
		&c.HighPrice,
	}
	err := row.Scan(append(dest, extra...)...)
	return c, err
}

func (s *CardStore) query(ctx context.Context, op, query string, args ...any) ([]*models.Card, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	cards := []*models.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, unavailable("scan card", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return cards, nil
}

// ChaseCards returns priced cards of one set, most valuable first. When
// rarities is non-empty only cards stored under one of them are returned.
// Served by idx_cards_set_market.
func (s *CardStore) ChaseCards(ctx context.Context, setID string, rarities []string, limit int) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards c
		WHERE c.set_id = ?
		  AND (c.market_price IS NOT NULL OR c.mid_price IS NOT NULL)`
	args := []any{setID}
	if len(rarities) > 0 {
		query += ` AND c.rarity IN (` + placeholders(len(rarities)) + `)`
		for _, r := range rarities {
			args = append(args, r)
		}
	}
	query += `
		ORDER BY c.market_price DESC NULLS LAST, c.mid_price DESC NULLS LAST, c.id
		LIMIT ?`
	args = append(args, limit)

	return s.query(ctx, "query chase cards", query, args...)
}

// GetByID returns nil, nil for an unknown card.
func (s *CardStore) GetByID(ctx context.Context, id string) (*models.CardDetail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+cardColumns+`, s.name, s.series
		FROM cards c
		JOIN sets s ON s.id = c.set_id
		WHERE c.id = ?`, id)

	var setName, setSeries string
	c, err := scanCard(row, &setName, &setSeries)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("get card", err)
	}
	return &models.CardDetail{Card: *c, SetName: setName, SetSeries: setSeries}, nil
}

func (s *CardStore) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM cards WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, unavailable("check card", err)
	}
	return true, nil
}

// Related returns other cards of the same set closest in price to card.
func (s *CardStore) Related(ctx context.Context, card *models.Card, limit int) ([]*models.Card, error) {
	price := card.Price()
	ref := 0.0
	if price.Valid {
		ref = price.Decimal.InexactFloat64()
	}
	return s.query(ctx, "query related cards", `
		SELECT `+cardColumns+`
		FROM cards c
		WHERE c.set_id = ? AND c.id != ?
		ORDER BY ABS(COALESCE(c.market_price, c.mid_price, 0) - ?), c.id
		LIMIT ?`, card.SetID, card.ID, ref, limit)
}

type SearchFilter struct {
	SetID    string   // canonical, empty for all sets
	Rarities []string // stored rarity strings, empty for all
	Prefix   string   // name prefix, empty for none
	Limit    int
}

// Search returns cards matching the filter ordered by price.
func (s *CardStore) Search(ctx context.Context, f SearchFilter) ([]*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards c WHERE 1=1`
	var args []any
	if f.SetID != "" {
		query += ` AND c.set_id = ?`
		args = append(args, f.SetID)
	}
	if len(f.Rarities) > 0 {
		query += ` AND c.rarity IN (` + placeholders(len(f.Rarities)) + `)`
		for _, r := range f.Rarities {
			args = append(args, r)
		}
	}
	if f.Prefix != "" {
		query += ` AND c.name LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(f.Prefix)+"%")
	}
	query += ` ORDER BY c.market_price DESC NULLS LAST, c.id LIMIT ?`
	args = append(args, f.Limit)

	return s.query(ctx, "search cards", query, args...)
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// Rarities returns every distinct non-empty rarity string stored on cards.
func (s *CardStore) Rarities(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT rarity FROM cards WHERE rarity != '' ORDER BY rarity`)
	if err != nil {
		return nil, unavailable("list rarities", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, unavailable("scan rarity", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list rarities", err)
	}
	return out, nil
}
