package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
)

type SetStore struct {
	db *sql.DB
}

func NewSetStore(db *sql.DB) *SetStore {
	return &SetStore{db: db}
}

const setColumns = `id, name, slug, series, release_date, logo_url, total, value_index`

func scanSet(row rowScanner) (*models.Set, error) {
	s := &models.Set{}
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Slug,
		&s.Series,
		&s.ReleaseDate,
		&s.LogoURL,
		&s.Total,
		&s.ValueIndex,
	)
	return s, err
}

// List returns all sets, newest first. An empty series means no filter.
func (s *SetStore) List(ctx context.Context, series string) ([]*models.Set, error) {
	query := `SELECT ` + setColumns + ` FROM sets`
	var args []any
	if series != "" {
		query += ` WHERE series = ?`
		args = append(args, series)
	}
	query += ` ORDER BY release_date DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list sets", err)
	}
	defer rows.Close()

	sets := []*models.Set{}
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, unavailable("scan set", err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list sets", err)
	}
	return sets, nil
}

// GetByID returns nil, nil when no set has the canonical id.
func (s *SetStore) GetByID(ctx context.Context, id string) (*models.Set, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+setColumns+` FROM sets WHERE id = ?`, id)
	set, err := scanSet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, unavailable("get set", err)
	}

	aliases, err := s.aliases(ctx, id)
	if err != nil {
		return nil, err
	}
	set.Aliases = aliases
	return set, nil
}

func (s *SetStore) aliases(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT alias FROM set_aliases WHERE set_id = ? ORDER BY alias`, id)
	if err != nil {
		return nil, unavailable("list set aliases", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, unavailable("scan set alias", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list set aliases", err)
	}
	return out, nil
}

// IDMatching looks the token up as a canonical id. An exact-case hit wins
// over a case-insensitive one.
func (s *SetStore) IDMatching(ctx context.Context, token string) (string, bool, error) {
	return s.single(ctx, "match set id", `
		SELECT id FROM sets
		WHERE id = ? COLLATE NOCASE
		ORDER BY (id = ?) DESC, id
		LIMIT 1`, token, token)
}

// IDBySlugOrAlias looks up a lowercase token among stored slugs and seed-time
// aliases, slugs first.
func (s *SetStore) IDBySlugOrAlias(ctx context.Context, lowered string) (string, bool, error) {
	return s.single(ctx, "match set slug", `
		SELECT id FROM (
			SELECT id, 0 AS pri FROM sets WHERE slug = ?
			UNION ALL
			SELECT set_id, 1 AS pri FROM set_aliases WHERE alias = ?
		)
		ORDER BY pri
		LIMIT 1`, lowered, lowered)
}

// IDsByName returns every set whose display name equals name ignoring ASCII
// case. More than one id means the name is ambiguous.
func (s *SetStore) IDsByName(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sets WHERE name = ? COLLATE NOCASE ORDER BY id`, name)
	if err != nil {
		return nil, unavailable("match set name", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, unavailable("scan set id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("match set name", err)
	}
	return ids, nil
}

func (s *SetStore) single(ctx context.Context, op, query string, args ...any) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, unavailable(op, err)
	}
	return id, true, nil
}
