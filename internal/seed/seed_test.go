package seed

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/db"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
	"github.com/avvvet/pokecard-services/internal/tcgapi"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := db.Open(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	require.NoError(t, db.Migrate(context.Background(), pool))
	return pool
}

func count(t *testing.T, pool *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Prismatic Evolutions", "prismatic-evolutions"},
		{"Sword & Shield", "sword-shield"},
		{"  Team Rocket's -- Moltres ex ", "team-rocket-s-moltres-ex"},
		{"151", "151"},
		{"Pokémon GO", "pok-mon-go"},
		{"&&&", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestApplyFallbackIsIdempotent(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()

	first, err := Apply(ctx, pool, Fallback())
	require.NoError(t, err)
	assert.Equal(t, 5, first.Sets)

	tables := []string{"sets", "set_aliases", "cards", "pull_rates", "graded_prices"}
	before := map[string]int{}
	for _, tbl := range tables {
		before[tbl] = count(t, pool, tbl)
	}

	_, err = Apply(ctx, pool, Fallback())
	require.NoError(t, err)
	for _, tbl := range tables {
		assert.Equal(t, before[tbl], count(t, pool, tbl), tbl)
	}
}

func TestApplyRollsBackOnBrokenReference(t *testing.T) {
	pool := openDB(t)
	ds := Dataset{
		Sets:  []models.Set{{ID: "s1", Name: "Set One"}},
		Cards: []models.Card{{ID: "orphan-1", SetID: "missing", Name: "Orphan"}},
	}

	_, err := Apply(context.Background(), pool, ds)
	require.Error(t, err)
	assert.Equal(t, 0, count(t, pool, "sets"))
}

func TestApplyKeepsSlugsUnique(t *testing.T) {
	pool := openDB(t)
	ds := Dataset{Sets: []models.Set{
		{ID: "base1", Name: "Base"},
		{ID: "base2", Name: "Base"},
	}}

	_, err := Apply(context.Background(), pool, ds)
	require.NoError(t, err)

	var slug string
	require.NoError(t, pool.QueryRow(`SELECT slug FROM sets WHERE id = 'base2'`).Scan(&slug))
	assert.Equal(t, "base-base2", slug)
}

type fakeSource struct {
	sets     []tcgapi.Set
	setsErr  error
	cards    map[string][]tcgapi.Card
	cardsErr map[string]error
}

func (f *fakeSource) Sets(ctx context.Context) ([]tcgapi.Set, error) {
	return f.sets, f.setsErr
}

func (f *fakeSource) CardsForSet(ctx context.Context, setID string) ([]tcgapi.Card, error) {
	if err := f.cardsErr[setID]; err != nil {
		return nil, err
	}
	return f.cards[setID], nil
}

func TestSeederFallsBackWhenSetsFail(t *testing.T) {
	pool := openDB(t)
	s := NewSeeder(pool, &fakeSource{setsErr: errors.New("403")})

	sum, err := s.Run(context.Background(), Options{RecentSets: 40})
	require.NoError(t, err)
	assert.True(t, sum.Fallback)
	assert.Equal(t, 5, count(t, pool, "sets"))
}

func TestSeederSkipAPI(t *testing.T) {
	pool := openDB(t)
	src := &fakeSource{sets: []tcgapi.Set{{ID: "x1", Name: "Remote"}}}

	sum, err := NewSeeder(pool, src).Run(context.Background(), Options{SkipAPI: true})
	require.NoError(t, err)
	assert.True(t, sum.Fallback)

	var n int
	require.NoError(t, pool.QueryRow(`SELECT COUNT(*) FROM sets WHERE id = 'x1'`).Scan(&n))
	assert.Zero(t, n)
}

func TestSeederFromAPI(t *testing.T) {
	pool := openDB(t)
	src := &fakeSource{
		sets: []tcgapi.Set{
			{ID: "old", Name: "Old Set", ReleaseDate: "1999/01/09"},
			{ID: "new", Name: "New Set", ReleaseDate: "2025/01/17"},
			{ID: "broken", Name: "Broken Set", ReleaseDate: "2024/06/01"},
		},
		cards: map[string][]tcgapi.Card{
			"new": {{ID: "new-1", Name: "Umbreon ex", Rarity: "Special Illustration Rare"}},
			"old": {{ID: "old-1", Name: "Charizard", Rarity: "Rare Holo"}},
		},
		cardsErr: map[string]error{"broken": errors.New("timeout")},
	}

	sum, err := NewSeeder(pool, src).Run(context.Background(), Options{RecentSets: 2, Concurrency: 2})
	require.NoError(t, err)
	assert.False(t, sum.Fallback)
	assert.Equal(t, 3, sum.Sets)
	// only the two newest sets have their cards fetched; one of them failed
	assert.Equal(t, 1, sum.Cards)

	var slug string
	require.NoError(t, pool.QueryRow(`SELECT slug FROM sets WHERE id = 'new'`).Scan(&slug))
	assert.Equal(t, "new-set", slug)

	var rates int
	require.NoError(t, pool.QueryRow(`SELECT COUNT(*) FROM pull_rates WHERE set_id = 'broken'`).Scan(&rates))
	assert.Equal(t, len(DefaultPullRates("broken")), rates)
}
