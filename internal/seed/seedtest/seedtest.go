// Package seedtest opens throwaway catalog databases for tests.
package seedtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/db"
	"github.com/avvvet/pokecard-services/internal/seed"
)

// Open returns a migrated database in t.TempDir() holding the given
// datasets, or the fallback dataset when none are given. The pool is closed
// by t.Cleanup.
func Open(t testing.TB, datasets ...seed.Dataset) *sql.DB {
	t.Helper()

	pool, err := db.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx, pool))

	if len(datasets) == 0 {
		datasets = []seed.Dataset{seed.Fallback()}
	}
	for _, ds := range datasets {
		_, err := seed.Apply(ctx, pool, ds)
		require.NoError(t, err)
	}
	return pool
}
