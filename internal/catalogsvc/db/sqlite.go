package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// pragmas are applied to every pooled connection through the DSN.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
}

const schema = `
CREATE TABLE IF NOT EXISTS sets (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    slug         TEXT NOT NULL UNIQUE,
    series       TEXT NOT NULL DEFAULT '',
    release_date TEXT NOT NULL DEFAULT '',
    logo_url     TEXT NOT NULL DEFAULT '',
    total        INTEGER NOT NULL DEFAULT 0,
    value_index  REAL,
    updated_at   TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sets_series ON sets(series);

CREATE TABLE IF NOT EXISTS set_aliases (
    alias  TEXT PRIMARY KEY,
    set_id TEXT NOT NULL,
    FOREIGN KEY (set_id) REFERENCES sets(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS cards (
    id              TEXT PRIMARY KEY,
    set_id          TEXT NOT NULL,
    name            TEXT NOT NULL,
    rarity          TEXT NOT NULL DEFAULT '',
    supertype       TEXT NOT NULL DEFAULT '',
    subtype         TEXT NOT NULL DEFAULT '',
    number          TEXT NOT NULL DEFAULT '',
    image_url       TEXT NOT NULL DEFAULT '',
    small_image_url TEXT NOT NULL DEFAULT '',
    market_price    REAL,
    low_price       REAL,
    mid_price       REAL,
    high_price      REAL,
    updated_at      TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (set_id) REFERENCES sets(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cards_set_id ON cards(set_id);
CREATE INDEX IF NOT EXISTS idx_cards_rarity ON cards(rarity);
-- chase cards: top N by price within one set
CREATE INDEX IF NOT EXISTS idx_cards_set_market ON cards(set_id, market_price DESC, mid_price DESC);

CREATE TABLE IF NOT EXISTS pull_rates (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    set_id        TEXT NOT NULL,
    pack_type     TEXT NOT NULL DEFAULT 'Booster Pack',
    category      TEXT NOT NULL,
    label         TEXT NOT NULL DEFAULT '',
    rate_per_pack REAL,
    notes         TEXT NOT NULL DEFAULT '',
    updated_at    TEXT DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (set_id) REFERENCES sets(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_pull_rates_set_id ON pull_rates(set_id);

CREATE TABLE IF NOT EXISTS graded_prices (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    card_id     TEXT NOT NULL,
    grader      TEXT NOT NULL,
    grade       TEXT NOT NULL,
    grade_label TEXT NOT NULL DEFAULT '',
    market      REAL,
    low         REAL,
    high        REAL,
    source      TEXT NOT NULL DEFAULT '',
    updated_at  TEXT DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(card_id, grader),
    FOREIGN KEY (card_id) REFERENCES cards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_graded_prices_card_id ON graded_prices(card_id);
`

// Open returns a pooled handle to the SQLite file at path. The caller owns
// the pool and must Close it.
func Open(path string) (*sql.DB, error) {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	dsn := "file:" + path + "?" + q.Encode()

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	pool.SetMaxOpenConns(8)
	pool.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Try pinging to make sure it's valid
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	return pool, nil
}

// Migrate creates tables and indexes that do not exist yet.
func Migrate(ctx context.Context, pool *sql.DB) error {
	if _, err := pool.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
