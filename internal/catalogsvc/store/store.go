package store

import (
	"strings"

	"github.com/avvvet/pokecard-services/internal/apperr"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func unavailable(op string, err error) error {
	return apperr.Unavailable(op, err)
}
