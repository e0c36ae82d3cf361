package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "not found", err: NotFound("set not found", "nope"), want: KindNotFound},
		{name: "invalid", err: Invalid("bad limit", "0"), want: KindInvalidParameter},
		{name: "unavailable", err: Unavailable("query sets", sql.ErrConnDone), want: KindUnavailable},
		{name: "wrapped", err: fmt.Errorf("resolve: %w", NotFound("set not found", "x")), want: KindNotFound},
		{name: "plain", err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestUnavailableUnwraps(t *testing.T) {
	err := Unavailable("query cards", sql.ErrConnDone)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "unavailable")
	assert.False(t, Is(nil, KindUnavailable))
}
