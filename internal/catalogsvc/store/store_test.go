package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/pokecard-services/internal/apperr"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
	"github.com/avvvet/pokecard-services/internal/seed"
	"github.com/avvvet/pokecard-services/internal/seed/seedtest"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b\\c`, escapeLike(`a_b\c`))
	assert.Equal(t, "Mew", escapeLike("Mew"))
}

func TestChaseCardsSkipsUnpriced(t *testing.T) {
	pool := seedtest.Open(t, seed.Dataset{
		Sets: []models.Set{{ID: "x1", Name: "Test Set"}},
		Cards: []models.Card{
			{ID: "x1-1", SetID: "x1", Name: "Priced", MarketPrice: decimal.NewNullDecimal(decimal.NewFromInt(3))},
			{ID: "x1-2", SetID: "x1", Name: "Mid Only", MidPrice: decimal.NewNullDecimal(decimal.NewFromInt(9))},
			{ID: "x1-3", SetID: "x1", Name: "Unpriced"},
		},
	})
	cards := NewCardStore(pool)

	got, err := cards.ChaseCards(context.Background(), "x1", nil, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// NULL market sorts after every priced row
	assert.Equal(t, "x1-1", got[0].ID)
	assert.Equal(t, "x1-2", got[1].ID)
}

func TestClosedPoolIsUnavailable(t *testing.T) {
	pool := seedtest.Open(t)
	sets := NewSetStore(pool)
	require.NoError(t, pool.Close())

	_, err := sets.List(context.Background(), "")
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))

	_, _, err = sets.IDMatching(context.Background(), "sv8")
	assert.True(t, apperr.Is(err, apperr.KindUnavailable))
}
