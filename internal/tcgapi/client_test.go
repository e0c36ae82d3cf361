package tcgapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardPrices(t *testing.T) {
	tests := []struct {
		name       string
		prices     string
		wantMarket string
		wantMid    string
	}{
		{
			name:       "holofoil wins",
			prices:     `{"normal":{"market":1,"mid":2},"holofoil":{"market":10.5,"mid":12}}`,
			wantMarket: "10.5",
			wantMid:    "12",
		},
		{
			name:       "falls back to normal",
			prices:     `{"reverseHolofoil":{"low":1},"normal":{"market":3,"mid":4}}`,
			wantMarket: "3",
			wantMid:    "4",
		},
		{
			name:       "flat prices",
			prices:     `{"market":7.25,"mid":8}`,
			wantMarket: "7.25",
			wantMid:    "8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Card
			raw := fmt.Sprintf(`{"id":"x-1","tcgplayer":{"url":"u","prices":%s}}`, tt.prices)
			require.NoError(t, json.Unmarshal([]byte(raw), &c))

			p := c.Prices()
			require.True(t, p.Market.Valid)
			assert.Equal(t, tt.wantMarket, p.Market.Decimal.String())
			assert.Equal(t, tt.wantMid, p.Mid.Decimal.String())
			assert.Equal(t, "u", p.URL)
		})
	}
}

func TestCardPricesWithoutTCGPlayer(t *testing.T) {
	var c Card
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x-1"}`), &c))
	p := c.Prices()
	assert.False(t, p.Market.Valid)
	assert.False(t, p.Mid.Valid)
}

func TestClientSendsKeyAndPages(t *testing.T) {
	var gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":[{"id":"sv8-1","name":"Charizard ex","rarity":"Illustration Rare"}],"page":1,"pageSize":250,"count":1,"totalCount":1}`)
	}))
	defer srv.Close()

	c := NewClient(" secret ", 5*time.Second)
	c.BaseURL = srv.URL

	cards, err := c.CardsForSet(context.Background(), "sv8")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Charizard ex", cards[0].Name)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "set.id:sv8", gotQuery)
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("", 5*time.Second)
	c.BaseURL = srv.URL

	_, err := c.Sets(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
}
