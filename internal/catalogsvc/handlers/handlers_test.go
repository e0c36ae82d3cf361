package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/service"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/store"
	"github.com/avvvet/pokecard-services/internal/seed/seedtest"
)

func newTestRouter(t *testing.T, secret string) *chi.Mux {
	t.Helper()
	pool := seedtest.Open(t)

	sets := service.NewSetService(store.NewSetStore(pool), store.NewPullRateStore(pool))
	cards := service.NewCardService(sets, store.NewCardStore(pool), store.NewGradedPriceStore(pool))

	h := NewHandler(sets, cards, "test-instance")
	h.InitAuth(secret)

	r := chi.NewRouter()
	h.Mount(r)
	return r
}

func get(t *testing.T, r http.Handler, path string, header ...string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body map[string]json.RawMessage
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func cardIDs(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var cards []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &cards))
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestChaseCardsEndpoint(t *testing.T) {
	r := newTestRouter(t, "")

	code, body := get(t, r, "/sets/prismatic-evolutions/chase-cards?limit=2")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"sv8"`, string(body["set_id"]))
	assert.Equal(t, []string{"sv8-161", "sv8-1"}, cardIDs(t, body["data"]))

	code, body = get(t, r, "/sets/Prismatic%20Evolutions/chase-cards?rarity=special-art&limit=5")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"sv8-161", "sv8-2"}, cardIDs(t, body["data"]))
}

func TestErrorEnvelope(t *testing.T) {
	r := newTestRouter(t, "")

	tests := []struct {
		name string
		path string
		code int
		kind string
	}{
		{name: "unknown set", path: "/sets/does-not-exist", code: http.StatusNotFound, kind: "not_found"},
		{name: "unknown set chase", path: "/sets/does-not-exist/chase-cards?limit=0", code: http.StatusNotFound, kind: "not_found"},
		{name: "zero limit", path: "/sets/sv8/chase-cards?limit=0", code: http.StatusBadRequest, kind: "invalid_parameter"},
		{name: "limit too big", path: "/sets/sv8/chase-cards?limit=101", code: http.StatusBadRequest, kind: "invalid_parameter"},
		{name: "bad rarity", path: "/sets/sv8/chase-cards?rarity=shiny-ish", code: http.StatusBadRequest, kind: "invalid_parameter"},
		{name: "unknown card", path: "/cards/sv8-999", code: http.StatusNotFound, kind: "not_found"},
		{name: "empty search", path: "/search/cards?q=", code: http.StatusBadRequest, kind: "invalid_parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, r, tt.path)
			require.Equal(t, tt.code, code)
			_, hasData := body["data"]
			assert.False(t, hasData)

			var e ErrorResponse
			require.NoError(t, json.Unmarshal(body["error"], &e.Error))
			assert.Equal(t, tt.kind, e.Error.Code)
			assert.NotEmpty(t, e.Error.Message)
		})
	}
}

func TestGradedPricesEndpoint(t *testing.T) {
	r := newTestRouter(t, "")

	code, body := get(t, r, "/cards/sv10-1/graded-prices")
	require.Equal(t, http.StatusOK, code)

	var prices map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["data"], &prices))
	assert.Len(t, prices, 1)
	assert.Contains(t, prices, "psa")
}

func TestSetEndpoints(t *testing.T) {
	r := newTestRouter(t, "")

	code, body := get(t, r, "/sets?series=Scarlet%20%26%20Violet")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"sv10", "sv8", "sv3pt5"}, cardIDs(t, body["data"]))

	code, body = get(t, r, "/sets/Sword%20%26%20Shield")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"swsh1"`, string(body["set_id"]))

	code, body = get(t, r, "/sets/151/pull-rates")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `"sv3pt5"`, string(body["set_id"]))
	assert.NotEqual(t, "[]", string(body["data"]))
}

func TestApiMount(t *testing.T) {
	r := newTestRouter(t, "")

	for _, path := range []string{"/health", "/api/health", "/api/sets/sv8", "/api/cards/sv8-161/price"} {
		code, body := get(t, r, path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Contains(t, body, "data", path)
	}

	_, body := get(t, r, "/api/health")
	assert.JSONEq(t, `{"status":"ok","instance":"test-instance"}`, string(body["data"]))
}

func TestSearchEndpoint(t *testing.T) {
	r := newTestRouter(t, "")

	code, body := get(t, r, "/search/cards?q=charizard&set=151")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"sv3pt5-6"}, cardIDs(t, body["data"]))
	assert.JSONEq(t, `{"query":"charizard","count":1}`, string(body["meta"]))
}

func TestJWTProtectsAllButHealth(t *testing.T) {
	const secret = "test-secret"
	r := newTestRouter(t, secret)

	code, _ := get(t, r, "/health")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, r, "/sets")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := get(t, r, "/api/sets", "Authorization", "BEARER "+signHS256(secret, `{"sub":"tester"}`))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "data")
}

func signHS256(secret, claims string) string {
	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + enc.EncodeToString([]byte(claims))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(unsigned))
	return unsigned + "." + enc.EncodeToString(mac.Sum(nil))
}
