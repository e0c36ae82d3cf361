package config

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.InfoLevel, parseLevel(""))
	assert.Equal(t, log.DebugLevel, parseLevel("debug"))
	assert.Equal(t, log.InfoLevel, parseLevel("chatty"))
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	prev := log.StandardLogger().Out
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(CustomLoggerMiddleware())
	r.Get("/sets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sets", nil))
	assert.Contains(t, buf.String(), "GET /sets")
	assert.Contains(t, buf.String(), "418")
	assert.Contains(t, buf.String(), "request_id=")
}

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("test")
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, CreateUniqueInstance("test"))
}
