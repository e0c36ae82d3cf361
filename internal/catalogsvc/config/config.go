package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBPath         string
	Port           string
	RateLimit      int // requests per minute per IP
	JWTSecret      string
	CORSOrigins    []string
	NatsURL        string
	NatsToken      string
	Subject        string
	RequestTimeout time.Duration
	LogDir         string
}

func Load() Config {
	return Config{
		DBPath:         getenv("CATALOG_DB_PATH", "pokemon_tcg.db"),
		Port:           getenv("CATALOG_SERVICE_PORT", "5000"),
		RateLimit:      getInt("RATE_LIMIT", 120),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		NatsURL:        os.Getenv("NATS_URL"), // broker disabled when empty
		NatsToken:      os.Getenv("NATS_TOKEN"),
		Subject:        getenv("CATALOG_SUBJECT", "catalog.lookup"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		LogDir:         os.Getenv("LOG_DIR"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warnf("invalid %s value %q, using %d", key, v, def)
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warnf("invalid %s value %q, using %s", key, v, def)
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
