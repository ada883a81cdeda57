package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	JWTSecret string

	CORSOrigins []string

	// SeedCatalog loads the stock categories and questions on first boot.
	SeedCatalog bool
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:    addr,
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		JWTSecret:   envOr("JWT_SECRET", "supersecret-dev-key"),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
		SeedCatalog: envBool("SEED_CATALOG", true),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
