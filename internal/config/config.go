package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the core runtime configuration for the service.
// Values are primarily sourced from environment variables, with
// sensible defaults where appropriate. See .env.example.
type Config struct {
	ListenAddr string

	DatabaseURL string

	// TokenSecret signs and verifies bearer tokens. A single shared
	// HMAC secret, no key rotation.
	TokenSecret string

	// BcryptCost is the work factor for password hashing.
	BcryptCost int

	// AllowedOrigins is the CORS allow-list. Requests without an
	// Origin header are always allowed.
	AllowedOrigins []string

	// BootstrapUser/BootstrapPassword, when both set, ensure an
	// initial account exists at startup.
	BootstrapUser     string
	BootstrapPassword string
}

// Load reads configuration from environment variables and applies defaults.
func Load() *Config {
	cfg := &Config{
		ListenAddr:        getenv("APP_LISTEN_ADDR", ":3004"),
		DatabaseURL:       os.Getenv("APP_DATABASE_URL"),
		TokenSecret:       os.Getenv("APP_TOKEN_KEY"),
		BcryptCost:        10,
		BootstrapUser:     getenv("APP_BOOTSTRAP_USER", ""),
		BootstrapPassword: getenv("APP_BOOTSTRAP_PASSWORD", ""),
	}

	if v := os.Getenv("APP_BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil && cost > 0 {
			cfg.BcryptCost = cost
		}
	}

	if v := os.Getenv("APP_CORS_URLS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
