package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is read from the environment once at startup and injected into the
// services; nothing reads os.Getenv after this.
type Config struct {
	Port       string
	Env        string
	SSL        bool
	CORSOrigin string

	MongoURI string
	MongoDB  string

	RedisAddr string
	RedisPass string
	RedisDB   int

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 24 * time.Hour
)

// Load builds the Config from the process environment. The database URI is
// required; the token secrets are not checked here, the token service rejects
// issue/verify calls with a config error when a secret is empty.
func Load() (Config, error) {
	cfg := Config{
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		SSL:        os.Getenv("SSL") == "TRUE",
		CORSOrigin: os.Getenv("CORS_ORIGIN"),

		MongoURI: os.Getenv("DB_URI"),
		MongoDB:  os.Getenv("DB_NAME"),

		RedisAddr: os.Getenv("REDIS_HOST"),
		RedisPass: os.Getenv("REDIS_PASS"),

		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "5001"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "http://localhost"
	}
	if cfg.MongoURI == "" {
		return cfg, fmt.Errorf("DB_URI environment variable is required")
	}
	if cfg.MongoDB == "" {
		return cfg, fmt.Errorf("DB_NAME environment variable is required")
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		cfg.RedisDB = n
	}

	var err error
	cfg.AccessTTL, err = parseTTL("ACCESS_TOKEN_EXPIRY", defaultAccessTTL)
	if err != nil {
		return cfg, err
	}
	cfg.RefreshTTL, err = parseTTL("REFRESH_TOKEN_EXPIRY", defaultRefreshTTL)
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func parseTTL(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
