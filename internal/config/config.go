// Package config loads spotifyctl settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ewilliams-labs/spotifywebapi/pkg/logging"
)

const (
	defaultMaxRetries  = 1
	defaultBackoffMs   = 500
	defaultPort        = "8080"
	defaultTokenDB     = "spotify.db"
	defaultRedirectURI = "http://localhost:8080/callback"
)

// RecordMode selects how HTTP exchanges with the Web API are captured.
type RecordMode string

const (
	RecordOff    RecordMode = "passthrough"
	RecordSave   RecordMode = "record"
	RecordReplay RecordMode = "replay"
)

// Config is the resolved runtime configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	// AccessToken, when set, bypasses the OAuth flow entirely.
	AccessToken string
	APIBaseURL  string
	TokenDB     string

	MaxRetries   int
	RetryBackoff time.Duration

	LogLevel   logging.Level
	RecordMode RecordMode
	Port       string
}

// Load reads .env from the working directory if present, then the
// environment. Unparseable numbers fall back to their defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		ClientID:     getenv("SPOTIFY_CLIENT_ID"),
		ClientSecret: getenv("SPOTIFY_CLIENT_SECRET"),
		RedirectURI:  stringOr(getenv("SPOTIFY_REDIRECT_URI"), defaultRedirectURI),
		AccessToken:  getenv("SPOTIFY_ACCESS_TOKEN"),
		APIBaseURL:   getenv("SPOTIFY_API_BASE_URL"),
		TokenDB:      stringOr(getenv("SPOTIFY_TOKEN_DB"), defaultTokenDB),
		MaxRetries:   positiveIntOr(getenv("SPOTIFY_MAX_RETRIES"), defaultMaxRetries),
		RetryBackoff: time.Duration(positiveIntOr(getenv("SPOTIFY_RETRY_BACKOFF_MS"), defaultBackoffMs)) * time.Millisecond,
		Port:         stringOr(getenv("PORT"), defaultPort),
	}

	level, err := logging.ParseLevel(getenv("SPOTIFY_LOG_LEVEL"))
	if err != nil {
		return Config{}, fmt.Errorf("config: SPOTIFY_LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	switch mode := RecordMode(strings.ToLower(getenv("SPOTIFY_RECORD_MODE"))); mode {
	case "":
		cfg.RecordMode = RecordOff
	case RecordOff, RecordSave, RecordReplay:
		cfg.RecordMode = mode
	default:
		return Config{}, fmt.Errorf("config: SPOTIFY_RECORD_MODE: unknown mode %q", mode)
	}

	return cfg, nil
}

// HasCredentials reports whether the OAuth flow can run.
func (c Config) HasCredentials() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func positiveIntOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
		return parsed
	}
	return fallback
}
