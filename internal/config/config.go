package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultHTTPAddr = ":8000"
	// DefaultAllowedOrigin is the frontend dev server origin.
	DefaultAllowedOrigin = "http://localhost:3000"
)

// Config holds runtime settings for the chat backend.
type Config struct {
	HTTPAddr      string
	AllowedOrigin string
	// PublicAppURL prefixes preview share links.
	PublicAppURL string
	// MaxBodyBytes caps JSON request bodies under /api. 0 means no cap.
	MaxBodyBytes int64
	// RateLimit is the number of chat requests allowed per client IP per minute. 0 disables limiting.
	RateLimit int
	LogLevel  slog.Level
	LogFormat string
}

// Load reads the configuration from the environment. Call godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      getenv("CHAT_HTTP_ADDR", DefaultHTTPAddr),
		AllowedOrigin: getenv("CORS_ALLOWED_ORIGIN", DefaultAllowedOrigin),
		LogFormat:     strings.ToLower(getenv("LOG_FORMAT", "json")),
	}
	cfg.PublicAppURL = getenv("PUBLIC_APP_URL", cfg.AllowedOrigin)

	maxBody, err := strconv.ParseInt(getenv("CHAT_MAX_BODY_BYTES", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse CHAT_MAX_BODY_BYTES: %w", err)
	}
	if maxBody < 0 {
		return Config{}, fmt.Errorf("config: CHAT_MAX_BODY_BYTES must not be negative, got %d", maxBody)
	}
	cfg.MaxBodyBytes = maxBody

	rateLimit, err := strconv.Atoi(getenv("CHAT_RATE_LIMIT", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("config: parse CHAT_RATE_LIMIT: %w", err)
	}
	if rateLimit < 0 {
		return Config{}, fmt.Errorf("config: CHAT_RATE_LIMIT must not be negative, got %d", rateLimit)
	}
	cfg.RateLimit = rateLimit

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: parse LOG_LEVEL: %w", err)
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, fmt.Errorf("config: LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// NewLogger builds the process logger described by LogLevel and LogFormat.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
