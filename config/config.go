package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Images    ImageConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Store     StoreConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000
	Mode string // "debug", "release", "test"; default: "release"

	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout time.Duration // default: 5s
}

// UpstreamConfig points at the external summarization API.
type UpstreamConfig struct {
	// BaseURL is the summarization API root.
	BaseURL string // default: "http://localhost:8000"

	// Timeout is the per-request deadline for summary and follow-up calls.
	// Summaries of long PDFs are slow.
	Timeout time.Duration // default: 180s

	// FeedbackTimeout is the deadline for feedback submission.
	FeedbackTimeout time.Duration // default: 15s

	// ApproxyPermit is the fallback value for the approxy_permit cookie
	// when the browser does not send one.
	ApproxyPermit string
}

// ImageConfig controls placeholder image resolution.
type ImageConfig struct {
	// PublicAPIURL overrides the base used for tutorial image links.
	// When empty the base depends on the requesting host.
	PublicAPIURL string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per identity.
	Burst int // default: 5
}

// CacheConfig controls the summary and session cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached entries.
	MaxEntries int // default: 1000

	// TTL is how long summaries and sessions stay cached.
	TTL time.Duration // default: 1h
}

// StoreConfig controls where local state is persisted.
type StoreConfig struct {
	// DataDir holds archive.json and user.json.
	DataDir string // default: "./data"
}

// WebhookConfig controls feedback event delivery.
type WebhookConfig struct {
	// URL receives feedback.submitted events. Empty disables delivery.
	URL string

	// Secret signs the payload with HMAC-SHA256 when set.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory, if present, is applied first;
// variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("config: ignoring unreadable .env file", "error", err)
	}

	return &Config{
		Server: ServerConfig{
			Host:            envOr("GENIE_HOST", "0.0.0.0"),
			Port:            envIntOr("GENIE_PORT", 3000),
			Mode:            envOr("GENIE_MODE", "release"),
			ShutdownTimeout: envDurationOr("GENIE_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:         envOr("GENIE_API_URL", "http://localhost:8000"),
			Timeout:         envDurationOr("GENIE_API_TIMEOUT", 180*time.Second),
			FeedbackTimeout: envDurationOr("GENIE_FEEDBACK_TIMEOUT", 15*time.Second),
			ApproxyPermit:   os.Getenv("GENIE_APPROXY_PERMIT"),
		},
		Images: ImageConfig{
			PublicAPIURL: os.Getenv("GENIE_PUBLIC_API_URL"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("GENIE_AUTH_ENABLED", false),
			APIKeys: envSliceOr("GENIE_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("GENIE_RATE_RPS", 2.0),
			Burst:             envIntOr("GENIE_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("GENIE_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("GENIE_CACHE_TTL", time.Hour),
		},
		Store: StoreConfig{
			DataDir: envOr("GENIE_DATA_DIR", "./data"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("GENIE_WEBHOOK_URL"),
			Secret: os.Getenv("GENIE_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("GENIE_LOG_LEVEL", "info"),
			Format: envOr("GENIE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
