package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for everything except the credential, which has none on purpose.
const (
	DefaultServerPort     = ":8080"
	DefaultModel          = "gemini-2.0-flash"
	DefaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta"
	DefaultMaxBodyBytes   = 32 << 20 // base64-encoded documents get large
	DefaultTimeoutSeconds = 120
)

// DefaultAllowedOrigins is the cross-origin allow-list used when none is
// configured. The single value "*" opts into wildcard CORS instead.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:4173",
}

// ErrMissingAPIKey is returned by Validate when no upstream credential is set.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not configured")

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults
type Config struct {
	// APIKey is the server-held Gemini credential. Required.
	APIKey string

	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// AllowedOrigins is the CORS allow-list shared by both deployment
	// surfaces; "*" as the only entry allows any origin.
	AllowedOrigins []string

	// DefaultModel is used when a request leaves model unset
	DefaultModel string

	// BaseURL is the Gemini API root (overridable for tests)
	BaseURL string

	// MaxBodyBytes caps inbound request bodies
	MaxBodyBytes int64

	// UpstreamTimeout bounds the outbound generateContent call
	UpstreamTimeout time.Duration
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, _ := LoadFile() // Ignore error, use defaults

	return &Config{
		APIKey:          getEnvOrFile("GEMINI_API_KEY", fileConfig.APIKey, ""),
		ServerPort:      getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, DefaultServerPort),
		AllowedOrigins:  getEnvListOrFile("ALLOWED_ORIGINS", fileConfig.AllowedOrigins, DefaultAllowedOrigins),
		DefaultModel:    getEnvOrFile("GEMINI_MODEL", fileConfig.DefaultModel, DefaultModel),
		BaseURL:         getEnvOrFile("GEMINI_BASE_URL", fileConfig.BaseURL, DefaultBaseURL),
		MaxBodyBytes:    getEnvInt64OrFile("MAX_BODY_BYTES", fileConfig.MaxBodyBytes, DefaultMaxBodyBytes),
		UpstreamTimeout: time.Duration(getEnvInt64OrFile("UPSTREAM_TIMEOUT_SECONDS", fileConfig.UpstreamTimeoutSeconds, DefaultTimeoutSeconds)) * time.Second,
	}
}

// Validate reports whether the configuration is usable at all. Callers decide
// whether a failure is fatal or answered per request.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvInt64OrFile returns env int64, file int64, or default (in priority order)
func getEnvInt64OrFile(key string, fileValue *int64, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	if fileValue != nil && *fileValue > 0 {
		return *fileValue
	}
	return defaultValue
}

// getEnvListOrFile returns a comma-separated env list, file list, or default
// (in priority order). Blank entries are dropped.
func getEnvListOrFile(key string, fileValue, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	if len(fileValue) > 0 {
		return fileValue
	}
	return defaultValue
}
