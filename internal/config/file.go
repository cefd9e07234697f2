package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	APIKey                 string   `toml:"gemini_api_key"`
	ServerPort             string   `toml:"server_port"`
	AllowedOrigins         []string `toml:"allowed_origins"`
	DefaultModel           string   `toml:"default_model"`
	BaseURL                string   `toml:"base_url"`
	MaxBodyBytes           *int64   `toml:"max_body_bytes"`
	UpstreamTimeoutSeconds *int64   `toml:"upstream_timeout_seconds"`
}

// ConfigPath returns the path to the config file (~/.autopo/config.toml).
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	cfg := &FileConfig{}

	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	// Ensure directory exists
	if err := EnsureDataDir(); err != nil {
		return err
	}

	defaultConfig := `# Autopo Server Configuration
# The GEMINI_API_KEY environment variable takes precedence over this file.
# gemini_api_key = "AIza..."

# server_port = ":8080"

# Origins allowed to call the API from a browser. Use ["*"] to allow any.
# allowed_origins = ["http://localhost:5173", "http://localhost:4173"]

# Model used when a request does not name one
# default_model = "gemini-2.0-flash"

# Gemini API root
# base_url = "https://generativelanguage.googleapis.com/v1beta"

# Cap on inbound request bodies, in bytes (default 32 MiB)
# max_body_bytes = 33554432

# Outbound call deadline, in seconds
# upstream_timeout_seconds = 120
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
