package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the autopo data directory.
// - Windows: %APPDATA%\autopo
// - Other OS: ~/.autopo
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "autopo")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".autopo"
	}
	return filepath.Join(home, ".autopo")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
