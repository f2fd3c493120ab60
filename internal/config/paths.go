package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	LogDir   string // Log file directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "gamebase.db"),
		LogDir:   filepath.Join(cfg.BaseDir, "logs"),
	}
}

// DefaultBaseDir returns the default base directory (~/.gamebase).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gamebase"
	}
	return filepath.Join(home, ".gamebase")
}
