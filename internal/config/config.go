// Package config handles application configuration management.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Base directory for all gamebase data (~/.gamebase)
	BaseDir string

	// Steam Web API settings
	Steam SteamConfig

	// Scrape pipeline settings
	Scrape ScrapeConfig

	// Analysis settings
	Analysis AnalysisConfig
}

// SteamConfig holds Steam Web API settings.
type SteamConfig struct {
	// APIKey is the Steam Web API key (STEAM_API_KEY env var).
	APIKey string
	// RequestsPerSecond caps the shared rate limiter.
	RequestsPerSecond float64
	// Burst is the limiter bucket size.
	Burst int
	// Timeout for a single API request.
	Timeout time.Duration
}

// ScrapeConfig holds scrape orchestration settings.
type ScrapeConfig struct {
	// Workers is the per-run worker pool size.
	Workers int
	// MaxAttempts bounds tries for transient failures (including the first try).
	MaxAttempts int
	// BackoffBase is the initial retry delay, doubled each attempt.
	BackoffBase time.Duration
	// BackoffMax caps the retry delay.
	BackoffMax time.Duration
	// LimiterWait bounds how long a worker blocks on token acquisition.
	LimiterWait time.Duration
}

// AnalysisConfig holds analysis defaults.
type AnalysisConfig struct {
	// TopN is the default length of ranked lists in reports.
	TopN int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("GAMEBASE_DIR"); dir != "" {
		cfg.BaseDir = dir
	}

	if key := os.Getenv("STEAM_API_KEY"); key != "" {
		cfg.Steam.APIKey = key
	}

	if v := os.Getenv("GAMEBASE_RATE_LIMIT"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps > 0 {
			cfg.Steam.RequestsPerSecond = rps
		}
	}

	if v := os.Getenv("GAMEBASE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scrape.Workers = n
		}
	}

	// Ensure directories exist
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
		GetPaths(cfg).LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
