package config

import "time"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Steam: SteamConfig{
			RequestsPerSecond: 1,
			Burst:             1,
			Timeout:           10 * time.Second,
		},

		Scrape: ScrapeConfig{
			Workers:     4,
			MaxAttempts: 4,
			BackoffBase: 500 * time.Millisecond,
			BackoffMax:  8 * time.Second,
			LimiterWait: 30 * time.Second,
		},

		Analysis: AnalysisConfig{
			TopN: 10,
		},
	}
}
