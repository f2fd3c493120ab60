// Package cli provides the command-line interface for gamebase.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/Olexiy95/gamebase/internal/config"
	"github.com/Olexiy95/gamebase/internal/db"
	"github.com/Olexiy95/gamebase/internal/scraper"
	"github.com/Olexiy95/gamebase/internal/steam"
	"github.com/Olexiy95/gamebase/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "gamebase",
	Short: "Steam library tracking, scraping and analysis",
	Long: `Steam library tracking, scraping and analysis

Track your Steam games locally, scrape achievement and stat data from the
Steam Web API under a shared rate limit, and derive library reports
(completion rates, most-played, unplayed backlog) from the stored data.

A Steam Web API key is required for commands that talk to Steam.
Set it with the STEAM_API_KEY environment variable.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the CLI with fang enhancements.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(version.Short()),
		fang.WithCommit(version.Commit),
	)
}

// openStore loads configuration and opens the database. The caller owns the
// returned DB and must Close it.
func openStore() (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.DefaultConfig(paths.Database))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}
	return cfg, database, nil
}

// newScraper wires a Steam client, the shared rate limiter and the store into
// a scrape pipeline. Fails when no API key is configured.
func newScraper(cfg *config.Config, database *db.DB, workers int) (*scraper.Scraper, error) {
	if cfg.Steam.APIKey == "" {
		return nil, fmt.Errorf("steam API key required: set STEAM_API_KEY")
	}

	client, err := steam.NewClient(steam.ClientConfig{
		APIKey:  cfg.Steam.APIKey,
		Timeout: cfg.Steam.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create steam client: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.Steam.RequestsPerSecond), cfg.Steam.Burst)

	scrapeCfg := scraper.Config{
		Workers:     cfg.Scrape.Workers,
		MaxAttempts: cfg.Scrape.MaxAttempts,
		BackoffBase: cfg.Scrape.BackoffBase,
		BackoffMax:  cfg.Scrape.BackoffMax,
		LimiterWait: cfg.Scrape.LimiterWait,
	}
	if workers > 0 {
		scrapeCfg.Workers = workers
	}

	return scraper.New(client, database, limiter, scrapeCfg), nil
}
