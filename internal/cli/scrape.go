package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Olexiy95/gamebase/internal/models"
)

var scrapeWorkers int

var scrapeCmd = &cobra.Command{
	Use:   "scrape <steam-id> [app-id...]",
	Short: "Scrape achievement and stat data from Steam",
	Long: `Scrape achievement and stat data for an account's games.

Without app ids, every tracked game is scraped. Each game is fetched under
the shared rate limit with retries for transient failures; private or
missing games are skipped without failing the run.

The run is recorded with a per-game outcome trail. Inspect past runs with
'gamebase runs'.

Examples:
  # Scrape all tracked games
  gamebase scrape 76561198000000001

  # Scrape two specific games with a bigger worker pool
  gamebase scrape 76561198000000001 440 570 --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeWorkers, "workers", 0, "Worker pool size (default from config)")
}

func runScrape(cmd *cobra.Command, args []string) error {
	steamID := args[0]

	appIDs := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		appID, err := parseAppID(arg)
		if err != nil {
			return err
		}
		appIDs = append(appIDs, appID)
	}

	cfg, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	s, err := newScraper(cfg, database, scrapeWorkers)
	if err != nil {
		return err
	}

	run, err := s.Scrape(cmd.Context(), steamID, appIDs)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	printRun(run)
	return nil
}

// printRun renders the run summary and its per-game outcome trail.
func printRun(run *models.ScrapeRun) {
	fmt.Printf("\nRun %s  %s\n", run.ID, renderRunStatus(run.Status))
	fmt.Printf("  Requested: %d games\n", run.RequestedCount)
	fmt.Printf("  Succeeded: %d  Skipped: %d  Failed: %d\n",
		run.Succeeded(), run.Skipped(), run.Failed())
	if run.CompletedAt != nil {
		fmt.Printf("  Duration:  %s\n", run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}

	if len(run.Outcomes) == 0 {
		return
	}
	fmt.Println()
	for _, outcome := range run.Outcomes {
		line := fmt.Sprintf("  %-10d %s", outcome.AppID, renderOutcome(outcome.Status))
		if outcome.Reason != "" {
			line += dimStyle.Render("  " + outcome.Reason)
		}
		fmt.Println(line)
	}
}
