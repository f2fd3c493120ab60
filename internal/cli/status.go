package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database location and aggregate counts",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	stats, err := database.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Database: %s (%.1f KB)\n", database.Path(), float64(stats.SizeBytes)/1024)
	fmt.Printf("  Accounts            : %d\n", stats.Accounts)
	fmt.Printf("  Games               : %d\n", stats.Games)
	fmt.Printf("  Achievement records : %d\n", stats.AchievementRecords)
	fmt.Printf("  Scrape runs         : %d\n", stats.ScrapeRuns)
	return nil
}
