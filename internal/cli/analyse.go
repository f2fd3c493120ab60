package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Olexiy95/gamebase/internal/analyser"
)

var analyseTopN int

var analyseCmd = &cobra.Command{
	Use:     "analyse <steam-id>",
	Aliases: []string{"analyze"},
	Short:   "Analyse stored stats for a Steam account",
	Long: `Derive a library report for an account from stored data.

The report is computed entirely from the local database; no network access
is performed. Scrape first to populate it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyse,
}

func init() {
	analyseCmd.Flags().IntVar(&analyseTopN, "top", 0, "Length of ranked lists (default from config)")
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	steamID := args[0]

	cfg, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	topN := cfg.Analysis.TopN
	if analyseTopN > 0 {
		topN = analyseTopN
	}

	a := analyser.New(database, topN)
	report, err := a.Analyse(steamID)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Library report for %s ===\n", report.SteamID)
	fmt.Printf("  Total games tracked : %d\n", report.TotalGames)
	fmt.Printf("  Total playtime      : %.1f hours\n", float64(report.TotalPlaytimeMinutes)/60)
	if report.AverageCompletionRate != nil {
		fmt.Printf("  Average completion  : %.1f%%\n", *report.AverageCompletionRate*100)
	} else {
		fmt.Println("  Average completion  : n/a (no games with tracked achievements)")
	}

	if len(report.TopPlayed) > 0 {
		fmt.Printf("\n  Top %d most-played games:\n", topN)
		for _, g := range report.TopPlayed {
			fmt.Printf("    %8.1fh  %s\n", float64(g.PlaytimeMinutes)/60, g.Name)
		}
	}

	if len(report.MostComplete) > 0 {
		fmt.Printf("\n  Top %d most-completed games:\n", topN)
		for _, g := range report.MostComplete {
			fmt.Printf("    %5.1f%%  %s (%d/%d)\n",
				*g.CompletionRate*100, g.Name, g.AchievementsUnlocked, g.AchievementsTotal)
		}
	}

	fmt.Printf("\n  Unplayed games      : %d\n", len(report.Unplayed))

	completed, err := a.CompletedGames(steamID)
	if err != nil {
		return err
	}
	fmt.Printf("  Fully completed     : %d\n", len(completed))

	return nil
}
