package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runsLimit   int
	runsSteamID string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past scrape runs",
	Long: `List past scrape runs, newest first.

Each scrape records a run with a per-game outcome trail. Use
'gamebase runs show <run-id>' to inspect a single run.`,
	Args: cobra.NoArgs,
	RunE: runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one scrape run with its per-game outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list")
	runsCmd.Flags().StringVar(&runsSteamID, "account", "", "Only runs for this steam id")

	runsCmd.AddCommand(runsShowCmd)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	runs, err := database.ListRuns(runsSteamID, runsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No scrape runs recorded.")
		return nil
	}

	fmt.Printf("RUNS (%d shown)\n", len(runs))
	fmt.Println("──────────────────────────────────────────────────")
	for _, run := range runs {
		fmt.Printf("  %s  %s\n", run.ID, renderRunStatus(run.Status))
		fmt.Printf("    Account: %s  Requested: %d games\n", run.SteamID, run.RequestedCount)
		fmt.Printf("    Started: %s\n", formatTimeSince(run.StartedAt))
		fmt.Println()
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	run, err := database.GetRun(args[0])
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", args[0])
	}

	printRun(run)
	return nil
}
