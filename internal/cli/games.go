package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Olexiy95/gamebase/internal/tracker"
)

var gamesAddNotes string

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage tracked games",
	Long: `Manage the local registry of tracked games.

Subcommands:
  list                 List tracked games
  add <app-id> <name>  Manually add a game
  remove <app-id>      Remove a tracked game
  notes <app-id>       Set personal notes on a game
  import <steam-id>    Import owned games from Steam`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked games",
	Args:  cobra.NoArgs,
	RunE:  runGamesList,
}

var gamesAddCmd = &cobra.Command{
	Use:   "add <app-id> <name>",
	Short: "Manually add a game to the registry",
	Args:  cobra.ExactArgs(2),
	RunE:  runGamesAdd,
}

var gamesRemoveCmd = &cobra.Command{
	Use:     "remove <app-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a tracked game",
	Args:    cobra.ExactArgs(1),
	RunE:    runGamesRemove,
}

var gamesNotesCmd = &cobra.Command{
	Use:   "notes <app-id> <notes>",
	Short: "Set personal notes on a tracked game",
	Args:  cobra.ExactArgs(2),
	RunE:  runGamesNotes,
}

var gamesImportCmd = &cobra.Command{
	Use:   "import <steam-id>",
	Short: "Import owned games from Steam",
	Long: `Fetch the owned-games list for a Steam account and bulk-import it.

Playtime is updated to whatever Steam reports. Personal notes on already
tracked games are preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runGamesImport,
}

func init() {
	gamesAddCmd.Flags().StringVar(&gamesAddNotes, "notes", "", "Personal notes")

	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesAddCmd)
	gamesCmd.AddCommand(gamesRemoveCmd)
	gamesCmd.AddCommand(gamesNotesCmd)
	gamesCmd.AddCommand(gamesImportCmd)
}

func parseAppID(arg string) (int, error) {
	appID, err := strconv.Atoi(arg)
	if err != nil || appID <= 0 {
		return 0, fmt.Errorf("invalid app id: %q", arg)
	}
	return appID, nil
}

func runGamesList(cmd *cobra.Command, args []string) error {
	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	games, err := tracker.New(database).ListGames()
	if err != nil {
		return err
	}

	if len(games) == 0 {
		fmt.Println("No games tracked.")
		fmt.Println("\nUse 'gamebase games import <steam-id>' to import your library.")
		return nil
	}

	fmt.Printf("%-10s %8s  %-16s  %s\n", "APP ID", "HOURS", "LAST PLAYED", "NAME")
	fmt.Println("──────────────────────────────────────────────────")
	for _, game := range games {
		fmt.Printf("%-10d %8.1f  %-16s  %s\n",
			game.AppID, game.PlaytimeHours(), tracker.LastPlayedAt(game.LastPlayed), game.Name)
	}
	return nil
}

func runGamesAdd(cmd *cobra.Command, args []string) error {
	appID, err := parseAppID(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	game, err := tracker.New(database).AddGame(appID, name, gamesAddNotes)
	if err != nil {
		return err
	}

	fmt.Printf("Added game: %s (app id %d)\n", game.Name, game.AppID)
	return nil
}

func runGamesRemove(cmd *cobra.Command, args []string) error {
	appID, err := parseAppID(args[0])
	if err != nil {
		return err
	}

	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	removed, err := tracker.New(database).RemoveGame(appID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("game %d not found", appID)
	}

	fmt.Printf("Removed game %d.\n", appID)
	return nil
}

func runGamesNotes(cmd *cobra.Command, args []string) error {
	appID, err := parseAppID(args[0])
	if err != nil {
		return err
	}

	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	if err := tracker.New(database).UpdateNotes(appID, args[1]); err != nil {
		return err
	}

	fmt.Printf("Updated notes for game %d.\n", appID)
	return nil
}

func runGamesImport(cmd *cobra.Command, args []string) error {
	steamID := args[0]

	cfg, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	s, err := newScraper(cfg, database, 0)
	if err != nil {
		return err
	}

	games, err := s.ImportLibrary(cmd.Context(), steamID)
	if err != nil {
		return fmt.Errorf("import library: %w", err)
	}

	fmt.Printf("Imported %d games for %s.\n", len(games), steamID)
	return nil
}
