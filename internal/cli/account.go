package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Olexiy95/gamebase/internal/tracker"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage Steam accounts",
	Long: `Manage the Steam accounts gamebase tracks.

Subcommands:
  add <steam-id>     Add or refresh an account from the Steam Web API
  list               List stored accounts
  remove <steam-id>  Remove a stored account`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var accountAddCmd = &cobra.Command{
	Use:   "add <steam-id>",
	Short: "Add or refresh a Steam account",
	Long: `Fetch the player summary for a 64-bit Steam ID and store it.

Re-adding an existing account refreshes its profile fields.`,
	Args: cobra.ExactArgs(1),
	RunE: runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored Steam accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountRemoveCmd = &cobra.Command{
	Use:     "remove <steam-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a stored Steam account",
	Args:    cobra.ExactArgs(1),
	RunE:    runAccountRemove,
}

func init() {
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountRemoveCmd)
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
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

	account, err := s.ScrapeAccount(cmd.Context(), steamID)
	if err != nil {
		return fmt.Errorf("add account: %w", err)
	}

	fmt.Printf("Added account: %s (%s)\n", account.PersonaName, account.SteamID)
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	accounts, err := tracker.New(database).ListAccounts()
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts stored.")
		fmt.Println("\nUse 'gamebase account add <steam-id>' to add one.")
		return nil
	}

	fmt.Printf("ACCOUNTS (%d stored)\n", len(accounts))
	fmt.Println("──────────────────────────────────────────────────")
	for _, acc := range accounts {
		refreshed := "never"
		if acc.LastRefreshedAt != nil {
			refreshed = formatTimeSince(*acc.LastRefreshedAt)
		}
		fmt.Printf("  %s  %s\n", acc.SteamID, acc.PersonaName)
		fmt.Printf("    %s\n", acc.ProfileURL)
		fmt.Printf("    Last refreshed: %s\n", refreshed)
		fmt.Println()
	}
	return nil
}

func runAccountRemove(cmd *cobra.Command, args []string) error {
	steamID := args[0]

	_, database, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	removed, err := tracker.New(database).RemoveAccount(steamID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("account %s not found", steamID)
	}

	fmt.Printf("Removed account %s.\n", steamID)
	return nil
}
