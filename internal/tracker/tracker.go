// Package tracker manages the local registry of games and accounts. It is a
// thin collaborator over the store; scraping and analysis live elsewhere.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/Olexiy95/gamebase/internal/db"
	"github.com/Olexiy95/gamebase/internal/models"
)

// ErrNotTracked is returned when an operation targets a game that is not in
// the registry.
var ErrNotTracked = errors.New("game not tracked")

// Tracker manages the tracked game collection and known accounts.
type Tracker struct {
	db *db.DB
}

// New creates a Tracker backed by the given store.
func New(database *db.DB) *Tracker {
	return &Tracker{db: database}
}

// AddGame adds or updates a game in the registry (upsert semantics).
func (t *Tracker) AddGame(appID int, name string, notes string) (*models.Game, error) {
	game := &models.Game{
		AppID: appID,
		Name:  name,
		Notes: notes,
	}
	if err := t.db.UpsertGame(game); err != nil {
		return nil, err
	}
	if notes != "" {
		// Upserts leave existing notes alone, so write them explicitly.
		if _, err := t.db.SetGameNotes(appID, notes); err != nil {
			return nil, err
		}
	}
	return t.db.GetGame(appID)
}

// UpdatePlaytime sets the playtime for a tracked game.
func (t *Tracker) UpdatePlaytime(appID int, playtimeMinutes int) (*models.Game, error) {
	game, err := t.db.GetGame(appID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("%w: app id %d", ErrNotTracked, appID)
	}
	game.PlaytimeMinutes = playtimeMinutes
	if err := t.db.UpsertGame(game); err != nil {
		return nil, err
	}
	return game, nil
}

// UpdateNotes replaces the personal notes for a tracked game.
func (t *Tracker) UpdateNotes(appID int, notes string) error {
	found, err := t.db.SetGameNotes(appID, notes)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: app id %d", ErrNotTracked, appID)
	}
	return nil
}

// RemoveGame removes a game from the registry. Returns true if it was tracked.
func (t *Tracker) RemoveGame(appID int) (bool, error) {
	return t.db.DeleteGame(appID)
}

// GetGame returns a tracked game, or nil if not tracked.
func (t *Tracker) GetGame(appID int) (*models.Game, error) {
	return t.db.GetGame(appID)
}

// ListGames returns all tracked games.
func (t *Tracker) ListGames() ([]models.Game, error) {
	return t.db.ListGames()
}

// ImportGames bulk-imports games into the registry and returns how many were
// written.
func (t *Tracker) ImportGames(games []models.Game) (int, error) {
	return t.db.ImportGames(games)
}

// ListAccounts returns all known accounts.
func (t *Tracker) ListAccounts() ([]models.Account, error) {
	return t.db.ListAccounts()
}

// RemoveAccount removes an account. Returns true if it was known.
func (t *Tracker) RemoveAccount(steamID string) (bool, error) {
	return t.db.DeleteAccount(steamID)
}

// LastPlayedAt formats a last-played timestamp for display, or "never".
func LastPlayedAt(ts *time.Time) string {
	if ts == nil {
		return "never"
	}
	return ts.Local().Format("2006-01-02 15:04")
}
