package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Olexiy95/gamebase/internal/models"
)

// UpsertGame creates or updates a single game.
func (db *DB) UpsertGame(game *models.Game) error {
	if err := game.Validate(); err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "app_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "playtime_minutes", "last_played", "icon_url",
			"last_imported_at", "updated_at",
			// NOT updated: notes (user-owned)
		}),
	}).Create(game).Error
}

// ImportGames bulk-upserts games from a library import. Playtime is
// last-write-wins; user notes are preserved.
func (db *DB) ImportGames(games []models.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	now := time.Now()
	imported := 0

	err := db.Transaction(func(tx *DB) error {
		for i := range games {
			game := &games[i]
			game.LastImportedAt = &now
			if err := tx.UpsertGame(game); err != nil {
				return fmt.Errorf("import game %d: %w", game.AppID, err)
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// GetGame returns the game for appID, or nil if not tracked.
func (db *DB) GetGame(appID int) (*models.Game, error) {
	var game models.Game
	err := db.First(&game, "app_id = ?", appID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	return &game, nil
}

// ListGames returns all tracked games ordered by app id.
func (db *DB) ListGames() ([]models.Game, error) {
	var games []models.Game
	if err := db.Order("app_id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// SetGameNotes replaces the user notes for a tracked game. Returns true if
// the game exists.
func (db *DB) SetGameNotes(appID int, notes string) (bool, error) {
	res := db.Model(&models.Game{}).Where("app_id = ?", appID).
		Updates(map[string]any{"notes": notes, "updated_at": time.Now()})
	if res.Error != nil {
		return false, fmt.Errorf("set game notes: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteGame removes a game. Returns true if a row was deleted.
func (db *DB) DeleteGame(appID int) (bool, error) {
	res := db.Delete(&models.Game{}, "app_id = ?", appID)
	if res.Error != nil {
		return false, fmt.Errorf("delete game: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
