package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Olexiy95/gamebase/internal/models"
)

// UpsertAccount creates or updates an account, preserving CreatedAt.
func (db *DB) UpsertAccount(account *models.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "steam_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"persona_name", "profile_url", "avatar_url",
			"real_name", "country_code", "updated_at",
		}),
	}).Create(account).Error
}

// GetAccount returns the account for steamID, or nil if not stored.
func (db *DB) GetAccount(steamID string) (*models.Account, error) {
	var account models.Account
	err := db.First(&account, "steam_id = ?", steamID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// ListAccounts returns all stored accounts ordered by steam id.
func (db *DB) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := db.Order("steam_id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account. Returns true if a row was deleted.
func (db *DB) DeleteAccount(steamID string) (bool, error) {
	res := db.Delete(&models.Account{}, "steam_id = ?", steamID)
	if res.Error != nil {
		return false, fmt.Errorf("delete account: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// TouchAccountRefreshed stamps the account's last-refreshed time.
func (db *DB) TouchAccountRefreshed(steamID string, at time.Time) error {
	return db.Model(&models.Account{}).
		Where("steam_id = ?", steamID).
		Update("last_refreshed_at", at).Error
}
