// Package models defines the core data structures for gamebase.
package models

import (
	"fmt"
	"time"
)

// Account represents a Steam user account tracked by gamebase.
type Account struct {
	SteamID     string `gorm:"primaryKey;size:32" json:"steam_id"`
	PersonaName string `gorm:"size:255" json:"persona_name"`
	ProfileURL  string `gorm:"size:500" json:"profile_url"`
	AvatarURL   string `gorm:"size:500" json:"avatar_url"`
	RealName    string `gorm:"size:255" json:"real_name"`
	CountryCode string `gorm:"size:8" json:"country_code"`

	// LastRefreshedAt records the most recent successful scrape.
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Account) TableName() string {
	return "accounts"
}

// Validate checks the account's required fields.
func (a *Account) Validate() error {
	if a.SteamID == "" {
		return fmt.Errorf("steam_id must not be empty")
	}
	for _, r := range a.SteamID {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid steam_id: %q", a.SteamID)
		}
	}
	return nil
}
