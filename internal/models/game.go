package models

import (
	"fmt"
	"time"
)

// Game represents a tracked game in the library.
type Game struct {
	AppID int    `gorm:"primaryKey" json:"app_id"`
	Name  string `gorm:"size:255;index" json:"name"`

	// PlaytimeMinutes is the cumulative playtime reported by the upstream
	// source. Last write wins, even if lower than a previously stored value
	// (an account reset can legitimately shrink it).
	PlaytimeMinutes int `gorm:"default:0" json:"playtime_minutes"`

	LastPlayed *time.Time `json:"last_played"`
	IconURL    string     `gorm:"size:500" json:"icon_url"`
	Notes      string     `gorm:"size:1000" json:"notes"`

	// LastImportedAt records when this game was last seen in a library import.
	LastImportedAt *time.Time `json:"last_imported_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Game) TableName() string {
	return "games"
}

// Validate checks the game's required fields.
func (g *Game) Validate() error {
	if g.AppID <= 0 {
		return fmt.Errorf("invalid app_id: %d", g.AppID)
	}
	if g.PlaytimeMinutes < 0 {
		return fmt.Errorf("playtime_minutes cannot be negative")
	}
	return nil
}

// PlaytimeHours returns playtime expressed in hours.
func (g *Game) PlaytimeHours() float64 {
	return float64(g.PlaytimeMinutes) / 60
}
