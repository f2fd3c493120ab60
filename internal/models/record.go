package models

import "time"

// AchievementRecord is one achievement's unlock state for one account and game.
//
// Unlocks are permanent: once Unlocked is true with an UnlockTime, later
// scrapes may never clear the flag or move the timestamp earlier. The
// persistence layer enforces this, not callers.
type AchievementRecord struct {
	SteamID string `gorm:"primaryKey;size:32" json:"steam_id"`
	AppID   int    `gorm:"primaryKey" json:"app_id"`
	APIName string `gorm:"primaryKey;size:255" json:"api_name"`

	DisplayName string `gorm:"size:255" json:"display_name"`
	Description string `gorm:"size:1000" json:"description"`

	Unlocked bool `gorm:"default:false" json:"unlocked"`
	// UnlockTime is set iff Unlocked is true.
	UnlockTime *time.Time `json:"unlock_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (AchievementRecord) TableName() string {
	return "achievement_records"
}

// StatRecord is one numeric stat value for one account and game.
//
// Value is nil when the source omitted the stat. Absent is not zero:
// consumers must treat a nil Value as "no data".
type StatRecord struct {
	SteamID string `gorm:"primaryKey;size:32" json:"steam_id"`
	AppID   int    `gorm:"primaryKey" json:"app_id"`
	Name    string `gorm:"primaryKey;size:255" json:"name"`

	Value *float64 `json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (StatRecord) TableName() string {
	return "stat_records"
}
