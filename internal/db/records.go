package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Olexiy95/gamebase/internal/models"
)

// UpsertResult summarizes the record changes made by one upsert call.
// Re-applying an identical payload yields a zero result.
type UpsertResult struct {
	AchievementsWritten int
	StatsWritten        int
}

// Unchanged reports whether the upsert was a pure no-op.
func (r UpsertResult) Unchanged() bool {
	return r.AchievementsWritten == 0 && r.StatsWritten == 0
}

// UpsertGameRecords idempotently persists normalized achievement and stat
// records for one (account, game) pair.
//
// The achievement permanence rule is enforced here: an update that would
// clear Unlocked or move UnlockTime earlier than the stored value is reduced
// to a no-op for those fields, while other fields may still update.
// Writes for a given key are serialized against concurrent writers.
func (db *DB) UpsertGameRecords(steamID string, appID int, achievements []models.AchievementRecord, stats []models.StatRecord) (UpsertResult, error) {
	var result UpsertResult

	unlock := db.locks.lock(steamID, appID)
	defer unlock()

	err := db.Transaction(func(tx *DB) error {
		for i := range achievements {
			written, err := tx.upsertAchievement(steamID, appID, &achievements[i])
			if err != nil {
				return err
			}
			if written {
				result.AchievementsWritten++
			}
		}
		for i := range stats {
			written, err := tx.upsertStat(steamID, appID, &stats[i])
			if err != nil {
				return err
			}
			if written {
				result.StatsWritten++
			}
		}
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}
	return result, nil
}

func (db *DB) upsertAchievement(steamID string, appID int, incoming *models.AchievementRecord) (bool, error) {
	incoming.SteamID = steamID
	incoming.AppID = appID
	if !incoming.Unlocked {
		incoming.UnlockTime = nil
	}

	var existing models.AchievementRecord
	err := db.First(&existing,
		"steam_id = ? AND app_id = ? AND api_name = ?",
		steamID, appID, incoming.APIName,
	).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if cerr := db.Create(incoming).Error; cerr != nil {
			return false, persistErr(fmt.Sprintf("create achievement %s", incoming.APIName), cerr)
		}
		return true, nil
	}
	if err != nil {
		return false, persistErr(fmt.Sprintf("load achievement %s", incoming.APIName), err)
	}

	desired := *incoming
	applyPermanence(&desired, &existing)

	if achievementEqual(&desired, &existing) {
		return false, nil
	}

	updates := map[string]interface{}{
		"display_name": desired.DisplayName,
		"description":  desired.Description,
		"unlocked":     desired.Unlocked,
		"unlock_time":  desired.UnlockTime,
		"updated_at":   time.Now(),
	}
	uerr := db.Model(&models.AchievementRecord{}).
		Where("steam_id = ? AND app_id = ? AND api_name = ?", steamID, appID, incoming.APIName).
		Updates(updates).Error
	if uerr != nil {
		return false, persistErr(fmt.Sprintf("update achievement %s", incoming.APIName), uerr)
	}
	return true, nil
}

// applyPermanence folds the stored unlock state into the desired record so a
// recorded unlock is never cleared and its timestamp never moves earlier.
func applyPermanence(desired, existing *models.AchievementRecord) {
	if !existing.Unlocked {
		return
	}
	desired.Unlocked = true
	if desired.UnlockTime == nil {
		desired.UnlockTime = existing.UnlockTime
		return
	}
	if existing.UnlockTime != nil && desired.UnlockTime.Before(*existing.UnlockTime) {
		desired.UnlockTime = existing.UnlockTime
	}
}

func achievementEqual(a, b *models.AchievementRecord) bool {
	return a.DisplayName == b.DisplayName &&
		a.Description == b.Description &&
		a.Unlocked == b.Unlocked &&
		timePtrEqual(a.UnlockTime, b.UnlockTime)
}

func (db *DB) upsertStat(steamID string, appID int, incoming *models.StatRecord) (bool, error) {
	incoming.SteamID = steamID
	incoming.AppID = appID

	var existing models.StatRecord
	err := db.First(&existing,
		"steam_id = ? AND app_id = ? AND name = ?",
		steamID, appID, incoming.Name,
	).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if cerr := db.Create(incoming).Error; cerr != nil {
			return false, persistErr(fmt.Sprintf("create stat %s", incoming.Name), cerr)
		}
		return true, nil
	}
	if err != nil {
		return false, persistErr(fmt.Sprintf("load stat %s", incoming.Name), err)
	}

	if floatPtrEqual(incoming.Value, existing.Value) {
		return false, nil
	}

	uerr := db.Model(&models.StatRecord{}).
		Where("steam_id = ? AND app_id = ? AND name = ?", steamID, appID, incoming.Name).
		Updates(map[string]interface{}{
			"value":      incoming.Value,
			"updated_at": time.Now(),
		}).Error
	if uerr != nil {
		return false, persistErr(fmt.Sprintf("update stat %s", incoming.Name), uerr)
	}
	return true, nil
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ListAchievements returns the achievement records for one account and game.
func (db *DB) ListAchievements(steamID string, appID int) ([]models.AchievementRecord, error) {
	var records []models.AchievementRecord
	err := db.Where("steam_id = ? AND app_id = ?", steamID, appID).
		Order("api_name").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return records, nil
}

// ListStats returns the stat records for one account and game.
func (db *DB) ListStats(steamID string, appID int) ([]models.StatRecord, error) {
	var records []models.StatRecord
	err := db.Where("steam_id = ? AND app_id = ?", steamID, appID).
		Order("name").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	return records, nil
}

// AchievementCount aggregates unlock progress for one game.
type AchievementCount struct {
	AppID    int
	Total    int
	Unlocked int
}

// AchievementCounts returns per-game unlock tallies for one account.
func (db *DB) AchievementCounts(steamID string) (map[int]AchievementCount, error) {
	var rows []AchievementCount
	err := db.Model(&models.AchievementRecord{}).
		Select("app_id, COUNT(*) AS total, SUM(CASE WHEN unlocked THEN 1 ELSE 0 END) AS unlocked").
		Where("steam_id = ?", steamID).
		Group("app_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("achievement counts: %w", err)
	}

	counts := make(map[int]AchievementCount, len(rows))
	for _, row := range rows {
		counts[row.AppID] = row
	}
	return counts, nil
}
