package scraper

import (
	"fmt"
	"time"

	"github.com/Olexiy95/gamebase/internal/models"
	"github.com/Olexiy95/gamebase/internal/steam"
)

// ValidationError indicates a malformed payload that cannot be normalized.
// The affected game is marked failed; the run continues.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Msg)
}

// Normalize turns one game's raw payload into canonical achievement and stat
// records. Pure: no side effects, no network access.
//
// Defaulting rules are a contract, not an accident:
//   - a missing "achieved" flag means locked
//   - a missing numeric value yields an absent stat record, distinct from zero
//   - unknown payload fields are ignored for forward compatibility
func Normalize(payload *steam.GamePayload) ([]models.AchievementRecord, []models.StatRecord, error) {
	if payload == nil {
		return nil, nil, &ValidationError{Msg: "nil payload"}
	}

	achievements := make([]models.AchievementRecord, 0, len(payload.Achievements))
	for i, raw := range payload.Achievements {
		if raw.APIName == "" {
			return nil, nil, &ValidationError{Msg: fmt.Sprintf("achievement %d has no api name", i)}
		}

		unlocked := raw.Achieved != nil && *raw.Achieved != 0

		var unlockTime *time.Time
		if unlocked && raw.UnlockTime > 0 {
			t := time.Unix(raw.UnlockTime, 0).UTC()
			unlockTime = &t
		}

		achievements = append(achievements, models.AchievementRecord{
			AppID:       payload.AppID,
			APIName:     raw.APIName,
			DisplayName: raw.Name,
			Description: raw.Description,
			Unlocked:    unlocked,
			UnlockTime:  unlockTime,
		})
	}

	stats := make([]models.StatRecord, 0, len(payload.Stats))
	for i, raw := range payload.Stats {
		if raw.Name == "" {
			return nil, nil, &ValidationError{Msg: fmt.Sprintf("stat %d has no name", i)}
		}
		stats = append(stats, models.StatRecord{
			AppID: payload.AppID,
			Name:  raw.Name,
			Value: raw.Value,
		})
	}

	return achievements, stats, nil
}
