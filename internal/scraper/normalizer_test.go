package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olexiy95/gamebase/internal/steam"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestNormalize_AchievementDefaults(t *testing.T) {
	payload := &steam.GamePayload{
		AppID: 440,
		Achievements: []steam.RawAchievement{
			{APIName: "ACH_WIN", Achieved: intPtr(1), UnlockTime: 1700000000, Name: "Winner"},
			{APIName: "ACH_LOSE", Achieved: intPtr(0)},
			// Missing achieved flag defaults to locked.
			{APIName: "ACH_MISSING"},
		},
	}

	achievements, stats, err := Normalize(payload)
	require.NoError(t, err)
	assert.Empty(t, stats)
	require.Len(t, achievements, 3)

	assert.True(t, achievements[0].Unlocked)
	require.NotNil(t, achievements[0].UnlockTime)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), *achievements[0].UnlockTime)
	assert.Equal(t, "Winner", achievements[0].DisplayName)
	assert.Equal(t, 440, achievements[0].AppID)

	assert.False(t, achievements[1].Unlocked)
	assert.Nil(t, achievements[1].UnlockTime)

	assert.False(t, achievements[2].Unlocked)
	assert.Nil(t, achievements[2].UnlockTime)
}

func TestNormalize_UnlockedWithoutTimestamp(t *testing.T) {
	payload := &steam.GamePayload{
		AppID: 440,
		Achievements: []steam.RawAchievement{
			{APIName: "ACH_WIN", Achieved: intPtr(1), UnlockTime: 0},
		},
	}

	achievements, _, err := Normalize(payload)
	require.NoError(t, err)
	assert.True(t, achievements[0].Unlocked)
	assert.Nil(t, achievements[0].UnlockTime)
}

func TestNormalize_AbsentStatIsNotZero(t *testing.T) {
	payload := &steam.GamePayload{
		AppID: 440,
		Stats: []steam.RawStat{
			{Name: "kills", Value: floatPtr(0)},
			{Name: "deaths"},
		},
	}

	_, stats, err := Normalize(payload)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	require.NotNil(t, stats[0].Value)
	assert.Equal(t, float64(0), *stats[0].Value)
	assert.Nil(t, stats[1].Value)
}

func TestNormalize_NilPayload(t *testing.T) {
	_, _, err := Normalize(nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNormalize_RejectsUnnamedEntries(t *testing.T) {
	_, _, err := Normalize(&steam.GamePayload{
		AppID:        440,
		Achievements: []steam.RawAchievement{{APIName: ""}},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, _, err = Normalize(&steam.GamePayload{
		AppID: 440,
		Stats: []steam.RawStat{{Name: ""}},
	})
	require.ErrorAs(t, err, &verr)
}

func TestNormalize_EmptyPayload(t *testing.T) {
	achievements, stats, err := Normalize(&steam.GamePayload{AppID: 440})
	require.NoError(t, err)
	assert.Empty(t, achievements)
	assert.Empty(t, stats)
}
