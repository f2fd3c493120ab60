package db

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olexiy95/gamebase/internal/models"
)

const testSteamID = "76561198000000001"

func ts(hour int) *time.Time {
	t := time.Date(2026, 1, 15, hour, 0, 0, 0, time.UTC)
	return &t
}

func floatPtr(v float64) *float64 { return &v }

func TestUpsertGameRecords_CreateThenIdempotent(t *testing.T) {
	db := testDB(t)

	achievements := []models.AchievementRecord{
		{APIName: "ACH_WIN", DisplayName: "Winner", Unlocked: true, UnlockTime: ts(10)},
		{APIName: "ACH_LOSE", DisplayName: "Loser", Unlocked: false},
	}
	stats := []models.StatRecord{
		{Name: "kills", Value: floatPtr(12)},
		{Name: "deaths", Value: nil},
	}

	result, err := db.UpsertGameRecords(testSteamID, 440, achievements, stats)
	require.NoError(t, err)
	assert.Equal(t, 2, result.AchievementsWritten)
	assert.Equal(t, 2, result.StatsWritten)

	// Re-applying the identical payload must change nothing.
	result, err = db.UpsertGameRecords(testSteamID, 440, achievements, stats)
	require.NoError(t, err)
	assert.True(t, result.Unchanged())
}

func TestUpsertGameRecords_PermanenceNeverClearsUnlock(t *testing.T) {
	db := testDB(t)

	unlocked := []models.AchievementRecord{
		{APIName: "ACH_WIN", DisplayName: "Winner", Unlocked: true, UnlockTime: ts(10)},
	}
	_, err := db.UpsertGameRecords(testSteamID, 440, unlocked, nil)
	require.NoError(t, err)

	// A later scrape reporting the achievement locked is a no-op for the flag.
	relocked := []models.AchievementRecord{
		{APIName: "ACH_WIN", DisplayName: "Winner", Unlocked: false},
	}
	result, err := db.UpsertGameRecords(testSteamID, 440, relocked, nil)
	require.NoError(t, err)
	assert.True(t, result.Unchanged())

	records, err := db.ListAchievements(testSteamID, 440)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Unlocked)
	require.NotNil(t, records[0].UnlockTime)
	assert.True(t, records[0].UnlockTime.Equal(*ts(10)))
}

func TestUpsertGameRecords_PermanenceNeverMovesUnlockTimeEarlier(t *testing.T) {
	db := testDB(t)

	_, err := db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
		{APIName: "ACH_WIN", Unlocked: true, UnlockTime: ts(10)},
	}, nil)
	require.NoError(t, err)

	// Earlier timestamp is rejected.
	result, err := db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
		{APIName: "ACH_WIN", Unlocked: true, UnlockTime: ts(8)},
	}, nil)
	require.NoError(t, err)
	assert.True(t, result.Unchanged())

	// Later timestamp is accepted.
	result, err = db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
		{APIName: "ACH_WIN", Unlocked: true, UnlockTime: ts(12)},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AchievementsWritten)

	records, err := db.ListAchievements(testSteamID, 440)
	require.NoError(t, err)
	require.NotNil(t, records[0].UnlockTime)
	assert.True(t, records[0].UnlockTime.Equal(*ts(12)))
}

func TestUpsertGameRecords_OtherFieldsUpdateDespitePermanence(t *testing.T) {
	db := testDB(t)

	_, err := db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
		{APIName: "ACH_WIN", DisplayName: "Winner", Unlocked: true, UnlockTime: ts(10)},
	}, nil)
	require.NoError(t, err)

	// Locked payload with a renamed display name: the rename lands, the
	// unlock state does not regress.
	result, err := db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
		{APIName: "ACH_WIN", DisplayName: "Champion", Unlocked: false},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AchievementsWritten)

	records, err := db.ListAchievements(testSteamID, 440)
	require.NoError(t, err)
	assert.Equal(t, "Champion", records[0].DisplayName)
	assert.True(t, records[0].Unlocked)
	require.NotNil(t, records[0].UnlockTime)
	assert.True(t, records[0].UnlockTime.Equal(*ts(10)))
}

func TestUpsertGameRecords_AbsentStatDistinctFromZero(t *testing.T) {
	db := testDB(t)

	_, err := db.UpsertGameRecords(testSteamID, 440, nil, []models.StatRecord{
		{Name: "distance", Value: nil},
	})
	require.NoError(t, err)

	stats, err := db.ListStats(testSteamID, 440)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Nil(t, stats[0].Value)

	// Absent -> zero is a real change.
	result, err := db.UpsertGameRecords(testSteamID, 440, nil, []models.StatRecord{
		{Name: "distance", Value: floatPtr(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.StatsWritten)

	stats, err = db.ListStats(testSteamID, 440)
	require.NoError(t, err)
	require.NotNil(t, stats[0].Value)
	assert.Equal(t, float64(0), *stats[0].Value)
}

func TestUpsertGameRecords_ConcurrentWritersSameKey(t *testing.T) {
	db := testDB(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
				{APIName: "ACH_WIN", Unlocked: true, UnlockTime: ts(10 + n%3)},
			}, []models.StatRecord{
				{Name: "kills", Value: floatPtr(float64(n))},
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records, err := db.ListAchievements(testSteamID, 440)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Unlocked)
	require.NotNil(t, records[0].UnlockTime)
	// Permanence holds under concurrency: the kept timestamp is the latest.
	assert.True(t, records[0].UnlockTime.Equal(*ts(12)))
}

func TestAchievementCounts(t *testing.T) {
	db := testDB(t)

	_, err := db.UpsertGameRecords(testSteamID, 440, []models.AchievementRecord{
		{APIName: "A1", Unlocked: true, UnlockTime: ts(10)},
		{APIName: "A2", Unlocked: false},
		{APIName: "A3", Unlocked: true, UnlockTime: ts(11)},
	}, nil)
	require.NoError(t, err)

	_, err = db.UpsertGameRecords(testSteamID, 570, []models.AchievementRecord{
		{APIName: "B1", Unlocked: false},
	}, nil)
	require.NoError(t, err)

	counts, err := db.AchievementCounts(testSteamID)
	require.NoError(t, err)

	assert.Equal(t, AchievementCount{AppID: 440, Total: 3, Unlocked: 2}, counts[440])
	assert.Equal(t, AchievementCount{AppID: 570, Total: 1, Unlocked: 0}, counts[570])
}
