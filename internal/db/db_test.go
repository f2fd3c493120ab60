package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olexiy95/gamebase/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(Config{
		Path:        dbPath,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})

	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "gamebase.db")

	db, err := New(DefaultConfig(dbPath))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Equal(t, dbPath, db.Path())
	assert.FileExists(t, dbPath)
}

func TestUpsertAccount_CreateAndUpdate(t *testing.T) {
	db := testDB(t)

	acc := &models.Account{SteamID: "76561198000000001", PersonaName: "old"}
	require.NoError(t, db.UpsertAccount(acc))

	acc2 := &models.Account{SteamID: "76561198000000001", PersonaName: "new", CountryCode: "AU"}
	require.NoError(t, db.UpsertAccount(acc2))

	got, err := db.GetAccount("76561198000000001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.PersonaName)
	assert.Equal(t, "AU", got.CountryCode)

	accounts, err := db.ListAccounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestUpsertAccount_RejectsInvalidSteamID(t *testing.T) {
	db := testDB(t)

	err := db.UpsertAccount(&models.Account{SteamID: "not-digits"})
	assert.Error(t, err)
}

func TestGetAccount_NotFound(t *testing.T) {
	db := testDB(t)

	got, err := db.GetAccount("76561198099999999")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteAccount(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertAccount(&models.Account{SteamID: "76561198000000001"}))

	removed, err := db.DeleteAccount("76561198000000001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.DeleteAccount("76561198000000001")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTouchAccountRefreshed(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertAccount(&models.Account{SteamID: "76561198000000001"}))

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.TouchAccountRefreshed("76561198000000001", at))

	got, err := db.GetAccount("76561198000000001")
	require.NoError(t, err)
	require.NotNil(t, got.LastRefreshedAt)
	assert.True(t, got.LastRefreshedAt.Equal(at))
}

func TestImportGames_UpdatesPlaytimePreservesNotes(t *testing.T) {
	db := testDB(t)

	game := &models.Game{AppID: 440, Name: "Team Fortress 2", PlaytimeMinutes: 100, Notes: "mine"}
	require.NoError(t, db.UpsertGame(game))
	require.NoError(t, db.Model(&models.Game{}).Where("app_id = ?", 440).Update("notes", "mine").Error)

	imported, err := db.ImportGames([]models.Game{
		{AppID: 440, Name: "Team Fortress 2", PlaytimeMinutes: 50},
		{AppID: 570, Name: "Dota 2", PlaytimeMinutes: 2000},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	got, err := db.GetGame(440)
	require.NoError(t, err)
	require.NotNil(t, got)
	// Last-write-wins, even when lower than stored.
	assert.Equal(t, 50, got.PlaytimeMinutes)
	assert.Equal(t, "mine", got.Notes)
	assert.NotNil(t, got.LastImportedAt)

	games, err := db.ListGames()
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestDeleteGame(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertGame(&models.Game{AppID: 10, Name: "Counter-Strike"}))

	removed, err := db.DeleteGame(10)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = db.DeleteGame(10)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestStats(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.UpsertAccount(&models.Account{SteamID: "76561198000000001"}))
	require.NoError(t, db.UpsertGame(&models.Game{AppID: 10, Name: "Counter-Strike"}))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Accounts)
	assert.Equal(t, int64(1), stats.Games)
	assert.Greater(t, stats.SizeBytes, int64(0))
}
