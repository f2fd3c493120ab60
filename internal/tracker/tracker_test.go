package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olexiy95/gamebase/internal/db"
	"github.com/Olexiy95/gamebase/internal/models"
)

func testTracker(t *testing.T) *Tracker {
	t.Helper()

	database, err := db.New(db.DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return New(database)
}

func TestAddGame_UpsertKeepsNotes(t *testing.T) {
	tr := testTracker(t)

	game, err := tr.AddGame(440, "Team Fortress 2", "free weekend pick")
	require.NoError(t, err)
	assert.Equal(t, "free weekend pick", game.Notes)

	// Re-adding without notes must not clobber them.
	game, err = tr.AddGame(440, "Team Fortress 2", "")
	require.NoError(t, err)
	assert.Equal(t, "free weekend pick", game.Notes)
}

func TestUpdatePlaytime(t *testing.T) {
	tr := testTracker(t)

	_, err := tr.AddGame(440, "Team Fortress 2", "")
	require.NoError(t, err)

	game, err := tr.UpdatePlaytime(440, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, game.PlaytimeMinutes)

	_, err = tr.UpdatePlaytime(999, 10)
	assert.ErrorIs(t, err, ErrNotTracked)
}

func TestUpdateNotes(t *testing.T) {
	tr := testTracker(t)

	_, err := tr.AddGame(440, "Team Fortress 2", "")
	require.NoError(t, err)

	require.NoError(t, tr.UpdateNotes(440, "finished the tutorial"))
	game, err := tr.GetGame(440)
	require.NoError(t, err)
	assert.Equal(t, "finished the tutorial", game.Notes)

	assert.ErrorIs(t, tr.UpdateNotes(999, "x"), ErrNotTracked)
}

func TestRemoveGame(t *testing.T) {
	tr := testTracker(t)

	_, err := tr.AddGame(440, "Team Fortress 2", "")
	require.NoError(t, err)

	removed, err := tr.RemoveGame(440)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = tr.RemoveGame(440)
	require.NoError(t, err)
	assert.False(t, removed)

	game, err := tr.GetGame(440)
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestImportGames_PreservesNotes(t *testing.T) {
	tr := testTracker(t)

	_, err := tr.AddGame(440, "Team Fortress 2", "keep me")
	require.NoError(t, err)

	n, err := tr.ImportGames([]models.Game{
		{AppID: 440, Name: "Team Fortress 2", PlaytimeMinutes: 300},
		{AppID: 570, Name: "Dota 2", PlaytimeMinutes: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	game, err := tr.GetGame(440)
	require.NoError(t, err)
	assert.Equal(t, 300, game.PlaytimeMinutes)
	assert.Equal(t, "keep me", game.Notes)
	require.NotNil(t, game.LastImportedAt)
}

func TestAccounts(t *testing.T) {
	tr := testTracker(t)

	require.NoError(t, tr.db.UpsertAccount(&models.Account{SteamID: "76561198000000001"}))
	require.NoError(t, tr.db.UpsertAccount(&models.Account{SteamID: "76561198000000002"}))

	accounts, err := tr.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	removed, err := tr.RemoveAccount("76561198000000001")
	require.NoError(t, err)
	assert.True(t, removed)

	accounts, err = tr.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "76561198000000002", accounts[0].SteamID)
}
