package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olexiy95/gamebase/internal/models"
)

func testRun(t *testing.T, db *DB) *models.ScrapeRun {
	t.Helper()
	run := &models.ScrapeRun{
		ID:             uuid.NewString(),
		SteamID:        testSteamID,
		Status:         models.RunRunning,
		StartedAt:      time.Now(),
		RequestedCount: 3,
		RequestedApps:  []int{440, 570, 730},
	}
	require.NoError(t, db.CreateRun(run))
	return run
}

func TestRunLifecycle(t *testing.T) {
	db := testDB(t)
	run := testRun(t, db)

	// The requested set is stored with the run, before any outcome lands.
	created, err := db.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{440, 570, 730}, created.RequestedApps)
	assert.Empty(t, created.Outcomes)

	require.NoError(t, db.AppendRunOutcome(run.ID, models.GameOutcome{
		AppID: 440, Status: models.OutcomeSucceeded,
	}))
	require.NoError(t, db.AppendRunOutcome(run.ID, models.GameOutcome{
		AppID: 570, Status: models.OutcomeSkipped, Reason: models.ReasonPrivate,
	}))

	require.NoError(t, db.FinalizeRun(run.ID, models.RunPartial))

	got, err := db.GetRun(run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.RunPartial, got.Status)
	assert.NotNil(t, got.CompletedAt)
	require.Len(t, got.Outcomes, 2)
	assert.Equal(t, 1, got.Succeeded())
	assert.Equal(t, 1, got.Skipped())
}

func TestFinalizeRun_ExactlyOnce(t *testing.T) {
	db := testDB(t)
	run := testRun(t, db)

	require.NoError(t, db.FinalizeRun(run.ID, models.RunComplete))

	err := db.FinalizeRun(run.ID, models.RunFailed)
	assert.ErrorIs(t, err, ErrRunFinalized)

	got, err := db.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunComplete, got.Status)
}

func TestFinalizeRun_RejectsNonTerminalStatus(t *testing.T) {
	db := testDB(t)
	run := testRun(t, db)

	err := db.FinalizeRun(run.ID, models.RunRunning)
	assert.Error(t, err)
}

func TestAppendRunOutcome_RejectedAfterFinalize(t *testing.T) {
	db := testDB(t)
	run := testRun(t, db)

	require.NoError(t, db.FinalizeRun(run.ID, models.RunComplete))

	err := db.AppendRunOutcome(run.ID, models.GameOutcome{AppID: 440, Status: models.OutcomeSucceeded})
	assert.ErrorIs(t, err, ErrRunFinalized)
}

func TestListRuns_NewestFirst(t *testing.T) {
	db := testDB(t)

	old := &models.ScrapeRun{
		ID: uuid.NewString(), SteamID: testSteamID,
		Status: models.RunComplete, StartedAt: time.Now().Add(-time.Hour),
	}
	recent := &models.ScrapeRun{
		ID: uuid.NewString(), SteamID: testSteamID,
		Status: models.RunComplete, StartedAt: time.Now(),
	}
	require.NoError(t, db.CreateRun(old))
	require.NoError(t, db.CreateRun(recent))

	runs, err := db.ListRuns(testSteamID, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, recent.ID, runs[0].ID)
}

func TestGetRun_NotFound(t *testing.T) {
	db := testDB(t)

	got, err := db.GetRun(uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)
}
