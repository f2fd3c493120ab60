package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olexiy95/gamebase/internal/models"
)

func TestRootCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"account", "games", "scrape", "analyse", "runs", "status"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestParseAppID(t *testing.T) {
	appID, err := parseAppID("440")
	require.NoError(t, err)
	assert.Equal(t, 440, appID)

	_, err = parseAppID("abc")
	assert.Error(t, err)

	_, err = parseAppID("-1")
	assert.Error(t, err)

	_, err = parseAppID("0")
	assert.Error(t, err)
}

func TestRenderRunStatus(t *testing.T) {
	// Styles degrade to plain text without a TTY; the status word must
	// survive either way.
	assert.Contains(t, renderRunStatus(models.RunComplete), "complete")
	assert.Contains(t, renderRunStatus(models.RunPartial), "partial")
	assert.Contains(t, renderRunStatus(models.RunFailed), "failed")
	assert.Contains(t, renderRunStatus(models.RunRunning), "running")
}

func TestFormatTimeSince(t *testing.T) {
	now := time.Now()

	assert.Equal(t, "just now", formatTimeSince(now.Add(-10*time.Second)))
	assert.Equal(t, "1 minute ago", formatTimeSince(now.Add(-90*time.Second)))
	assert.Equal(t, "5 minutes ago", formatTimeSince(now.Add(-5*time.Minute)))
	assert.Equal(t, "2 hours ago", formatTimeSince(now.Add(-2*time.Hour)))
	assert.Equal(t, "3 days ago", formatTimeSince(now.Add(-72*time.Hour)))

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Format("2006-01-02"), formatTimeSince(old))
}
