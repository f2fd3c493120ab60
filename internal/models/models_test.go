package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountValidate(t *testing.T) {
	tests := []struct {
		name    string
		steamID string
		wantErr bool
	}{
		{"valid", "76561198000000001", false},
		{"empty", "", true},
		{"non-numeric", "abc123", true},
		{"mixed", "7656119x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{SteamID: tt.steamID, PersonaName: "p"}
			err := acc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGameValidate(t *testing.T) {
	g := &Game{AppID: 440, Name: "Team Fortress 2", PlaytimeMinutes: 90}
	assert.NoError(t, g.Validate())

	assert.Error(t, (&Game{AppID: 0, Name: "x"}).Validate())
	assert.Error(t, (&Game{AppID: 10, PlaytimeMinutes: -1}).Validate())
}

func TestGamePlaytimeHours(t *testing.T) {
	g := &Game{AppID: 10, PlaytimeMinutes: 90}
	assert.InDelta(t, 1.5, g.PlaytimeHours(), 0.0001)
}

func TestRunStatusTerminal(t *testing.T) {
	assert.False(t, RunPending.Terminal())
	assert.False(t, RunRunning.Terminal())
	assert.True(t, RunComplete.Terminal())
	assert.True(t, RunPartial.Terminal())
	assert.True(t, RunFailed.Terminal())
}

func TestScrapeRunCounts(t *testing.T) {
	run := &ScrapeRun{
		Outcomes: []GameOutcome{
			{AppID: 1, Status: OutcomeSucceeded},
			{AppID: 2, Status: OutcomeSucceeded},
			{AppID: 3, Status: OutcomeSkipped, Reason: ReasonPrivate},
			{AppID: 4, Status: OutcomeFailed, Reason: "boom"},
		},
	}

	assert.Equal(t, 2, run.Succeeded())
	assert.Equal(t, 1, run.Skipped())
	assert.Equal(t, 1, run.Failed())
}
