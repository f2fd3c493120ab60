package models

import "time"

// RunStatus is the lifecycle state of a ScrapeRun.
type RunStatus string

const (
	RunPending  RunStatus = "pending"
	RunRunning  RunStatus = "running"
	RunComplete RunStatus = "complete"
	RunPartial  RunStatus = "partial"
	RunFailed   RunStatus = "failed"
)

// Terminal reports whether the status permits no further mutation.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunComplete, RunPartial, RunFailed:
		return true
	}
	return false
}

// OutcomeStatus classifies how a single game fared within a run.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Well-known skip reasons.
const (
	ReasonNotFound  = "not_found"
	ReasonPrivate   = "private"
	ReasonAborted   = "aborted"
	ReasonCancelled = "cancelled"
)

// ScrapeRun is the audit record for one ingestion invocation: which games
// were requested, how each fared, and the overall terminal status.
type ScrapeRun struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	SteamID string `gorm:"size:32;index" json:"steam_id"`

	Status RunStatus `gorm:"size:16;index" json:"status"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// RequestedCount is the size of the requested app-id set.
	RequestedCount int `gorm:"default:0" json:"requested_count"`

	// RequestedApps is the requested app-id set, persisted so a run is
	// inspectable even before any outcome has been recorded.
	RequestedApps []int `gorm:"serializer:json" json:"requested_apps"`

	Outcomes []GameOutcome `gorm:"foreignKey:RunID" json:"outcomes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (ScrapeRun) TableName() string {
	return "scrape_runs"
}

// Succeeded counts per-game successes recorded so far.
func (r *ScrapeRun) Succeeded() int { return r.countOutcomes(OutcomeSucceeded) }

// Skipped counts per-game skips recorded so far.
func (r *ScrapeRun) Skipped() int { return r.countOutcomes(OutcomeSkipped) }

// Failed counts per-game failures recorded so far.
func (r *ScrapeRun) Failed() int { return r.countOutcomes(OutcomeFailed) }

func (r *ScrapeRun) countOutcomes(status OutcomeStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// GameOutcome records how one game fared within a ScrapeRun. Reason is
// human-readable and set for every non-success.
type GameOutcome struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID string `gorm:"size:36;index" json:"run_id"`
	AppID int    `json:"app_id"`

	Status OutcomeStatus `gorm:"size:16" json:"status"`
	Reason string        `gorm:"size:500" json:"reason"`

	RecordedAt time.Time `json:"recorded_at"`
}

// TableName specifies the table name for GORM.
func (GameOutcome) TableName() string {
	return "game_outcomes"
}
