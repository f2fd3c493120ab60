package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Olexiy95/gamebase/internal/models"
)

// CreateRun persists a new scrape run in its initial state.
func (db *DB) CreateRun(run *models.ScrapeRun) error {
	if err := db.Create(run).Error; err != nil {
		return persistErr("create run", err)
	}
	return nil
}

// AppendRunOutcome records one game's outcome for a run. It fails with
// ErrRunFinalized if the run has already reached a terminal status.
func (db *DB) AppendRunOutcome(runID string, outcome models.GameOutcome) error {
	return db.Transaction(func(tx *DB) error {
		status, err := tx.runStatus(runID)
		if err != nil {
			return err
		}
		if status.Terminal() {
			return ErrRunFinalized
		}

		outcome.RunID = runID
		if outcome.RecordedAt.IsZero() {
			outcome.RecordedAt = time.Now()
		}
		if err := tx.Create(&outcome).Error; err != nil {
			return persistErr("append outcome", err)
		}
		return nil
	})
}

// FinalizeRun moves a run into a terminal status exactly once.
func (db *DB) FinalizeRun(runID string, status models.RunStatus) error {
	if !status.Terminal() {
		return fmt.Errorf("finalize run: %q is not a terminal status", status)
	}

	return db.Transaction(func(tx *DB) error {
		current, err := tx.runStatus(runID)
		if err != nil {
			return err
		}
		if current.Terminal() {
			return ErrRunFinalized
		}

		now := time.Now()
		uerr := tx.Model(&models.ScrapeRun{}).
			Where("id = ?", runID).
			Updates(map[string]interface{}{
				"status":       status,
				"completed_at": &now,
			}).Error
		if uerr != nil {
			return persistErr("finalize run", uerr)
		}
		return nil
	})
}

// MarkRunRunning moves a pending run into the running state.
func (db *DB) MarkRunRunning(runID string) error {
	return db.Transaction(func(tx *DB) error {
		current, err := tx.runStatus(runID)
		if err != nil {
			return err
		}
		if current.Terminal() {
			return ErrRunFinalized
		}
		uerr := tx.Model(&models.ScrapeRun{}).
			Where("id = ?", runID).
			Update("status", models.RunRunning).Error
		if uerr != nil {
			return persistErr("mark run running", uerr)
		}
		return nil
	})
}

func (db *DB) runStatus(runID string) (models.RunStatus, error) {
	var run models.ScrapeRun
	err := db.Select("status").First(&run, "id = ?", runID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return "", persistErr("load run", err)
	}
	return run.Status, nil
}

// GetRun returns a run with its per-game outcomes, or nil if not stored.
func (db *DB) GetRun(runID string) (*models.ScrapeRun, error) {
	var run models.ScrapeRun
	err := db.Preload("Outcomes", func(q *gorm.DB) *gorm.DB {
		return q.Order("app_id")
	}).First(&run, "id = ?", runID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first. An empty steamID
// matches runs for all accounts.
func (db *DB) ListRuns(steamID string, limit int) ([]models.ScrapeRun, error) {
	var runs []models.ScrapeRun
	q := db.Order("started_at DESC")
	if steamID != "" {
		q = q.Where("steam_id = ?", steamID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
