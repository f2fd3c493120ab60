// Package scraper implements the scrape-ingest pipeline: rate-limited,
// retrying stat fetches across a bounded worker pool, normalization, and
// idempotent persistence, with every invocation audited as a ScrapeRun.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Olexiy95/gamebase/internal/db"
	"github.com/Olexiy95/gamebase/internal/log"
	"github.com/Olexiy95/gamebase/internal/models"
	"github.com/Olexiy95/gamebase/internal/steam"
)

// ErrUnknownAccount is returned when scraping an account the registry does
// not track.
var ErrUnknownAccount = errors.New("account not tracked")

// Client defines the interface for Steam data fetching. *steam.Client
// implements it; tests substitute fakes.
type Client interface {
	GetPlayerSummary(ctx context.Context, steamID string) (*steam.PlayerSummary, error)
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
	FetchGameStats(ctx context.Context, steamID string, appID int) (*steam.GamePayload, error)
}

// Config holds scrape orchestration tunables.
type Config struct {
	// Workers is the worker pool size.
	Workers int
	// MaxAttempts bounds tries per game for transient failures.
	MaxAttempts int
	// BackoffBase is the initial retry delay, doubled per attempt.
	BackoffBase time.Duration
	// BackoffMax caps the retry delay.
	BackoffMax time.Duration
	// LimiterWait bounds blocking on rate-limiter token acquisition.
	LimiterWait time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:     4,
		MaxAttempts: 4,
		BackoffBase: 500 * time.Millisecond,
		BackoffMax:  8 * time.Second,
		LimiterWait: 30 * time.Second,
	}
}

// Scraper orchestrates the fetch-normalize-persist pipeline.
//
// The rate limiter is passed in and shared by reference across all workers of
// a run; callers that scrape several accounts concurrently should hand every
// Scraper the same limiter so the global API quota is respected.
type Scraper struct {
	client  Client
	db      *db.DB
	limiter *rate.Limiter
	cfg     Config
}

// New creates a Scraper. A nil limiter gets a conservative default of one
// request per second.
func New(client Client, database *db.DB, limiter *rate.Limiter, cfg Config) *Scraper {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = def.BackoffBase
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = def.BackoffMax
	}
	if cfg.LimiterWait <= 0 {
		cfg.LimiterWait = def.LimiterWait
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(1), 1)
	}

	return &Scraper{
		client:  client,
		db:      database,
		limiter: limiter,
		cfg:     cfg,
	}
}

// ScrapeAccount fetches the player summary for steamID and persists it.
func (s *Scraper) ScrapeAccount(ctx context.Context, steamID string) (*models.Account, error) {
	summary, err := s.client.GetPlayerSummary(ctx, steamID)
	if err != nil {
		return nil, fmt.Errorf("fetch player summary: %w", err)
	}

	avatar := summary.AvatarFull
	if avatar == "" {
		avatar = summary.Avatar
	}

	account := &models.Account{
		SteamID:     summary.SteamID,
		PersonaName: summary.PersonaName,
		ProfileURL:  summary.ProfileURL,
		AvatarURL:   avatar,
		RealName:    summary.RealName,
		CountryCode: summary.CountryCode,
	}
	if err := s.db.UpsertAccount(account); err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}
	return account, nil
}

// ImportLibrary fetches the owned-games list for steamID and bulk-imports it
// into the games table. Returns the imported games.
func (s *Scraper) ImportLibrary(ctx context.Context, steamID string) ([]models.Game, error) {
	raw, err := s.client.GetOwnedGames(ctx, steamID)
	if err != nil {
		return nil, fmt.Errorf("fetch owned games: %w", err)
	}

	games := make([]models.Game, 0, len(raw))
	for _, g := range raw {
		if g.AppID <= 0 {
			continue
		}
		name := g.Name
		if name == "" {
			name = fmt.Sprintf("App %d", g.AppID)
		}
		games = append(games, models.Game{
			AppID:           g.AppID,
			Name:            name,
			PlaytimeMinutes: g.PlaytimeForever,
			LastPlayed:      unixTime(g.RTimeLastPlayed),
			IconURL:         g.ImgIconURL,
		})
	}

	if _, err := s.db.ImportGames(games); err != nil {
		return nil, fmt.Errorf("import games: %w", err)
	}
	return games, nil
}

// gameOutcome is what a worker reports back to the collector for one game.
type gameOutcome struct {
	appID    int
	status   models.OutcomeStatus
	reason   string
	systemic bool
}

// Scrape runs the full pipeline for one account. If appIDs is empty, all
// tracked games are targeted. The returned run is finalized and includes a
// per-game outcome for every requested game.
func (s *Scraper) Scrape(ctx context.Context, steamID string, appIDs []int) (*models.ScrapeRun, error) {
	account, err := s.db.GetAccount(steamID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, steamID)
	}

	if len(appIDs) == 0 {
		games, err := s.db.ListGames()
		if err != nil {
			return nil, err
		}
		for _, g := range games {
			appIDs = append(appIDs, g.AppID)
		}
	}

	run := &models.ScrapeRun{
		ID:             uuid.NewString(),
		SteamID:        steamID,
		Status:         models.RunPending,
		StartedAt:      time.Now(),
		RequestedCount: len(appIDs),
		RequestedApps:  appIDs,
	}
	if err := s.db.CreateRun(run); err != nil {
		return nil, err
	}
	if err := s.db.MarkRunRunning(run.ID); err != nil {
		return nil, err
	}

	if len(appIDs) == 0 {
		if err := s.db.FinalizeRun(run.ID, models.RunComplete); err != nil {
			return nil, err
		}
		return s.db.GetRun(run.ID)
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	// Set on auth failure; workers drain remaining games as skipped.
	var aborted atomic.Bool

	jobs := make(chan int)
	results := make(chan gameOutcome)

	workers := s.cfg.Workers
	if workers > len(appIDs) {
		workers = len(appIDs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for appID := range jobs {
				results <- s.runGame(runCtx, ctx, &aborted, steamID, appID)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, appID := range appIDs {
			jobs <- appID
		}
	}()

	// Single-writer discipline: only this loop touches the run record.
	var succeeded, failed, skipped, cancelled int
	for range appIDs {
		res := <-results
		if res.systemic && !aborted.Load() {
			aborted.Store(true)
			cancelRun()
		}

		outcome := models.GameOutcome{
			AppID:  res.appID,
			Status: res.status,
			Reason: res.reason,
		}
		if err := s.db.AppendRunOutcome(run.ID, outcome); err != nil {
			log.Errorf("record outcome for app %d: %v", res.appID, err)
		}

		switch res.status {
		case models.OutcomeSucceeded:
			succeeded++
		case models.OutcomeSkipped:
			skipped++
			if res.reason == models.ReasonCancelled {
				cancelled++
			}
		case models.OutcomeFailed:
			failed++
		}
	}
	wg.Wait()

	status := finalStatus(aborted.Load(), succeeded, failed, skipped, cancelled)

	if succeeded > 0 {
		if err := s.db.TouchAccountRefreshed(steamID, time.Now()); err != nil {
			log.Errorf("touch account %s: %v", steamID, err)
		}
	}

	if err := s.db.FinalizeRun(run.ID, status); err != nil {
		return nil, err
	}
	return s.db.GetRun(run.ID)
}

// finalStatus computes the terminal run status once all dispatched work has
// finished. Complete only when every game succeeded; a systemic abort before
// any success is failed, as is a run where nothing was ingested.
func finalStatus(aborted bool, succeeded, failed, skipped, cancelled int) models.RunStatus {
	switch {
	case aborted && succeeded == 0:
		return models.RunFailed
	case cancelled > 0 && succeeded > 0:
		return models.RunPartial
	case failed == 0 && skipped == 0:
		return models.RunComplete
	case succeeded > 0:
		return models.RunPartial
	default:
		return models.RunFailed
	}
}

// runGame wraps processGame with the abort/cancel bookkeeping a worker needs.
// runCtx is cancelled on abort; parent is the caller's context, consulted to
// tell an external cancellation apart from a systemic abort.
func (s *Scraper) runGame(runCtx, parent context.Context, aborted *atomic.Bool, steamID string, appID int) gameOutcome {
	if aborted.Load() {
		return gameOutcome{appID: appID, status: models.OutcomeSkipped, reason: models.ReasonAborted}
	}
	if parent.Err() != nil {
		return gameOutcome{appID: appID, status: models.OutcomeSkipped, reason: models.ReasonCancelled}
	}

	res := s.processGame(runCtx, steamID, appID)

	// A context-cancelled outcome is an abort artifact when the abort flag is
	// up, a user cancellation otherwise.
	if res.status == models.OutcomeSkipped && res.reason == models.ReasonCancelled && aborted.Load() {
		res.reason = models.ReasonAborted
	}
	return res
}

// processGame runs the fetch-normalize-persist pipeline for a single game,
// retrying transient fetch failures with exponential backoff.
func (s *Scraper) processGame(ctx context.Context, steamID string, appID int) gameOutcome {
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := s.sleepBackoff(ctx, attempt-1); err != nil {
				return gameOutcome{appID: appID, status: models.OutcomeSkipped, reason: models.ReasonCancelled}
			}
		}

		// Token acquisition with a bounded wait; expiry is a transient
		// failure for this attempt, not a crash.
		if err := s.waitForToken(ctx); err != nil {
			if ctx.Err() != nil {
				return gameOutcome{appID: appID, status: models.OutcomeSkipped, reason: models.ReasonCancelled}
			}
			lastErr = err
			continue
		}

		payload, err := s.client.FetchGameStats(ctx, steamID, appID)
		if err != nil {
			if ctx.Err() != nil {
				return gameOutcome{appID: appID, status: models.OutcomeSkipped, reason: models.ReasonCancelled}
			}
			if fe, ok := steam.AsFetchError(err); ok {
				switch {
				case fe.Systemic():
					return gameOutcome{appID: appID, status: models.OutcomeFailed, reason: fe.Reason(), systemic: true}
				case fe.Retryable():
					lastErr = err
					continue
				default:
					return gameOutcome{appID: appID, status: models.OutcomeSkipped, reason: fe.Reason()}
				}
			}
			// Unclassified fetch errors are treated as transient.
			lastErr = err
			continue
		}

		achievements, stats, err := Normalize(payload)
		if err != nil {
			return gameOutcome{appID: appID, status: models.OutcomeFailed, reason: err.Error()}
		}

		if _, err := s.db.UpsertGameRecords(steamID, appID, achievements, stats); err != nil {
			return gameOutcome{appID: appID, status: models.OutcomeFailed, reason: err.Error()}
		}

		return gameOutcome{appID: appID, status: models.OutcomeSucceeded}
	}

	return gameOutcome{
		appID:  appID,
		status: models.OutcomeFailed,
		reason: fmt.Sprintf("transient failure after %d attempts: %v", s.cfg.MaxAttempts, lastErr),
	}
}

// waitForToken blocks on the shared limiter for at most cfg.LimiterWait.
func (s *Scraper) waitForToken(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.LimiterWait)
	defer cancel()

	if err := s.limiter.Wait(waitCtx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// sleepBackoff sleeps for the exponential backoff delay of the given retry,
// honoring context cancellation.
func (s *Scraper) sleepBackoff(ctx context.Context, retry int) error {
	delay := s.cfg.BackoffBase << (retry - 1)
	if delay > s.cfg.BackoffMax {
		delay = s.cfg.BackoffMax
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func unixTime(ts int64) *time.Time {
	if ts <= 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}
