// Package analyser derives library reports from persisted game and
// achievement data. It is read-only: reports are computed from a consistent
// snapshot and the store is never mutated.
package analyser

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Olexiy95/gamebase/internal/db"
	"github.com/Olexiy95/gamebase/internal/models"
)

// ErrAccountNotFound is returned when analysing an account the registry does
// not track.
var ErrAccountNotFound = errors.New("account not found")

// GameReport is the summarized view of one game's progress.
type GameReport struct {
	AppID           int    `json:"app_id"`
	Name            string `json:"name"`
	PlaytimeMinutes int    `json:"playtime_minutes"`

	AchievementsTotal    int `json:"achievements_total"`
	AchievementsUnlocked int `json:"achievements_unlocked"`

	// CompletionRate is unlocked/total, nil when the game has no tracked
	// achievements. Undefined is not 0.0 and not 1.0.
	CompletionRate *float64 `json:"completion_rate"`
}

// Completed reports whether every tracked achievement is unlocked. Games
// without tracked achievements are never "completed".
func (g GameReport) Completed() bool {
	return g.AchievementsTotal > 0 && g.AchievementsUnlocked == g.AchievementsTotal
}

// Report is the aggregate analysis for one account's library.
type Report struct {
	SteamID string `json:"steam_id"`

	TotalGames           int `json:"total_games"`
	TotalPlaytimeMinutes int `json:"total_playtime_minutes"`

	// AverageCompletionRate averages only over games with a defined rate;
	// nil when no game has one.
	AverageCompletionRate *float64 `json:"average_completion_rate"`

	TopPlayed    []GameReport `json:"top_played"`
	MostComplete []GameReport `json:"most_complete"`
	LeastPlayed  []GameReport `json:"least_played"`
	Unplayed     []GameReport `json:"unplayed"`
}

// Analyser computes derived reports from the store.
type Analyser struct {
	db   *db.DB
	topN int
}

// New creates an Analyser. topN bounds the ranked lists in reports.
func New(database *db.DB, topN int) *Analyser {
	if topN < 0 {
		topN = 0
	}
	return &Analyser{db: database, topN: topN}
}

// Analyse builds the full report for one account from a consistent snapshot.
func (a *Analyser) Analyse(steamID string) (*Report, error) {
	var report *Report

	err := a.db.Transaction(func(tx *db.DB) error {
		account, err := tx.GetAccount(steamID)
		if err != nil {
			return err
		}
		if account == nil {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, steamID)
		}

		games, err := a.gameReports(tx, steamID)
		if err != nil {
			return err
		}
		report = a.buildReport(steamID, games)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GameSummary returns the report for a single game, or nil if not tracked.
func (a *Analyser) GameSummary(steamID string, appID int) (*GameReport, error) {
	game, err := a.db.GetGame(appID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	counts, err := a.db.AchievementCounts(steamID)
	if err != nil {
		return nil, err
	}

	report := toGameReport(*game, counts)
	return &report, nil
}

// CompletedGames returns games where every tracked achievement is unlocked.
func (a *Analyser) CompletedGames(steamID string) ([]GameReport, error) {
	games, err := a.gameReports(a.db, steamID)
	if err != nil {
		return nil, err
	}

	var completed []GameReport
	for _, g := range games {
		if g.Completed() {
			completed = append(completed, g)
		}
	}
	return completed, nil
}

// GamesAbovePlaytime returns games with at least minMinutes of playtime.
func (a *Analyser) GamesAbovePlaytime(steamID string, minMinutes int) ([]GameReport, error) {
	games, err := a.gameReports(a.db, steamID)
	if err != nil {
		return nil, err
	}

	var above []GameReport
	for _, g := range games {
		if g.PlaytimeMinutes >= minMinutes {
			above = append(above, g)
		}
	}
	return above, nil
}

func (a *Analyser) gameReports(store *db.DB, steamID string) ([]GameReport, error) {
	games, err := store.ListGames()
	if err != nil {
		return nil, err
	}
	counts, err := store.AchievementCounts(steamID)
	if err != nil {
		return nil, err
	}

	reports := make([]GameReport, 0, len(games))
	for _, game := range games {
		reports = append(reports, toGameReport(game, counts))
	}
	return reports, nil
}

func toGameReport(game models.Game, counts map[int]db.AchievementCount) GameReport {
	report := GameReport{
		AppID:           game.AppID,
		Name:            game.Name,
		PlaytimeMinutes: game.PlaytimeMinutes,
	}

	if count, ok := counts[game.AppID]; ok {
		report.AchievementsTotal = count.Total
		report.AchievementsUnlocked = count.Unlocked
		if count.Total > 0 {
			rate := float64(count.Unlocked) / float64(count.Total)
			report.CompletionRate = &rate
		}
	}
	return report
}

func (a *Analyser) buildReport(steamID string, games []GameReport) *Report {
	report := &Report{
		SteamID:    steamID,
		TotalGames: len(games),
	}

	var rateSum float64
	var rated int
	for _, g := range games {
		report.TotalPlaytimeMinutes += g.PlaytimeMinutes
		if g.CompletionRate != nil {
			rateSum += *g.CompletionRate
			rated++
		}
		if g.PlaytimeMinutes == 0 {
			report.Unplayed = append(report.Unplayed, g)
		}
	}
	if rated > 0 {
		avg := rateSum / float64(rated)
		report.AverageCompletionRate = &avg
	}

	report.TopPlayed = topPlayed(games, a.topN)
	report.MostComplete = mostComplete(games, a.topN)
	report.LeastPlayed = leastPlayed(games, a.topN)

	return report
}

// topPlayed sorts by playtime descending, ties broken by app id ascending,
// truncated to k.
func topPlayed(games []GameReport, k int) []GameReport {
	sorted := make([]GameReport, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PlaytimeMinutes != sorted[j].PlaytimeMinutes {
			return sorted[i].PlaytimeMinutes > sorted[j].PlaytimeMinutes
		}
		return sorted[i].AppID < sorted[j].AppID
	})
	return truncate(sorted, k)
}

// mostComplete ranks only games with a defined completion rate.
func mostComplete(games []GameReport, k int) []GameReport {
	var rated []GameReport
	for _, g := range games {
		if g.CompletionRate != nil {
			rated = append(rated, g)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].CompletionRate != *rated[j].CompletionRate {
			return *rated[i].CompletionRate > *rated[j].CompletionRate
		}
		return rated[i].AppID < rated[j].AppID
	})
	return truncate(rated, k)
}

func leastPlayed(games []GameReport, k int) []GameReport {
	sorted := make([]GameReport, len(games))
	copy(sorted, games)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PlaytimeMinutes != sorted[j].PlaytimeMinutes {
			return sorted[i].PlaytimeMinutes < sorted[j].PlaytimeMinutes
		}
		return sorted[i].AppID < sorted[j].AppID
	})
	return truncate(sorted, k)
}

func truncate(games []GameReport, k int) []GameReport {
	if k < len(games) {
		return games[:k]
	}
	return games
}
