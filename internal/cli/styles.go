package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Olexiy95/gamebase/internal/models"
)

// Styles matching the run/outcome status palette.
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B"))
)

// renderRunStatus colors a run status for terminal output.
func renderRunStatus(status models.RunStatus) string {
	switch status {
	case models.RunComplete:
		return okStyle.Render(string(status))
	case models.RunPartial:
		return warnStyle.Render(string(status))
	case models.RunFailed:
		return failStyle.Render(string(status))
	default:
		return dimStyle.Render(string(status))
	}
}

// renderOutcome colors a per-game outcome status.
func renderOutcome(status models.OutcomeStatus) string {
	switch status {
	case models.OutcomeSucceeded:
		return okStyle.Render(string(status))
	case models.OutcomeSkipped:
		return warnStyle.Render(string(status))
	default:
		return failStyle.Render(string(status))
	}
}

// formatTimeSince formats a duration since a time in a human-readable way.
func formatTimeSince(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("2006-01-02")
	}
}
