package reporter

import (
	"encoding/json"
	"fmt"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
	"github.com/Paarth01/Auto-Focus-Mode/internal/sessions"
	"github.com/Paarth01/Auto-Focus-Mode/pkg/utils"
)

// Reporter formats session history and aggregate stats for output.
type Reporter struct {
	facade *sessions.Facade
}

// New creates a new reporter
func New(facade *sessions.Facade) *Reporter {
	return &Reporter{facade: facade}
}

// Sessions returns up to limit recent session views, newest first.
func (r *Reporter) Sessions(limit int) ([]models.SessionView, error) {
	return r.facade.ListRecent(limit)
}

// Stats returns aggregate stats over recent history.
func (r *Reporter) Stats() (*models.SessionStats, error) {
	return r.facade.Stats()
}

// FormatSessionsText formats session views as a human-readable table.
func (r *Reporter) FormatSessionsText(views []models.SessionView) string {
	if len(views) == 0 {
		return "No sessions recorded yet.\n"
	}

	output := fmt.Sprintf("%-30s %-12s %10s\n", "Application", "Category", "Duration")
	output += "------------------------------------------------------\n"

	for _, v := range views {
		output += fmt.Sprintf("%-30s %-12s %10s\n",
			utils.Truncate(v.AppName, 30),
			v.Category,
			utils.FormatRoundedUnit(v.Duration))
	}

	return output
}

// FormatStatsText formats aggregate stats as human-readable text.
func (r *Reporter) FormatStatsText(stats *models.SessionStats) string {
	if stats.TotalSessions == 0 {
		return "No sessions recorded yet.\n"
	}

	output := "Focus Statistics\n"
	output += fmt.Sprintf("  Total Sessions:  %d\n", stats.TotalSessions)
	output += fmt.Sprintf("  Total Time:      %.1f minutes\n", stats.TotalMinutes)
	output += fmt.Sprintf("  Productive:      %d\n", stats.ProductiveCount)
	output += fmt.Sprintf("  Distracted:      %d\n", stats.DistractedCount)

	return output
}

// FormatJSON formats any report payload as indented JSON.
func (r *Reporter) FormatJSON(data interface{}) (string, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(out), nil
}
