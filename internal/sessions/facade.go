// Package sessions provides read-only queries over the persisted
// session log, deriving per-record durations from consecutive
// timestamps.
package sessions

import (
	"time"

	"github.com/Paarth01/Auto-Focus-Mode/internal/database"
	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
)

// statsWindow is how far back Stats looks.
const statsWindow = 1000

// Store is the slice of the repository the facade needs.
type Store interface {
	RecentRaw(limit int) ([]database.RawSession, error)
}

// Facade answers session-history queries.
type Facade struct {
	store Store
	now   func() time.Time
}

// New creates a facade over store.
func New(store Store) *Facade {
	return &Facade{
		store: store,
		now:   time.Now,
	}
}

// Timestamp layouts seen across schema generations: the SQLite driver's
// native time encoding, RFC 3339, and the bare datetime the earliest
// releases wrote.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListRecent returns up to limit session views, newest first. Each
// record's duration is the gap to the next newer record; the newest
// record measures against now. Records computing a non-positive
// duration (duplicate or out-of-order timestamps) are dropped silently;
// records whose timestamp does not parse are kept with zero duration.
func (f *Facade) ListRecent(limit int) ([]models.SessionView, error) {
	rows, err := f.store.RecentRaw(limit)
	if err != nil {
		return nil, err
	}

	views := make([]models.SessionView, 0, len(rows))
	now := f.now()

	for i, row := range rows {
		view := models.SessionView{
			AppName:  row.AppName,
			Category: models.Category(row.Category),
		}

		ts, ok := parseTimestamp(row.Timestamp)
		if !ok {
			views = append(views, view)
			continue
		}

		ref := now
		if i > 0 {
			next, ok := parseTimestamp(rows[i-1].Timestamp)
			if !ok {
				views = append(views, view)
				continue
			}
			ref = next
		}

		duration := ref.Sub(ts)
		if duration <= 0 {
			continue
		}

		view.Duration = duration
		views = append(views, view)
	}

	return views, nil
}

// Stats aggregates over the most recent session history.
func (f *Facade) Stats() (*models.SessionStats, error) {
	views, err := f.ListRecent(statsWindow)
	if err != nil {
		return nil, err
	}

	stats := &models.SessionStats{TotalSessions: len(views)}
	var total time.Duration
	for _, v := range views {
		total += v.Duration
		switch v.Category {
		case models.CategoryProductive:
			stats.ProductiveCount++
		case models.CategoryDistracted:
			stats.DistractedCount++
		}
	}
	stats.TotalMinutes = total.Minutes()

	return stats, nil
}
