package database

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"

	"github.com/pkg/errors"
)

// Two schema generations exist in the wild: focus_log is what this
// daemon writes, focus_sessions is the table the earliest releases
// used. Both carry (app, category, timestamp) under different column
// names.
type sessionSchema struct {
	table       string
	categoryCol string
}

var (
	schemaCurrent = sessionSchema{table: "focus_log", categoryCol: "mode"}
	schemaLegacy  = sessionSchema{table: "focus_sessions", categoryCol: "category"}
)

// ErrNoSessionTable reports a database holding neither schema.
var ErrNoSessionTable = errors.New("no session table found (focus_log or focus_sessions)")

// RawSession is a session row before timestamp parsing. The timestamp
// stays a string so the query facade owns parse failures.
type RawSession struct {
	AppName   string `gorm:"column:app_name"`
	Category  string `gorm:"column:category"`
	Timestamp string `gorm:"column:timestamp"`
}

// Repository handles all database operations for focus sessions
type Repository struct {
	db *DB

	detectOnce sync.Once
	schema     sessionSchema
	schemaErr  error
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// LogSession appends a session-transition record.
func (r *Repository) LogSession(session *models.FocusSession) error {
	session.AppName = strings.ToLower(session.AppName)
	result := r.db.Create(session)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert focus session")
	}
	return nil
}

// sessionSchema probes which schema generation this database holds.
// The probe runs once; every later query goes through the detected
// table directly instead of retrying on failure.
func (r *Repository) sessionSchema() (sessionSchema, error) {
	r.detectOnce.Do(func() {
		migrator := r.db.Migrator()
		switch {
		case migrator.HasTable(schemaCurrent.table):
			r.schema = schemaCurrent
		case migrator.HasTable(schemaLegacy.table):
			r.schema = schemaLegacy
		default:
			r.schemaErr = ErrNoSessionTable
		}
	})
	return r.schema, r.schemaErr
}

// RecentRaw returns up to limit session rows, newest first, from
// whichever schema generation the database holds.
func (r *Repository) RecentRaw(limit int) ([]RawSession, error) {
	schema, err := r.sessionSchema()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT app_name, %s AS category, CAST(timestamp AS TEXT) AS timestamp FROM %s ORDER BY timestamp DESC LIMIT ?",
		schema.categoryCol, schema.table,
	)

	var rows []RawSession
	result := r.db.Raw(query, limit).Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query focus sessions")
	}

	return rows, nil
}

// Latest retrieves the most recent session record, or nil when the log
// is empty.
func (r *Repository) Latest() (*models.FocusSession, error) {
	rows, err := r.RecentRaw(1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &models.FocusSession{
		AppName: rows[0].AppName,
		Mode:    models.Category(rows[0].Category),
	}, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes all session records from the detected table.
func (r *Repository) Clear() error {
	schema, err := r.sessionSchema()
	if err != nil {
		return err
	}
	result := r.db.Exec(fmt.Sprintf("DELETE FROM %s", schema.table))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear focus sessions")
	}
	return nil
}
