package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Connect(filepath.Join(t.TempDir(), "focus.db"))
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogSessionAndRecentRaw(t *testing.T) {
	db := openTestDB(t)
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	repo := NewRepository(db)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	sessions := []*models.FocusSession{
		{AppName: "Code", Mode: models.CategoryProductive, Timestamp: base},
		{AppName: "discord", Mode: models.CategoryDistracted, Timestamp: base.Add(10 * time.Minute)},
		{AppName: "firefox", Mode: models.CategoryNeutral, Timestamp: base.Add(25 * time.Minute)},
	}
	for _, s := range sessions {
		if err := repo.LogSession(s); err != nil {
			t.Fatalf("LogSession(%q) error: %v", s.AppName, err)
		}
	}

	rows, err := repo.RecentRaw(10)
	if err != nil {
		t.Fatalf("RecentRaw() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// Newest first, app names lowercased on write.
	wantApps := []string{"firefox", "discord", "code"}
	wantCats := []string{"neutral", "distracted", "productive"}
	for i, row := range rows {
		if row.AppName != wantApps[i] || row.Category != wantCats[i] {
			t.Errorf("row %d = %s/%s, want %s/%s", i, row.AppName, row.Category, wantApps[i], wantCats[i])
		}
	}
}

func TestRecentRawLimit(t *testing.T) {
	db := openTestDB(t)
	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	repo := NewRepository(db)

	base := time.Now()
	for i := 0; i < 5; i++ {
		s := &models.FocusSession{AppName: "code", Mode: models.CategoryProductive, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.LogSession(s); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := repo.RecentRaw(2)
	if err != nil {
		t.Fatalf("RecentRaw() error: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestRecentRawLegacySchema(t *testing.T) {
	db := openTestDB(t)

	// A database written by the earliest releases: focus_sessions with a
	// category column, and no focus_log table at all.
	stmts := []string{
		"CREATE TABLE focus_sessions (id INTEGER PRIMARY KEY AUTOINCREMENT, app_name TEXT NOT NULL, category TEXT NOT NULL, timestamp DATETIME NOT NULL)",
		"INSERT INTO focus_sessions (app_name, category, timestamp) VALUES ('vim', 'productive', '2026-08-28 09:00:00')",
		"INSERT INTO focus_sessions (app_name, category, timestamp) VALUES ('slack', 'distracted', '2026-08-28 09:30:00')",
	}
	for _, stmt := range stmts {
		if result := db.Exec(stmt); result.Error != nil {
			t.Fatalf("exec %q: %v", stmt, result.Error)
		}
	}

	repo := NewRepository(db)
	rows, err := repo.RecentRaw(10)
	if err != nil {
		t.Fatalf("RecentRaw() error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].AppName != "slack" || rows[0].Category != "distracted" {
		t.Errorf("newest row = %+v, want slack/distracted", rows[0])
	}
}

func TestRecentRawNoSessionTable(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)

	if _, err := repo.RecentRaw(10); !errors.Is(err, ErrNoSessionTable) {
		t.Errorf("RecentRaw() error = %v, want ErrNoSessionTable", err)
	}
}

func TestLatest(t *testing.T) {
	db := openTestDB(t)
	if err := db.Initialize(); err != nil {
		t.Fatal(err)
	}
	repo := NewRepository(db)

	latest, err := repo.Latest()
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if latest != nil {
		t.Errorf("Latest() on empty log = %+v, want nil", latest)
	}

	base := time.Now()
	repo.LogSession(&models.FocusSession{AppName: "code", Mode: models.CategoryProductive, Timestamp: base})
	repo.LogSession(&models.FocusSession{AppName: "discord", Mode: models.CategoryDistracted, Timestamp: base.Add(time.Minute)})

	latest, err = repo.Latest()
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if latest == nil || latest.AppName != "discord" || latest.Mode != models.CategoryDistracted {
		t.Errorf("Latest() = %+v, want discord/distracted", latest)
	}
}

func TestClear(t *testing.T) {
	db := openTestDB(t)
	if err := db.Initialize(); err != nil {
		t.Fatal(err)
	}
	repo := NewRepository(db)

	repo.LogSession(&models.FocusSession{AppName: "code", Mode: models.CategoryProductive, Timestamp: time.Now()})
	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}

	rows, err := repo.RecentRaw(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows after Clear(), want 0", len(rows))
	}
}
