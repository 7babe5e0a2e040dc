package reporter

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
)

func TestFormatSessionsText(t *testing.T) {
	r := New(nil)

	views := []models.SessionView{
		{AppName: "code", Category: models.CategoryProductive, Duration: 25 * time.Minute},
		{AppName: "discord", Category: models.CategoryDistracted, Duration: 90 * time.Second},
	}

	out := r.FormatSessionsText(views)
	for _, want := range []string{"code", "productive", "25m", "discord", "distracted", "1m"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSessionsTextEmpty(t *testing.T) {
	out := New(nil).FormatSessionsText(nil)
	if !strings.Contains(out, "No sessions") {
		t.Errorf("empty listing = %q", out)
	}
}

func TestFormatStatsText(t *testing.T) {
	r := New(nil)
	stats := &models.SessionStats{
		TotalSessions:   5,
		TotalMinutes:    42.5,
		ProductiveCount: 3,
		DistractedCount: 2,
	}

	out := r.FormatStatsText(stats)
	for _, want := range []string{"5", "42.5", "Productive:      3", "Distracted:      2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	r := New(nil)
	out, err := r.FormatJSON(&models.SessionStats{TotalSessions: 1})
	if err != nil {
		t.Fatalf("FormatJSON() error: %v", err)
	}

	var decoded models.SessionStats
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalSessions != 1 {
		t.Errorf("round-trip TotalSessions = %d, want 1", decoded.TotalSessions)
	}
}
