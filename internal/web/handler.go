package web

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Paarth01/Auto-Focus-Mode/internal/config"
	"github.com/Paarth01/Auto-Focus-Mode/internal/controller"
	"github.com/Paarth01/Auto-Focus-Mode/internal/database"
	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
	"github.com/Paarth01/Auto-Focus-Mode/internal/sessions"
	"github.com/Paarth01/Auto-Focus-Mode/pkg/utils"
)

const defaultSessionLimit = 50

type Handler struct {
	config     *config.Config
	controller *controller.Controller
	facade     *sessions.Facade
	repo       *database.Repository
}

func NewHandler(cfg *config.Config, ctrl *controller.Controller, facade *sessions.Facade, repo *database.Repository) *Handler {
	return &Handler{
		config:     cfg,
		controller: ctrl,
		facade:     facade,
		repo:       repo,
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/api/start", h.handleStart)
	mux.HandleFunc("/api/stop", h.handleStop)
	mux.HandleFunc("/api/sessions", h.handleSessions)
	mux.HandleFunc("/api/stats", h.handleStats)
	mux.HandleFunc("/api/log", h.handleLog)

	mux.HandleFunc("/health", h.handleHealth)

	mux.HandleFunc("/", h.handleIndex)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"status":        string(h.controller.Status()),
		"poll_interval": h.config.Tracker.PollInterval.String(),
		"policy_path":   h.config.Focus.PolicyPath,
	}

	if latest, err := h.repo.Latest(); err == nil && latest != nil {
		status["latest_session"] = map[string]interface{}{
			"app_name": latest.AppName,
			"category": latest.Mode,
		}
	}

	respondJSON(w, status)
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.controller.Start() {
		http.Error(w, "Focus mode is already running", http.StatusConflict)
		return
	}

	respondJSON(w, map[string]string{"status": string(controller.StatusRunning)})
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !h.controller.Stop() {
		http.Error(w, "Focus mode is not running", http.StatusConflict)
		return
	}

	respondJSON(w, map[string]string{"status": string(controller.StatusIdle)})
}

func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultSessionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	views, err := h.facade.ListRecent(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch sessions: %v", err), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("HX-Request") == "true" {
		h.respondSessionsHTML(w, views)
		return
	}

	respondJSON(w, views)
}

func (h *Handler) respondSessionsHTML(w http.ResponseWriter, views []models.SessionView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(views) == 0 {
		w.Write([]byte(`<div class="loading">No sessions recorded yet</div>`))
		return
	}

	out := ""
	for _, v := range views {
		out += fmt.Sprintf(`
		<div class="session">
			<span class="app">%s</span>
			<div>
				<span class="%s">%s</span>
				<span class="duration">%s</span>
			</div>
		</div>`,
			html.EscapeString(v.AppName),
			html.EscapeString(string(v.Category)),
			html.EscapeString(string(v.Category)),
			utils.FormatRoundedUnit(v.Duration))
	}

	w.Write([]byte(out))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := h.facade.Stats()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute stats: %v", err), http.StatusInternalServerError)
		return
	}

	respondJSON(w, stats)
}

// handleLog drains buffered task output. Lines are consumed on read;
// two pollers would split the stream between them.
func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lines := h.controller.Logs().Drain()
	payload := make([]map[string]string, 0, len(lines))
	for _, line := range lines {
		payload = append(payload, map[string]string{
			"origin": string(line.Origin),
			"text":   line.Text,
		})
	}

	respondJSON(w, payload)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Auto Focus Mode</title>
    <script src="https://unpkg.com/htmx.org@1.9.10"></script>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: #f5f5f5;
            color: #333;
            padding: 20px;
            max-width: 720px;
            margin: 0 auto;
        }
        h1 { color: #2c3e50; margin-bottom: 20px; }
        .box {
            background: white;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            padding: 20px;
            margin-bottom: 20px;
        }
        .session {
            display: flex;
            justify-content: space-between;
            padding: 8px 4px;
            border-bottom: 1px solid #eee;
        }
        .session:last-child { border-bottom: none; }
        .app { font-weight: 500; }
        .duration { color: #7f8c8d; font-size: 0.9rem; }
        .productive { color: #27ae60; }
        .distracted { color: #e74c3c; }
        .neutral { color: #7f8c8d; }
        .loading { color: #7f8c8d; font-style: italic; }
    </style>
</head>
<body>
    <h1>Auto Focus Mode</h1>
    <div class="box">
        <h2>Recent Sessions</h2>
        <div hx-get="/api/sessions" hx-trigger="load, every 10s" hx-swap="innerHTML">
            <div class="loading">Loading...</div>
        </div>
    </div>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
