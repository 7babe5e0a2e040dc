package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Paarth01/Auto-Focus-Mode/internal/config"
	"github.com/Paarth01/Auto-Focus-Mode/internal/controller"
	"github.com/Paarth01/Auto-Focus-Mode/internal/daemon"
	"github.com/Paarth01/Auto-Focus-Mode/internal/database"
	"github.com/Paarth01/Auto-Focus-Mode/internal/focus"
	"github.com/Paarth01/Auto-Focus-Mode/internal/policy"
	"github.com/Paarth01/Auto-Focus-Mode/internal/reporter"
	"github.com/Paarth01/Auto-Focus-Mode/internal/sessions"
	"github.com/Paarth01/Auto-Focus-Mode/internal/tracker"
	"github.com/Paarth01/Auto-Focus-Mode/internal/web"
	"github.com/Paarth01/Auto-Focus-Mode/pkg/detector"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runForeground()
	case "start":
		startDaemon(false)
	case "serve":
		startDaemon(true)
	case "stop":
		stopDaemon()
	case "status":
		showStatus()
	case "sessions":
		showSessions()
	case "stats":
		showStats()
	case "clear":
		clearDatabase()
	case "version":
		showVersion()
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`auto-focus-mode - Automatic focus mode for the Linux desktop

Usage:
  auto-focus-mode <command> [options]

Commands:
  run                Run the focus tracker in the foreground
  start              Start the focus tracker as a daemon
  serve              Start daemon with web API server
  stop               Stop the daemon
  status             Show daemon status and current focused app
  sessions [limit]   Show recent focus sessions (--json for JSON)
  stats              Show aggregate focus statistics (--json for JSON)
  clear              Clear all session history from the database
  version            Show version information
  help               Show this help message

Examples:
  auto-focus-mode run
  auto-focus-mode start
  auto-focus-mode serve
  auto-focus-mode sessions 20
  auto-focus-mode stats --json
  auto-focus-mode stop

Environment Variables:
  AUTOFOCUS_DB_PATH          Database file path
  AUTOFOCUS_POLL_INTERVAL    Poll interval in seconds (1-300)
  AUTOFOCUS_POLICY_PATH      Policy YAML file path
  AUTOFOCUS_HOSTS_PATH       Hosts file used for website blocking
  AUTOFOCUS_WATCH_POLICY     Reload policy file on change (true/false)
  AUTOFOCUS_STOP_TIMEOUT     Stop timeout in seconds
  AUTOFOCUS_PID_FILE         PID file path
  AUTOFOCUS_WEB_HOST         Web server host
  AUTOFOCUS_WEB_PORT         Web server port

Version: %s
`, version)
}

// stack is the assembled daemon: every collaborator the run loop needs.
type stack struct {
	db         *database.DB
	repo       *database.Repository
	controller *controller.Controller
	facade     *sessions.Facade
	closeFns   []func()
}

func (s *stack) close() {
	for i := len(s.closeFns) - 1; i >= 0; i-- {
		s.closeFns[i]()
	}
}

func buildStack(cfg *config.Config) (*stack, error) {
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	det, err := detector.New()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize window detector: %w", err)
	}

	engine, err := policy.NewEngine(cfg.Focus.PolicyPath)
	if err != nil {
		det.Close()
		db.Close()
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	repo := database.NewRepository(db)
	mode := focus.NewMode(focus.NewOrchestrator(), focus.NewBlocker(cfg.Focus.HostsPath))
	trackerSvc := tracker.NewService(cfg, repo, det, engine, mode)

	return &stack{
		db:         db,
		repo:       repo,
		controller: controller.New(cfg, trackerSvc, mode),
		facade:     sessions.New(repo),
		closeFns:   []func(){func() { db.Close() }, func() { det.Close() }},
	}, nil
}

func runForeground() {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	s, err := buildStack(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer s.close()

	if !s.controller.Start() {
		log.Fatal("Focus tracker is already running")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal")
	s.controller.Stop()
}

func startDaemon(withWeb bool) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	dm := daemon.NewManager(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if running {
		log.Fatalf("Daemon is already running (PID: %d)", pid)
	}

	if !daemon.IsChild() {
		logPath := fmt.Sprintf("/tmp/auto-focus-mode-%d.log", os.Getuid())
		childPID, err := dm.Daemonize(logPath)
		if err != nil {
			log.Fatalf("Failed to start daemon: %v", err)
		}
		fmt.Printf("Daemon started successfully (PID: %d)\n", childPID)
		if withWeb {
			fmt.Printf("Web API available at: http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
		}
		fmt.Printf("Logs: %s\n", logPath)
		return
	}

	runDaemon(cfg, dm, withWeb)
}

func runDaemon(cfg *config.Config, dm *daemon.Manager, withWeb bool) {
	s, err := buildStack(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer s.close()

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var webServer *web.Server
	if withWeb {
		webServer = web.NewServer(cfg, s.controller, s.facade, s.repo, 0)
		go func() {
			if err := webServer.Start(); err != nil && err != http.ErrServerClosed {
				log.Printf("Web server error: %v", err)
			}
		}()
		log.Printf("Web API available at: http://%s", webServer.GetAddress())
	}

	log.Println("Starting auto-focus-mode daemon...")
	log.Printf("Configuration:\n%s", cfg.String())

	if !s.controller.Start() {
		log.Fatal("Focus tracker is already running")
	}

	<-sigChan
	log.Println("Received shutdown signal")

	s.controller.Stop()

	if webServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down web server: %v", err)
		}
	}

	log.Println("Daemon stopped successfully")
}

func stopDaemon() {
	cfg := config.New()
	dm := daemon.NewManager(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Daemon is not running")
		return
	}
	fmt.Printf("Stopping daemon (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop daemon: %v", err)
	}
	fmt.Println("Daemon stopped successfully")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.NewManager(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check daemon status: %v", err)
	}
	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
		fmt.Printf("Poll Interval: %v\n", cfg.Tracker.PollInterval)
		fmt.Printf("Policy: %s\n", cfg.Focus.PolicyPath)
	}

	det, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not detect current window: %v\n", err)
		return
	}
	defer det.Close()

	windowInfo, err := det.GetFocusedWindow()
	if err != nil || windowInfo == nil {
		return
	}

	fmt.Printf("\nCurrent Window:\n")
	fmt.Printf("  App: %s\n", windowInfo.AppName)
	if windowInfo.WindowTitle != "" {
		fmt.Printf("  Title: %s\n", windowInfo.WindowTitle)
	}

	engine, err := policy.NewEngine(cfg.Focus.PolicyPath)
	if err == nil {
		fmt.Printf("  Category: %s\n", engine.Classify(windowInfo.AppName))
	}
}

func openReporter(cfg *config.Config) (*reporter.Reporter, func()) {
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	facade := sessions.New(database.NewRepository(db))
	return reporter.New(facade), func() { db.Close() }
}

func showSessions() {
	limit := 20
	jsonOutput := false
	for _, arg := range os.Args[2:] {
		if arg == "--json" {
			jsonOutput = true
			continue
		}
		if n, err := strconv.Atoi(arg); err == nil && n > 0 {
			limit = n
		}
	}

	cfg := config.New()
	rep, closeDB := openReporter(cfg)
	defer closeDB()

	views, err := rep.Sessions(limit)
	if err != nil {
		log.Fatalf("Failed to fetch sessions: %v", err)
	}

	if jsonOutput {
		out, err := rep.FormatJSON(views)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(out)
		return
	}
	fmt.Print(rep.FormatSessionsText(views))
}

func showStats() {
	jsonOutput := len(os.Args) > 2 && os.Args[2] == "--json"

	cfg := config.New()
	rep, closeDB := openReporter(cfg)
	defer closeDB()

	stats, err := rep.Stats()
	if err != nil {
		log.Fatalf("Failed to compute stats: %v", err)
	}

	if jsonOutput {
		out, err := rep.FormatJSON(stats)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(out)
		return
	}
	fmt.Print(rep.FormatStatsText(stats))
}

func clearDatabase() {
	cfg := config.New()
	fmt.Print("This will delete all session history. Are you sure? (yes/no): ")
	var response string
	fmt.Scanln(&response)
	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := database.NewRepository(db).Clear(); err != nil {
		log.Fatalf("Failed to clear database: %v", err)
	}
	fmt.Println("Database cleared successfully")
}

func showVersion() {
	fmt.Printf("version: %s\n", version)
	fmt.Printf("commit : %s\n", commit)
	fmt.Printf("built  : %s\n", date)
}
