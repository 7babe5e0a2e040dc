package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Paarth01/Auto-Focus-Mode/internal/config"
	"github.com/Paarth01/Auto-Focus-Mode/internal/database"
	"github.com/Paarth01/Auto-Focus-Mode/internal/focus"
	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
	"github.com/Paarth01/Auto-Focus-Mode/internal/policy"
	"github.com/Paarth01/Auto-Focus-Mode/pkg/window"
)

// Service is the long-running focus task: poll the foreground app,
// classify it, and on category change mutate the desktop and append a
// session record. It implements controller.Runner.
type Service struct {
	config   *config.Config
	repo     *database.Repository
	detector window.Detector
	engine   *policy.Engine
	mode     *focus.Mode

	lastCategory models.Category
}

// NewService wires the tracker's collaborators.
func NewService(cfg *config.Config, repo *database.Repository, detector window.Detector, engine *policy.Engine, mode *focus.Mode) *Service {
	return &Service{
		config:   cfg,
		repo:     repo,
		detector: detector,
		engine:   engine,
		mode:     mode,
	}
}

// Run drives the poll loop, plus the policy hot-reload watcher when
// enabled, until ctx is cancelled. Both sub-tasks settle before Run
// returns so stop never leaks a goroutine.
func (s *Service) Run(ctx context.Context) error {
	log.Printf("starting focus tracker with %v poll interval", s.config.Tracker.PollInterval)

	g, ctx := errgroup.WithContext(ctx)

	if s.config.Focus.WatchPolicy {
		g.Go(func() error {
			// A broken watcher (inotify limits) degrades to a static
			// policy instead of taking the tracker down.
			if err := s.engine.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("policy watcher stopped: %v", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return s.poll(ctx)
	})

	return g.Wait()
}

func (s *Service) poll(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Tracker.PollInterval)
	defer ticker.Stop()

	s.trackOnce()

	for {
		select {
		case <-ctx.Done():
			log.Println("focus tracker stopped")
			return ctx.Err()

		case <-ticker.C:
			s.trackOnce()
		}
	}
}

// trackOnce samples the foreground app and reacts to category changes.
// Failures are recorded but never abort the loop; a blank screen or a
// crashed window manager should not take the daemon down.
func (s *Service) trackOnce() {
	info, err := s.detector.GetFocusedWindow()
	if err != nil {
		s.storeError(fmt.Errorf("failed to get focused window: %w", err))
		return
	}
	if info == nil || info.AppName == "" {
		return
	}

	appName := strings.ToLower(info.AppName)
	category := s.engine.Classify(appName)

	if category == s.lastCategory {
		return
	}
	s.lastCategory = category

	log.Printf("focus change: %s is %s", appName, category)

	switch category {
	case models.CategoryDistracted:
		if err := s.mode.Engage(s.engine.BlockedWebsites()); err != nil {
			s.storeError(fmt.Errorf("failed to engage focus mode: %w", err))
		}
	case models.CategoryProductive:
		if err := s.mode.Restore(); err != nil {
			s.storeError(fmt.Errorf("failed to restore focus mode: %w", err))
		}
	}

	session := &models.FocusSession{
		AppName:   appName,
		Mode:      category,
		Timestamp: time.Now(),
	}
	if err := s.repo.LogSession(session); err != nil {
		s.storeError(fmt.Errorf("failed to save session: %w", err))
	}
}

func (s *Service) storeError(err error) {
	errorLog := &models.ErrorLog{
		Timestamp: time.Now(),
		ErrorMsg:  err.Error(),
	}

	if dbErr := s.repo.CreateErrorLog(errorLog); dbErr != nil {
		log.Printf("failed to store error in database: %v (original error: %v)", dbErr, err)
	} else {
		log.Printf("error logged to database: %v", err)
	}
}
