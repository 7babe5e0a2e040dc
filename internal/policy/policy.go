// Package policy loads the YAML app-classification list and answers
// productive/distracted/neutral lookups for the tracker.
package policy

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"

	"gopkg.in/yaml.v3"
)

// Policy is the on-disk classification list.
type Policy struct {
	ProductiveApps  []string `yaml:"productive_apps"`
	DistractingApps []string `yaml:"distracting_apps"`
	BlockedWebsites []string `yaml:"blocked_websites"`
}

// Default returns a small starter policy used when no file exists yet.
func Default() *Policy {
	return &Policy{
		ProductiveApps:  []string{"code", "gnome-terminal", "jetbrains-idea"},
		DistractingApps: []string{"discord", "steam", "spotify"},
		BlockedWebsites: []string{"youtube.com", "reddit.com", "twitter.com"},
	}
}

// Load reads a policy from path.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}

	return &p, nil
}

// Classify returns the category for an app name. Matching is
// case-insensitive; apps on neither list are neutral.
func (p *Policy) Classify(appName string) models.Category {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		return models.CategoryNeutral
	}

	for _, app := range p.ProductiveApps {
		if strings.ToLower(app) == name {
			return models.CategoryProductive
		}
	}
	for _, app := range p.DistractingApps {
		if strings.ToLower(app) == name {
			return models.CategoryDistracted
		}
	}
	return models.CategoryNeutral
}

// Engine holds the active policy and supports hot-swapping it while the
// tracker is running.
type Engine struct {
	mu      sync.RWMutex
	path    string
	current *Policy
}

// NewEngine loads the policy at path. A missing file is not an error;
// the engine starts from the default policy so a fresh install works
// out of the box.
func NewEngine(path string) (*Engine, error) {
	e := &Engine{path: path, current: Default()}

	p, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return e, nil
		}
		return nil, err
	}

	e.current = p
	return e, nil
}

// Path returns the policy file location.
func (e *Engine) Path() string {
	return e.path
}

// Classify answers against the currently loaded policy.
func (e *Engine) Classify(appName string) models.Category {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.Classify(appName)
}

// BlockedWebsites returns a copy of the currently blocked site list.
func (e *Engine) BlockedWebsites() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sites := make([]string, len(e.current.BlockedWebsites))
	copy(sites, e.current.BlockedWebsites)
	return sites
}

// Reload re-reads the policy file. On failure the previous policy stays
// active.
func (e *Engine) Reload() error {
	p, err := Load(e.path)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.current = p
	e.mu.Unlock()
	return nil
}
