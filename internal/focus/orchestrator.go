// Package focus mutates external desktop state when focus mode engages:
// notification banners, dock auto-hide, audio mute, and the hosts file.
// Every mutation has an idempotent restore that tolerates being called
// when nothing was ever applied.
package focus

import (
	"log"
	"os/exec"
	"sync"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
)

// CommandRunner executes an external settings command.
type CommandRunner interface {
	Run(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Orchestrator toggles desktop-environment settings through gsettings
// and pactl.
type Orchestrator struct {
	mu     sync.Mutex
	runner CommandRunner
}

// NewOrchestrator creates an orchestrator shelling out to the real
// desktop tools.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{runner: execRunner{}}
}

// NewOrchestratorWithRunner substitutes the command runner, for tests.
func NewOrchestratorWithRunner(r CommandRunner) *Orchestrator {
	return &Orchestrator{runner: r}
}

// Apply reacts to a category transition: a distracted foreground app
// engages focus mode, a productive one restores defaults. Neutral apps
// leave the desktop alone.
func (o *Orchestrator) Apply(category models.Category) error {
	switch category {
	case models.CategoryDistracted:
		return o.engage()
	case models.CategoryProductive:
		return o.Restore()
	}
	return nil
}

func (o *Orchestrator) engage() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.runAll([][]string{
		{"gsettings", "set", "org.gnome.shell.extensions.dash-to-dock", "dock-fixed", "false"},
		{"gsettings", "set", "org.gnome.desktop.notifications", "show-banners", "false"},
		{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "1"},
	})
}

// Restore puts notification banners and audio back to defaults. Safe to
// call any number of times, including when focus mode was never engaged.
func (o *Orchestrator) Restore() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.runAll([][]string{
		{"gsettings", "set", "org.gnome.desktop.notifications", "show-banners", "true"},
		{"pactl", "set-sink-mute", "@DEFAULT_SINK@", "0"},
	})
}

// runAll keeps going past individual failures so a missing tool (no
// pactl on the box) does not leave the rest of the desktop stuck.
func (o *Orchestrator) runAll(commands [][]string) error {
	var firstErr error
	for _, cmd := range commands {
		if err := o.runner.Run(cmd[0], cmd[1:]...); err != nil {
			log.Printf("focus: %s failed: %v", cmd[0], err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
