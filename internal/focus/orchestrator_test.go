package focus

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
)

type recordingRunner struct {
	commands []string
	failOn   string
}

func (r *recordingRunner) Run(name string, args ...string) error {
	cmd := name + " " + strings.Join(args, " ")
	r.commands = append(r.commands, cmd)
	if r.failOn != "" && name == r.failOn {
		return fmt.Errorf("%s: not found", name)
	}
	return nil
}

func TestApplyDistractedEngagesFocusMode(t *testing.T) {
	runner := &recordingRunner{}
	o := NewOrchestratorWithRunner(runner)

	if err := o.Apply(models.CategoryDistracted); err != nil {
		t.Fatalf("Apply(distracted) error: %v", err)
	}

	if len(runner.commands) != 3 {
		t.Fatalf("ran %d commands, want 3: %v", len(runner.commands), runner.commands)
	}
	if !strings.Contains(runner.commands[1], "show-banners false") {
		t.Errorf("second command = %q, want banners off", runner.commands[1])
	}
	if !strings.Contains(runner.commands[2], "set-sink-mute @DEFAULT_SINK@ 1") {
		t.Errorf("third command = %q, want mute", runner.commands[2])
	}
}

func TestApplyProductiveRestoresDefaults(t *testing.T) {
	runner := &recordingRunner{}
	o := NewOrchestratorWithRunner(runner)

	if err := o.Apply(models.CategoryProductive); err != nil {
		t.Fatalf("Apply(productive) error: %v", err)
	}

	if len(runner.commands) != 2 {
		t.Fatalf("ran %d commands, want 2: %v", len(runner.commands), runner.commands)
	}
	if !strings.Contains(runner.commands[0], "show-banners true") {
		t.Errorf("first command = %q, want banners on", runner.commands[0])
	}
	if !strings.Contains(runner.commands[1], "set-sink-mute @DEFAULT_SINK@ 0") {
		t.Errorf("second command = %q, want unmute", runner.commands[1])
	}
}

func TestApplyNeutralIsNoop(t *testing.T) {
	runner := &recordingRunner{}
	o := NewOrchestratorWithRunner(runner)

	if err := o.Apply(models.CategoryNeutral); err != nil {
		t.Fatalf("Apply(neutral) error: %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("neutral ran %d commands, want 0", len(runner.commands))
	}
}

func TestRestoreContinuesPastFailures(t *testing.T) {
	runner := &recordingRunner{failOn: "gsettings"}
	o := NewOrchestratorWithRunner(runner)

	err := o.Restore()
	if err == nil {
		t.Error("Restore() = nil error, want first failure reported")
	}
	// pactl still ran after gsettings failed.
	if len(runner.commands) != 2 {
		t.Errorf("ran %d commands, want 2", len(runner.commands))
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	runner := &recordingRunner{}
	o := NewOrchestratorWithRunner(runner)

	if err := o.Restore(); err != nil {
		t.Fatalf("first Restore() error: %v", err)
	}
	if err := o.Restore(); err != nil {
		t.Fatalf("second Restore() error: %v", err)
	}
	if len(runner.commands) != 4 {
		t.Errorf("ran %d commands over two restores, want 4", len(runner.commands))
	}
}

type failAllRunner struct{}

func (failAllRunner) Run(name string, args ...string) error {
	return errors.New("sandbox")
}

func TestEngageReportsFirstError(t *testing.T) {
	o := NewOrchestratorWithRunner(failAllRunner{})
	if err := o.Apply(models.CategoryDistracted); err == nil {
		t.Error("Apply(distracted) = nil error with failing runner")
	}
}
