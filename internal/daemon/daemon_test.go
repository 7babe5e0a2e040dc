package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndReadPID(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "test.pid"))

	if err := m.WritePID(); err != nil {
		t.Fatalf("WritePID() error: %v", err)
	}

	pid, err := m.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("ReadPID() = %d, want %d", pid, os.Getpid())
	}
}

func TestReadPIDMissingFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.pid"))

	pid, err := m.ReadPID()
	if err != nil {
		t.Fatalf("ReadPID() error: %v", err)
	}
	if pid != 0 {
		t.Errorf("ReadPID() = %d, want 0 for missing file", pid)
	}
}

func TestReadPIDGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pid")
	if err := os.WriteFile(path, []byte("not a pid"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewManager(path).ReadPID(); err == nil {
		t.Error("ReadPID() should fail on a non-numeric PID file")
	}
}

func TestIsRunningWithOwnPID(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "test.pid"))
	if err := m.WritePID(); err != nil {
		t.Fatal(err)
	}

	running, pid, err := m.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if !running || pid != os.Getpid() {
		t.Errorf("IsRunning() = %v/%d, want true/%d", running, pid, os.Getpid())
	}
}

func TestIsRunningCleansStalePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale.pid")
	// PID 1 is never signalable from an unprivileged test; any huge,
	// unused PID works the same way.
	if err := os.WriteFile(path, []byte("4194399"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(path)
	running, _, err := m.IsRunning()
	if err != nil {
		t.Fatalf("IsRunning() error: %v", err)
	}
	if running {
		t.Error("IsRunning() = true for a dead PID")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("stale PID file was not removed")
	}
}

func TestRemovePIDIdempotent(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "test.pid"))
	if err := m.RemovePID(); err != nil {
		t.Errorf("RemovePID() on missing file error: %v", err)
	}
}

func TestStopNotRunning(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "test.pid"))
	if err := m.Stop(); err == nil {
		t.Error("Stop() should fail when no daemon is running")
	}
}
