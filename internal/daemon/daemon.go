package daemon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// childEnvVar marks a process as the daemonized child so the CLI entry
// point knows to run the tracker instead of forking again.
const childEnvVar = "AUTOFOCUS_DAEMON_CHILD"

// Manager tracks a single background daemon instance through a PID file.
type Manager struct {
	pidFile string
}

func NewManager(pidFile string) *Manager {
	return &Manager{pidFile: pidFile}
}

// IsChild reports whether this process was spawned by Daemonize.
func IsChild() bool {
	return os.Getenv(childEnvVar) == "1"
}

// Daemonize re-executes the current binary detached from the terminal,
// in its own session, with output redirected to logPath. Returns the
// child PID.
func (m *Manager) Daemonize(logPath string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to locate executable: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return 0, fmt.Errorf("failed to open daemon log file: %w", err)
	}
	defer logFile.Close()

	devNull, err := os.OpenFile(os.DevNull, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	proc, err := os.StartProcess(exe, os.Args, &os.ProcAttr{
		Env:   append(os.Environ(), childEnvVar+"=1"),
		Files: []*os.File{devNull, logFile, logFile},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to start daemon process: %w", err)
	}

	// The child writes its own PID file; the parent must not wait on it.
	if err := proc.Release(); err != nil {
		return 0, fmt.Errorf("failed to release daemon process: %w", err)
	}

	return proc.Pid, nil
}

// WritePID records the current process PID. A file left behind by a
// crashed instance is overwritten.
func (m *Manager) WritePID() error {
	return os.WriteFile(m.pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// ReadPID returns the recorded PID, or 0 when no PID file exists.
func (m *Manager) ReadPID() (int, error) {
	data, err := os.ReadFile(m.pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in %s: %w", m.pidFile, err)
	}

	return pid, nil
}

// RemovePID deletes the PID file. Missing files are not an error.
func (m *Manager) RemovePID() error {
	if err := os.Remove(m.pidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// IsRunning probes whether the recorded process is still alive. A PID
// file pointing at a dead process is cleaned up as a side effect.
func (m *Manager) IsRunning() (bool, int, error) {
	pid, err := m.ReadPID()
	if err != nil {
		return false, 0, err
	}
	if pid == 0 {
		return false, 0, nil
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return false, 0, nil
	}

	if err := proc.Signal(syscall.Signal(0)); err != nil {
		m.RemovePID()
		return false, 0, nil
	}

	return true, pid, nil
}

// Stop sends SIGTERM to the recorded process and removes the PID file.
func (m *Manager) Stop() error {
	running, pid, err := m.IsRunning()
	if err != nil {
		return fmt.Errorf("error checking daemon status: %w", err)
	}
	if !running {
		return fmt.Errorf("daemon is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", pid, err)
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		if err.Error() == "os: process already finished" {
			_ = m.RemovePID()
			return fmt.Errorf("daemon process already terminated")
		}
		return fmt.Errorf("failed to send SIGTERM to %d: %w", pid, err)
	}

	return m.RemovePID()
}
