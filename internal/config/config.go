package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Tracker configuration
	Tracker TrackerConfig

	// Focus mode configuration
	Focus FocusConfig

	// Controller configuration
	Controller ControllerConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Web server configuration
	Web WebConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// TrackerConfig holds tracking behavior configuration
type TrackerConfig struct {
	PollInterval    time.Duration // How often to check the foreground app
	MinPollInterval time.Duration // Minimum allowed poll interval
	MaxPollInterval time.Duration // Maximum allowed poll interval
}

// FocusConfig holds focus-mode policy configuration
type FocusConfig struct {
	PolicyPath  string // Path to the YAML policy file
	HostsPath   string // Hosts file used for website blocking
	WatchPolicy bool   // Reload the policy file when it changes
}

// ControllerConfig holds background task controller configuration
type ControllerConfig struct {
	StopTimeout time.Duration // How long Stop waits for the task to exit
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/auto-focus-mode/focus.db
		},
		Tracker: TrackerConfig{
			PollInterval:    5 * time.Second,
			MinPollInterval: 1 * time.Second,
			MaxPollInterval: 300 * time.Second,
		},
		Focus: FocusConfig{
			PolicyPath:  defaultPolicyPath(),
			HostsPath:   "/etc/hosts",
			WatchPolicy: true,
		},
		Controller: ControllerConfig{
			StopTimeout: 3 * time.Second,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/auto-focus-mode-%d.pid", os.Getuid()),
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid(),
		},
	}
}

func defaultPolicyPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "auto-focus-mode", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "auto-focus-mode", "config.yaml")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Tracker.PollInterval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be less than minimum (%v)",
			c.Tracker.PollInterval, c.Tracker.MinPollInterval)
	}

	if c.Tracker.PollInterval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval (%v) cannot be greater than maximum (%v)",
			c.Tracker.PollInterval, c.Tracker.MaxPollInterval)
	}

	if c.Controller.StopTimeout <= 0 {
		return fmt.Errorf("stop timeout must be positive, got %v", c.Controller.StopTimeout)
	}

	if c.Focus.PolicyPath == "" {
		return fmt.Errorf("policy path cannot be empty")
	}

	if c.Focus.HostsPath == "" {
		return fmt.Errorf("hosts path cannot be empty")
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetPollInterval sets the poll interval with validation
func (c *Config) SetPollInterval(interval time.Duration) error {
	if interval < c.Tracker.MinPollInterval {
		return fmt.Errorf("poll interval cannot be less than %v", c.Tracker.MinPollInterval)
	}
	if interval > c.Tracker.MaxPollInterval {
		return fmt.Errorf("poll interval cannot be greater than %v", c.Tracker.MaxPollInterval)
	}
	c.Tracker.PollInterval = interval
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Tracker:
    Poll Interval: %v
  Focus:
    Policy File: %s
    Hosts File: %s
    Watch Policy: %v
  Controller:
    Stop Timeout: %v
  Daemon:
    PID File: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Tracker.PollInterval,
		c.Focus.PolicyPath,
		c.Focus.HostsPath,
		c.Focus.WatchPolicy,
		c.Controller.StopTimeout,
		c.Daemon.PIDFile,
		c.Web.Host,
		c.Web.Port,
	)
}
