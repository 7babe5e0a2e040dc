package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if dbPath := os.Getenv("AUTOFOCUS_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Tracker configuration
	if pollInterval := os.Getenv("AUTOFOCUS_POLL_INTERVAL"); pollInterval != "" {
		if seconds, err := strconv.Atoi(pollInterval); err == nil && seconds > 0 {
			interval := time.Duration(seconds) * time.Second
			if interval >= cfg.Tracker.MinPollInterval && interval <= cfg.Tracker.MaxPollInterval {
				cfg.Tracker.PollInterval = interval
			}
		}
	}

	// Focus configuration
	if policyPath := os.Getenv("AUTOFOCUS_POLICY_PATH"); policyPath != "" {
		cfg.Focus.PolicyPath = policyPath
	}

	if hostsPath := os.Getenv("AUTOFOCUS_HOSTS_PATH"); hostsPath != "" {
		cfg.Focus.HostsPath = hostsPath
	}

	if watchPolicy := os.Getenv("AUTOFOCUS_WATCH_POLICY"); watchPolicy != "" {
		if val, err := strconv.ParseBool(watchPolicy); err == nil {
			cfg.Focus.WatchPolicy = val
		}
	}

	// Controller configuration
	if stopTimeout := os.Getenv("AUTOFOCUS_STOP_TIMEOUT"); stopTimeout != "" {
		if seconds, err := strconv.Atoi(stopTimeout); err == nil && seconds > 0 {
			cfg.Controller.StopTimeout = time.Duration(seconds) * time.Second
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("AUTOFOCUS_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Web configuration
	if webHost := os.Getenv("AUTOFOCUS_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("AUTOFOCUS_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
