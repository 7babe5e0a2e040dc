package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
	if cfg.Tracker.PollInterval != 5*time.Second {
		t.Errorf("default poll interval = %v, want 5s", cfg.Tracker.PollInterval)
	}
	if cfg.Controller.StopTimeout != 3*time.Second {
		t.Errorf("default stop timeout = %v, want 3s", cfg.Controller.StopTimeout)
	}
	if !cfg.Focus.WatchPolicy {
		t.Error("policy watching should default to enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"poll below minimum", func(c *Config) { c.Tracker.PollInterval = 500 * time.Millisecond }, true},
		{"poll above maximum", func(c *Config) { c.Tracker.PollInterval = time.Hour }, true},
		{"zero stop timeout", func(c *Config) { c.Controller.StopTimeout = 0 }, true},
		{"empty policy path", func(c *Config) { c.Focus.PolicyPath = "" }, true},
		{"empty hosts path", func(c *Config) { c.Focus.HostsPath = "" }, true},
		{"port out of range", func(c *Config) { c.Web.Port = 70000 }, true},
		{"empty pid file", func(c *Config) { c.Daemon.PIDFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetPollInterval(t *testing.T) {
	cfg := Default()

	if err := cfg.SetPollInterval(10 * time.Second); err != nil {
		t.Errorf("SetPollInterval(10s) error: %v", err)
	}
	if cfg.Tracker.PollInterval != 10*time.Second {
		t.Errorf("poll interval = %v, want 10s", cfg.Tracker.PollInterval)
	}

	if err := cfg.SetPollInterval(100 * time.Millisecond); err == nil {
		t.Error("SetPollInterval below minimum should fail")
	}
	if err := cfg.SetPollInterval(time.Hour); err == nil {
		t.Error("SetPollInterval above maximum should fail")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTOFOCUS_DB_PATH", "/tmp/test-focus.db")
	t.Setenv("AUTOFOCUS_POLL_INTERVAL", "30")
	t.Setenv("AUTOFOCUS_POLICY_PATH", "/tmp/policy.yaml")
	t.Setenv("AUTOFOCUS_WATCH_POLICY", "false")
	t.Setenv("AUTOFOCUS_STOP_TIMEOUT", "7")
	t.Setenv("AUTOFOCUS_WEB_PORT", "8123")

	cfg := New()

	if cfg.Database.Path != "/tmp/test-focus.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Tracker.PollInterval != 30*time.Second {
		t.Errorf("poll interval = %v, want 30s", cfg.Tracker.PollInterval)
	}
	if cfg.Focus.PolicyPath != "/tmp/policy.yaml" {
		t.Errorf("policy path = %q", cfg.Focus.PolicyPath)
	}
	if cfg.Focus.WatchPolicy {
		t.Error("watch policy should be disabled")
	}
	if cfg.Controller.StopTimeout != 7*time.Second {
		t.Errorf("stop timeout = %v, want 7s", cfg.Controller.StopTimeout)
	}
	if cfg.Web.Port != 8123 {
		t.Errorf("web port = %d, want 8123", cfg.Web.Port)
	}
}

func TestLoadFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("AUTOFOCUS_POLL_INTERVAL", "not-a-number")
	t.Setenv("AUTOFOCUS_WEB_PORT", "99999")

	cfg := New()
	def := Default()

	if cfg.Tracker.PollInterval != def.Tracker.PollInterval {
		t.Errorf("poll interval = %v, want default %v", cfg.Tracker.PollInterval, def.Tracker.PollInterval)
	}
	if cfg.Web.Port != def.Web.Port {
		t.Errorf("web port = %d, want default %d", cfg.Web.Port, def.Web.Port)
	}
}
