package utils

import (
	"testing"
	"time"
)

func TestFormatRoundedUnit(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m"},
		{59 * time.Minute, "59m"},
		{time.Hour, "1h"},
		{3 * time.Hour, "3h"},
		{-30 * time.Second, "30s"},
	}

	for _, tt := range tests {
		if got := FormatRoundedUnit(tt.d); got != tt.want {
			t.Errorf("FormatRoundedUnit(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 30); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}
	if got := Truncate("a-very-long-application-name", 10); got != "a-very-..." {
		t.Errorf("Truncate() = %q, want a-very-...", got)
	}
}
