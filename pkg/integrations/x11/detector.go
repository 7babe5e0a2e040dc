// Package x11 detects the focused application on X11, either through a
// direct X connection or by shelling out to xdotool/xprop.
package x11

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/Paarth01/Auto-Focus-Mode/pkg/window"
)

// Detector implements window.Detector by shelling out to xdotool and
// xprop. It is the fallback when a direct X connection is unavailable.
type Detector struct {
	hasXdotool bool
	hasXprop   bool
}

// NewDetector creates a new subprocess-based X11 detector
func NewDetector() *Detector {
	d := &Detector{}
	d.hasXdotool = commandExists("xdotool")
	d.hasXprop = commandExists("xprop")
	return d
}

func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// IsAvailable checks if the required X11 tools exist in PATH
func (d *Detector) IsAvailable() bool {
	return d.hasXdotool && d.hasXprop
}

// Close is a no-op; the subprocess detector holds no resources
func (d *Detector) Close() error {
	return nil
}

// GetFocusedWindow returns information about the currently focused window
func (d *Detector) GetFocusedWindow() (*window.WindowInfo, error) {
	if !d.IsAvailable() {
		return nil, fmt.Errorf("xdotool and xprop are required for X11 detection")
	}

	idOutput, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to get active window ID: %w", err)
	}
	windowID := strings.TrimSpace(string(idOutput))

	classOutput, err := exec.Command("xprop", "-id", windowID, "WM_CLASS").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query WM_CLASS: %w", err)
	}

	appName := parseWMClass(string(classOutput))
	if appName == "" {
		return nil, fmt.Errorf("window %s has no WM_CLASS", windowID)
	}

	windowTitle := ""
	if titleOutput, err := exec.Command("xdotool", "getwindowname", windowID).Output(); err == nil {
		windowTitle = strings.TrimSpace(string(titleOutput))
	}

	return &window.WindowInfo{
		AppName:     appName,
		WindowTitle: windowTitle,
		Backend:     "x11",
	}, nil
}

// parseWMClass extracts the class name from an xprop WM_CLASS line,
// e.g. `WM_CLASS(STRING) = "navigator", "Firefox"` -> "firefox". The
// last element is the class; it comes back lowercased because that is
// what the policy file matches against.
func parseWMClass(output string) string {
	parts := strings.SplitN(output, "=", 2)
	if len(parts) < 2 {
		return ""
	}

	classes := strings.Split(parts[1], ",")
	className := strings.TrimSpace(classes[len(classes)-1])
	className = strings.Trim(className, "\" ")
	return strings.ToLower(className)
}
