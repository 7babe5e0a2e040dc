package window

// WindowInfo represents information about the currently focused window
type WindowInfo struct {
	AppName     string
	WindowTitle string
	Backend     string // "x11" or "x11-native"
}

// Detector is the interface that window detection implementations must satisfy
type Detector interface {
	// GetFocusedWindow returns information about the currently focused window
	GetFocusedWindow() (*WindowInfo, error)

	// IsAvailable checks if this detector can run on the current system
	IsAvailable() bool

	// Close cleans up any resources used by the detector
	Close() error
}
