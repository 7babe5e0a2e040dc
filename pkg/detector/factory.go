package detector

import (
	"fmt"
	"os"

	"github.com/Paarth01/Auto-Focus-Mode/pkg/integrations/x11"
	"github.com/Paarth01/Auto-Focus-Mode/pkg/window"
)

// New picks the best available detection backend: a direct X connection
// when the display is reachable, otherwise the xdotool/xprop fallback.
func New() (window.Detector, error) {
	if os.Getenv("DISPLAY") != "" {
		if native, err := x11.NewNativeDetector(); err == nil {
			return native, nil
		}
	}

	fallback := x11.NewDetector()
	if fallback.IsAvailable() {
		return fallback, nil
	}

	return nil, fmt.Errorf("no window detection backend available (X11 with xdotool/xprop required)")
}
