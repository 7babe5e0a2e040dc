package focus

import (
	"github.com/Paarth01/Auto-Focus-Mode/internal/models"
)

// Mode bundles the desktop orchestrator and website blocker behind one
// engage/restore surface. It is the environment mutator the tracker
// drives on category changes and the cleanup the controller invokes on
// stop.
type Mode struct {
	desktop *Orchestrator
	sites   *Blocker
}

// NewMode creates a focus mode over the given collaborators.
func NewMode(desktop *Orchestrator, sites *Blocker) *Mode {
	return &Mode{desktop: desktop, sites: sites}
}

// Engage applies the distracted-state mutations: desktop settings plus
// the website block list.
func (m *Mode) Engage(blockedSites []string) error {
	err := m.desktop.Apply(models.CategoryDistracted)
	if blockErr := m.sites.Block(blockedSites); blockErr != nil && err == nil {
		err = blockErr
	}
	return err
}

// Restore reverts every mutation. Idempotent; safe when nothing was
// ever engaged.
func (m *Mode) Restore() error {
	err := m.desktop.Restore()
	if unblockErr := m.sites.Unblock(); unblockErr != nil && err == nil {
		err = unblockErr
	}
	return err
}
