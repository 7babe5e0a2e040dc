package focus

import (
	"fmt"
	"os"
	"strings"
)

const (
	blockMarkerStart = "# auto-focus-mode block start"
	blockMarkerEnd   = "# auto-focus-mode block end"
)

// Blocker redirects distracting websites to localhost through the hosts
// file, between marker comments so the block can be removed cleanly.
type Blocker struct {
	Path string
}

// NewBlocker creates a blocker over the given hosts file.
func NewBlocker(path string) *Blocker {
	return &Blocker{Path: path}
}

// Block rewrites the block region to cover exactly sites. Calling Block
// again replaces the region, so repeated calls converge on the same
// file contents.
func (b *Blocker) Block(sites []string) error {
	if len(sites) == 0 {
		return b.Unblock()
	}

	data, err := os.ReadFile(b.Path)
	if err != nil {
		return fmt.Errorf("failed to read hosts file: %w", err)
	}

	content := stripBlockRegion(string(data))
	if !strings.HasSuffix(content, "\n") && content != "" {
		content += "\n"
	}

	var region strings.Builder
	region.WriteString(blockMarkerStart + "\n")
	for _, site := range sites {
		site = strings.TrimSpace(site)
		if site == "" {
			continue
		}
		fmt.Fprintf(&region, "127.0.0.1 %s\n", site)
		if !strings.HasPrefix(site, "www.") {
			fmt.Fprintf(&region, "127.0.0.1 www.%s\n", site)
		}
	}
	region.WriteString(blockMarkerEnd + "\n")

	return b.write(content + region.String())
}

// Unblock removes the block region. A hosts file without the region, or
// a missing file, is left untouched.
func (b *Blocker) Unblock() error {
	data, err := os.ReadFile(b.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read hosts file: %w", err)
	}

	content := stripBlockRegion(string(data))
	if content == string(data) {
		return nil
	}
	return b.write(content)
}

func (b *Blocker) write(content string) error {
	if err := os.WriteFile(b.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write hosts file: %w", err)
	}
	return nil
}

// stripBlockRegion drops every line between the markers, inclusive.
func stripBlockRegion(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	inRegion := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == blockMarkerStart {
			inRegion = true
			continue
		}
		if trimmed == blockMarkerEnd {
			inRegion = false
			continue
		}
		if !inRegion {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n")
}
