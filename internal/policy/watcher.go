package policy

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the engine's policy whenever its file changes on disk.
// It blocks until ctx is cancelled. Editors replace files rather than
// rewrite them, so the watch covers the parent directory and filters by
// name.
func (e *Engine) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(e.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(e.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := e.Reload(); err != nil {
				log.Printf("policy reload failed, keeping previous policy: %v", err)
				continue
			}
			log.Printf("policy reloaded from %s", e.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("policy watcher error: %v", err)
		}
	}
}
