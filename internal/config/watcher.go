package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cutdesk/internal/logging"
)

// Watch reloads the settings file at path whenever it changes and delivers each parsed version.
// The parent directory is watched so editors that replace the file are followed.
// Unparseable versions are logged and skipped. The channel closes when ctx is done.
func Watch(ctx context.Context, path string) (<-chan *Settings, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create settings watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	updates := make(chan *Settings, 1)
	name := filepath.Clean(path)

	go func() {
		defer close(updates)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name || !event.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}

				settings, err := LoadSettingsFrom(path)
				if err != nil {
					logging.Logger.Warn("Ignoring invalid settings change", "path", path, "error", err)
					continue
				}

				logging.Logger.Debug("Settings reloaded", "path", path)
				select {
				case updates <- settings:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Logger.Warn("Settings watcher error", "error", err)
			}
		}
	}()

	return updates, nil
}
