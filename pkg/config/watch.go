package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/idrepo/pkg/logger"
)

// Watch reloads the global configuration whenever the config file is
// written or created, and calls onChange with the reloaded configuration.
// The directory is watched so editors replacing the file are seen. Watch
// blocks until ctx is done.
func Watch(ctx context.Context, onChange func(*IdrepoConfig)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	path := Path()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := Reload(); err != nil {
				logger.Log.Warn("config reload failed", zap.String("file", path), zap.Error(err))
				continue
			}
			logger.Log.Info("config reloaded", zap.String("file", path))
			if onChange != nil {
				onChange(Get())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Warn("config watcher error", zap.Error(err))
		}
	}
}
