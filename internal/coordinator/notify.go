package coordinator

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"waitforfile/internal/logging"
)

// startNotify watches the parent directory of path and nudges the returned
// channel whenever an event names path. A nil channel means polling only.
func startNotify(path string, logger *slog.Logger) (<-chan struct{}, func()) {
	target := filepath.Clean(path)
	dir := filepath.Dir(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Debug("fsnotify unavailable; polling only",
			logging.Error(err),
			logging.String(logging.FieldEventType, "notify_unavailable"),
		)
		return nil, func() {}
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		logger.Debug("cannot watch parent directory; polling only",
			logging.Error(err),
			logging.String("dir", dir),
			logging.String(logging.FieldEventType, "notify_unavailable"),
		)
		return nil, func() {}
	}

	wake := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				select {
				case wake <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("fsnotify error", logging.Error(err))
			}
		}
	}()

	return wake, func() { _ = watcher.Close() }
}
