package coordinator

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"waitforfile/internal/logging"
)

// DefaultPollInterval is the pause between existence checks.
const DefaultPollInterval = time.Second

// WatchConfig describes what to watch. It is fixed for the lifetime of a
// coordinator.
type WatchConfig struct {
	Path         string
	PollInterval time.Duration
	// Notify lets filesystem events on the parent directory trigger an
	// immediate check between polls.
	Notify bool
}

// Interval returns the effective poll interval.
func (c WatchConfig) Interval() time.Duration {
	if c.PollInterval <= 0 {
		return DefaultPollInterval
	}
	return c.PollInterval
}

// PresenceWatcher polls for a path until it exists or the run is cancelled.
type PresenceWatcher struct {
	cfg    WatchConfig
	logger *slog.Logger

	probe func(path string) (bool, error)
	wake  <-chan struct{}
}

// NewPresenceWatcher returns a watcher for cfg.Path.
func NewPresenceWatcher(cfg WatchConfig, logger *slog.Logger) *PresenceWatcher {
	return &PresenceWatcher{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "presence-watcher"),
		probe:  pathExists,
	}
}

// Run blocks until the path shows up or state is cancelled. When the path is
// found, onMatch decides whether the match stands; if it does, the bridge is
// signalled and Run returns true. Nothing is dispatched or signalled once
// cancellation has been observed.
func (w *PresenceWatcher) Run(state *RunState, onMatch func() bool, bridge *EventBridge) bool {
	interval := w.cfg.Interval()
	polls := 0
	for state.Active() {
		polls++
		present, err := w.probe(w.cfg.Path)
		if err != nil {
			w.logger.Debug("existence check failed; treating as absent",
				logging.Error(err),
				logging.String("path", w.cfg.Path),
				logging.String(logging.FieldEventType, "presence_check_failed"),
			)
		}
		if present {
			w.logger.Debug("presence file detected",
				logging.String("path", w.cfg.Path),
				logging.Int("polls", polls),
			)
			if !onMatch() {
				return false
			}
			bridge.Send()
			return true
		}
		w.sleep(state, interval)
	}
	w.logger.Debug("watch cancelled",
		logging.String("path", w.cfg.Path),
		logging.Int("polls", polls),
	)
	return false
}

func (w *PresenceWatcher) sleep(state *RunState, interval time.Duration) {
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-state.Stopped():
	case <-w.wake:
	}
}

// pathExists follows symlinks. Only errors other than "does not exist" are
// reported, and they still count as absent.
func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
