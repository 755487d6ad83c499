package coordinator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"waitforfile/internal/logging"
)

// State is the lifecycle position of a Coordinator.
type State int32

const (
	StateIdle State = iota
	StateWatching
	StateMatched
	StateCancelled

	// stateMatching is held between claiming a match and signalling it.
	// It reads as StateWatching from outside.
	stateMatching
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWatching, stateMatching:
		return "watching"
	case StateMatched:
		return "matched"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateMatched || s == StateCancelled
}

var (
	// ErrMissingPresenceFile is returned by New when no path is configured.
	ErrMissingPresenceFile = errors.New("presence file is required")
	// ErrMissingCommand is returned by New when no main command is configured.
	ErrMissingCommand = errors.New("command is required")
)

// Options configures a Coordinator.
type Options struct {
	Watch      WatchConfig
	Command    string
	Auxiliary  CommandSpec
	Dispatcher Dispatcher
	Logger     *slog.Logger
}

// Coordinator runs one watch from start to a terminal state.
type Coordinator struct {
	watch      WatchConfig
	command    string
	auxiliary  CommandSpec
	dispatcher Dispatcher
	logger     *slog.Logger

	state   atomic.Int32
	run     *RunState
	bridge  *EventBridge
	watcher *PresenceWatcher

	done     chan struct{}
	doneOnce sync.Once
}

// New validates opts and returns an idle coordinator.
func New(opts Options) (*Coordinator, error) {
	if strings.TrimSpace(opts.Watch.Path) == "" {
		return nil, ErrMissingPresenceFile
	}
	if strings.TrimSpace(opts.Command) == "" {
		return nil, ErrMissingCommand
	}

	logger := logging.NewComponentLogger(opts.Logger, "coordinator")
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = NewShellDispatcher(DefaultShell, opts.Logger)
	}

	return &Coordinator{
		watch:      opts.Watch,
		command:    opts.Command,
		auxiliary:  opts.Auxiliary,
		dispatcher: dispatcher,
		logger:     logger,
		run:        NewRunState(),
		bridge:     NewEventBridge(),
		watcher:    NewPresenceWatcher(opts.Watch, opts.Logger),
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching. Calls after the first are ignored. Cancelling ctx
// has the same effect as Cancel.
func (c *Coordinator) Start(ctx context.Context) {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateWatching)) {
		c.logger.Debug("start ignored", logging.String("state", c.State().String()))
		return
	}

	stopNotify := func() {}
	if c.watch.Notify {
		c.watcher.wake, stopNotify = startNotify(c.watch.Path, c.logger)
	}

	c.logger.Info("watching for presence file",
		logging.String("path", c.watch.Path),
		logging.Duration("poll_interval", c.watch.Interval()),
		logging.Bool("notify", c.watch.Notify),
		logging.String(logging.FieldEventType, "watch_started"),
	)

	go func() {
		defer c.finish()
		defer stopNotify()
		if c.watcher.Run(c.run, c.claimMatch, c.bridge) {
			c.state.Store(int32(StateMatched))
		}
	}()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				c.Cancel()
			case <-c.done:
			}
		}()
	}
}

// claimMatch moves Watching to the internal matching state and dispatches the
// main command. It refuses if a cancel got there first.
func (c *Coordinator) claimMatch() bool {
	if !c.state.CompareAndSwap(int32(StateWatching), int32(stateMatching)) {
		return false
	}
	c.logger.Info("presence file found; dispatching command",
		logging.String("path", c.watch.Path),
		logging.String("command", c.command),
		logging.String(logging.FieldEventType, "presence_matched"),
	)
	c.dispatcher.Dispatch(c.command)
	return true
}

// Cancel stops the watch. It returns true if this call moved the coordinator
// into the cancelled state and false if it was already terminal.
func (c *Coordinator) Cancel() bool {
	for {
		current := State(c.state.Load())
		if current != StateIdle && current != StateWatching {
			return false
		}
		if !c.state.CompareAndSwap(int32(current), int32(StateCancelled)) {
			continue
		}
		c.run.Cancel()
		if current == StateIdle {
			c.finish()
		}
		c.logger.Info("watch cancelled",
			logging.String("path", c.watch.Path),
			logging.String(logging.FieldEventType, "watch_cancelled"),
		)
		return true
	}
}

// TriggerAuxiliary dispatches the auxiliary command. It has no effect on the
// watch and may be called any number of times.
func (c *Coordinator) TriggerAuxiliary() {
	if strings.TrimSpace(c.auxiliary.Command) == "" {
		c.logger.Debug("auxiliary trigger ignored; no command configured")
		return
	}
	c.logger.Info("dispatching auxiliary command",
		logging.String("action", c.auxiliary.String()),
		logging.String(logging.FieldEventType, "auxiliary_triggered"),
	)
	c.dispatcher.Dispatch(c.auxiliary.Command)
}

// Found yields once after the main command has been dispatched. There must be
// a single consumer, either this channel or Wait.
func (c *Coordinator) Found() <-chan struct{} {
	return c.bridge.C()
}

// Done is closed when the watcher has exited, or immediately on a cancel
// before Start.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// State reports the current lifecycle state.
func (c *Coordinator) State() State {
	s := State(c.state.Load())
	if s == stateMatching {
		return StateWatching
	}
	return s
}

// Auxiliary returns the auxiliary command spec.
func (c *Coordinator) Auxiliary() CommandSpec {
	return c.auxiliary
}

// Path returns the watched presence file.
func (c *Coordinator) Path() string {
	return c.watch.Path
}

// Wait blocks until a terminal state is reached. If ctx ends first the watch
// is cancelled, unless a match already won, and ctx's error is returned with
// the final state. A nil ctx waits without a deadline.
func (c *Coordinator) Wait(ctx context.Context) (State, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-c.bridge.C():
		return StateMatched, nil
	case <-c.done:
		if c.bridge.TryReceive() {
			return StateMatched, nil
		}
		return c.State(), nil
	case <-ctx.Done():
		c.Cancel()
		<-c.done
		if c.bridge.TryReceive() {
			return StateMatched, nil
		}
		return c.State(), ctx.Err()
	}
}

func (c *Coordinator) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}
