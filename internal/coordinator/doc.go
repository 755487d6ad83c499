// Package coordinator waits for a presence file to appear and dispatches the
// main command exactly once when it does.
//
// A Coordinator owns three pieces: the RunState cancellation flag, a
// PresenceWatcher goroutine that polls the marker path, and an EventBridge
// that carries the one-shot found signal back to the foreground loop. The
// lifecycle moves Idle -> Watching -> Matched or Cancelled, and both terminal
// transitions are claimed with a compare-and-swap so a match racing a cancel
// always resolves to exactly one outcome.
//
// Commands are launched through a Dispatcher. The shell implementation is
// fire-and-forget: launch failures are logged and swallowed, and children are
// reaped without inspecting their exit status. Auxiliary commands go through
// the same dispatcher but never touch the watch state.
//
// Presentation code (the TUI or the headless loop) should only call Start,
// Cancel and TriggerAuxiliary, and react to Found/Done.
package coordinator
