// Package logging assembles structured slog loggers and attribute helpers used
// across waitforfile.
//
// It owns the console/JSON handlers, routes output to the terminal and the log
// file, and exposes context helpers that tag every line with the run ID of the
// current watch. While the interactive screen owns the terminal, loggers are
// built file-only so log lines never corrupt the display.
//
// Prefer these constructors over hand-rolled slog setup so components emit
// the same keys (component, event_type, error_hint, impact, run_id).
package logging
