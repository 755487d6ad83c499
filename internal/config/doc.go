// Package config loads, normalizes, and validates waitforfile configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks for the presence file and
// command. Command-line flags are layered on top by the CLI, after which
// Finalize re-normalizes and checks the required watch fields so a missing
// presence file or command is reported before any watcher starts.
package config
