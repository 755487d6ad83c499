// Package main hosts the waitforfile CLI.
//
// The root command resolves configuration, merges flag overrides, takes the
// per-path instance lock, and hands the watch to the coordinator. The
// waiting screen or the headless loop then reports how the wait ended:
// exit status 0 when the presence file appeared, 1 when the wait was
// cancelled or failed to start.
package main
