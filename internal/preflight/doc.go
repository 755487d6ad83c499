// Package preflight provides readiness checks for a configured watch.
//
// The doctor command runs RunAll and prints every Result. Nothing here
// blocks a watch from starting; a missing command only means the dispatch
// will fail at match time, which is logged and ignored.
package preflight
