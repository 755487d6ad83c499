// Package instance keeps two waiters from watching the same presence file at
// once. Each watched path maps to a lock file under the runtime directory and
// the first process to take it wins.
package instance
