package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TouchAfter creates an empty file at path once delay has passed. The
// returned channel is closed after the file exists.
func TouchAfter(t testing.TB, path string, delay time.Duration) <-chan struct{} {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	created := make(chan struct{})
	go func() {
		defer close(created)
		time.Sleep(delay)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Errorf("create %s: %v", path, err)
		}
	}()
	return created
}

// WaitForFile polls until path exists or the timeout passes.
func WaitForFile(t testing.TB, path string, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(path); err == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", path)
}
