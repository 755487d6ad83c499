package instance_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"waitforfile/internal/instance"
)

func TestAcquireIsExclusivePerPath(t *testing.T) {
	dir := t.TempDir()

	first, err := instance.Acquire(dir, "/tmp/ready")
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	t.Cleanup(func() { _ = first.Release() })

	if _, err := instance.Acquire(dir, "/tmp/ready"); !errors.Is(err, instance.ErrAlreadyWatching) {
		t.Fatalf("expected ErrAlreadyWatching, got %v", err)
	}

	other, err := instance.Acquire(dir, "/tmp/other")
	if err != nil {
		t.Fatalf("different path should not contend: %v", err)
	}
	if err := other.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "locks")

	lock, err := instance.Acquire(dir, "/tmp/ready")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file should survive release so waiters share one inode: %v", err)
	}

	again, err := instance.Acquire(dir, "/tmp/ready")
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	_ = again.Release()
}

func TestLockPathNormalizesPresencePath(t *testing.T) {
	if instance.LockPath("/run", "/tmp/./ready") != instance.LockPath("/run", "/tmp/ready") {
		t.Fatal("equivalent paths should share a lock")
	}
	if instance.LockPath("/run", "/tmp/a") == instance.LockPath("/run", "/tmp/b") {
		t.Fatal("different paths should not share a lock")
	}
}

func TestReleaseNilLock(t *testing.T) {
	var lock *instance.Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
}

func TestReleaseThenContendedAcquireStaysExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := instance.Acquire(dir, "/tmp/ready")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	second, err := instance.Acquire(dir, "/tmp/ready")
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	defer second.Release()
	if second.Path() != first.Path() {
		t.Fatalf("expected the same lock file, got %q and %q", first.Path(), second.Path())
	}
	if _, err := instance.Acquire(dir, "/tmp/ready"); !errors.Is(err, instance.ErrAlreadyWatching) {
		t.Fatalf("expected ErrAlreadyWatching after re-acquire, got %v", err)
	}
}
