package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that the directory is readable and writable.
// A missing directory passes when its parent is writable since it is created
// on demand.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			parent := nearestExisting(filepath.Dir(path))
			if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
			}
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckParentTraversable verifies that the directory holding presencePath can
// be searched. Without search permission every existence check reports absent
// and the watch never matches.
func CheckParentTraversable(name, presencePath string) Result {
	if presencePath == "" {
		return Result{Name: name, Detail: "presence file not configured"}
	}
	dir := filepath.Dir(presencePath)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (missing; polling continues until it exists)", dir)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", dir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", dir)}
	}
	if err := unix.Access(dir, unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not searchable: %v)", dir, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (searchable)", dir)}
}

// CheckPresence reports whether the presence file exists right now. Both
// outcomes pass; an existing file means a watch would match immediately.
func CheckPresence(name, presencePath string) Result {
	if presencePath == "" {
		return Result{Name: name, Detail: "presence file not configured"}
	}
	if _, err := os.Stat(presencePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (absent)", presencePath)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", presencePath, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (present; would match immediately)", presencePath)}
}

func nearestExisting(dir string) string {
	for {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
