package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"

	"goalie/internal/fileutil"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
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

// CheckFileReadable verifies that path names a readable regular file.
func CheckFileReadable(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", path)}
}

// CheckGoalStore scans the goals directory for goal folders and reports how
// many still hold a legacy goal.json awaiting migration.
func CheckGoalStore(root string) Result {
	const name = "Goal store"

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist; run goalie init)", root)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", root, err)}
	}

	var goals, legacy, empty int
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		current, err := fileutil.Exists(filepath.Join(dir, "goal.md"))
		if err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", dir, err)}
		}
		if current {
			goals++
			continue
		}
		old, err := fileutil.Exists(filepath.Join(dir, "goal.json"))
		if err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", dir, err)}
		}
		if old {
			goals++
			legacy++
		} else {
			empty++
		}
	}

	detail := fmt.Sprintf("%d goals", goals)
	if legacy > 0 {
		detail += fmt.Sprintf(", %d legacy records pending migration", legacy)
	}
	if empty > 0 {
		detail += fmt.Sprintf(", %d folders without a goal file", empty)
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckWorkspaceLock reports whether another goalie process currently holds
// the workspace lock.
func CheckWorkspaceLock(path string) Result {
	const name = "Workspace lock"

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: lock directory unavailable: %v)", path, err)}
	}
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !locked {
		return Result{Name: name, Detail: fmt.Sprintf("%s (held by another goalie process)", path)}
	}
	_ = lock.Unlock()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (free)", path)}
}
