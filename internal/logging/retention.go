package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// RetentionTarget names a directory and filename pattern to prune. Keep is a
// path that is never removed, normally the log file currently being written.
type RetentionTarget struct {
	Dir     string
	Pattern string
	Keep    string
}

// CleanupOldLogs removes files matching target that were last modified more
// than retentionDays before now. A retentionDays value of 0 disables pruning.
// It returns the number of files removed.
func CleanupOldLogs(logger *slog.Logger, retentionDays int, now time.Time, target RetentionTarget) int {
	if retentionDays <= 0 || target.Dir == "" {
		return 0
	}
	cutoff := now.AddDate(0, 0, -retentionDays)

	keep := ""
	if target.Keep != "" {
		if abs, err := filepath.Abs(target.Keep); err == nil {
			keep = abs
		}
	}

	entries, err := os.ReadDir(target.Dir)
	if err != nil {
		return 0
	}
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if target.Pattern != "" {
			matched, err := filepath.Match(target.Pattern, name)
			if err != nil || !matched {
				continue
			}
		}
		fullPath := filepath.Join(target.Dir, name)
		if abs, err := filepath.Abs(fullPath); err == nil {
			fullPath = abs
		}
		if fullPath == keep {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(fullPath); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", fullPath),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		if logger != nil {
			logger.Debug("log pruned",
				String("path", fullPath),
				String(FieldEventType, "log_pruned"),
			)
		}
	}
	return removed
}
