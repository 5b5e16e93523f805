package main

import (
	"path/filepath"
	"testing"

	"goalie/internal/logging"
	"goalie/internal/testsupport"
)

func TestCommandsWriteDailyLog(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLogLevel("debug"))

	_, stderr, err := runCLI(t, env, "", "create-goal", "Run", "a", "marathon")
	if err != nil {
		t.Fatalf("create-goal: %v", err)
	}
	if stderr != "" {
		t.Fatalf("logs must stay out of stderr without --verbose, got %q", stderr)
	}
	mustRunCLI(t, env, "work")

	logs, err := filepath.Glob(filepath.Join(env.cfg.Paths.LogDir, logging.LogFilePattern))
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected one daily log file, got %v (%v)", logs, err)
	}
	content := testsupport.ReadFile(t, logs[0])
	requireContains(t, content, "INFO lifecycle: goal created")
	requireContains(t, content, "event_type=goal_breakdown")
	requireContains(t, content, "DEBUG recommend: task recommended")
	requireContains(t, content, "session_id=")
}
