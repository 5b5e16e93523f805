package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"goalie/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	f := filepath.Join(t.TempDir(), "response.json")
	if err := os.WriteFile(f, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckFileReadable("response", f); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckFileReadable("response", ""); result.Passed {
		t.Fatal("expected failure for empty path")
	}
	if result := CheckFileReadable("response", t.TempDir()); result.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckGoalStore_CountsLegacyRecords(t *testing.T) {
	root := t.TempDir()
	for name, file := range map[string]string{"a": "goal.md", "b": "goal.json", "c": ""} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if file != "" {
			if err := os.WriteFile(filepath.Join(dir, file), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	result := CheckGoalStore(root)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	want := "2 goals, 1 legacy records pending migration, 1 folders without a goal file"
	if result.Detail != want {
		t.Fatalf("detail = %q, want %q", result.Detail, want)
	}
}

func TestCheckGoalStore_Missing(t *testing.T) {
	result := CheckGoalStore(filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing store")
	}
	if !strings.Contains(result.Detail, "goalie init") {
		t.Fatalf("detail should point at init, got %q", result.Detail)
	}
}

func TestCheckGoalStore_UnreadableGoalFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "looped")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// A self-referencing symlink makes stat fail with something other than
	// "not exist".
	if err := os.Symlink("goal.md", filepath.Join(dir, "goal.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	result := CheckGoalStore(root)
	if result.Passed {
		t.Fatalf("expected failure, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, dir) {
		t.Fatalf("detail should name the goal folder, got %q", result.Detail)
	}
}

func TestCheckWorkspaceLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".goalie.lock")
	if result := CheckWorkspaceLock(path); !result.Passed {
		t.Fatalf("expected free lock, got: %s", result.Detail)
	}

	holder := flock.New(path)
	if err := holder.Lock(); err != nil {
		t.Fatal(err)
	}
	defer holder.Unlock()

	if result := CheckWorkspaceLock(path); result.Passed {
		t.Fatal("expected held lock to fail")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_PromptStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.GoalsDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Paths.PromptDir = t.TempDir()
	cfg.Breakdown.Strategy = config.StrategyPromptFile

	results := RunAll(&cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if Failed(results) {
		t.Fatal("Failed reported a failure for passing checks")
	}
}

func TestRunAll_ResponseStrategyMissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.GoalsDir = t.TempDir()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Breakdown.Strategy = config.StrategyResponseFile
	cfg.Breakdown.ResponseFile = filepath.Join(t.TempDir(), "missing.json")

	results := RunAll(&cfg)
	if !Failed(results) {
		t.Fatal("expected a failing check for missing response file")
	}
	found := false
	for _, r := range results {
		if r.Name == "Response file" {
			found = true
		}
		if r.Name == "Prompt directory" {
			t.Fatal("prompt directory should not be checked for response strategy")
		}
	}
	if !found {
		t.Fatal("expected response file check in results")
	}
}
