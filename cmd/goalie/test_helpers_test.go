package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goalie/internal/config"
	"goalie/internal/model"
	"goalie/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(config.EnvGoalsDir, "")
	t.Setenv(config.EnvLogLevel, "")

	configPath := filepath.Join(base, "goalie.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRunCLI runs args and fails the test on error.
func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, env, "", args...)
	if err != nil {
		t.Fatalf("goalie %s: %v (stderr: %s)", strings.Join(args, " "), err, stderr)
	}
	return out
}

func decodeJSON[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decode json output %q: %v", out, err)
	}
	return v
}

// createGoal creates a goal without breaking it down and returns its ID.
func createGoal(t *testing.T, env *cliTestEnv, name string) string {
	t.Helper()
	out := mustRunCLI(t, env, "--json", "create-goal", name, "--no-breakdown")
	created := decodeJSON[struct {
		Goal model.Goal `json:"goal"`
	}](t, out)
	if created.Goal.ID == "" {
		t.Fatalf("create-goal returned no id: %s", out)
	}
	return created.Goal.ID
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\ngoals_dir = %q\nlog_dir = %q\nprompt_dir = %q\n\n[breakdown]\nstrategy = %q\nresponse_file = %q\n\n[logging]\nlevel = %q\n\n[display]\ncolor = %q\n",
		cfg.Paths.GoalsDir,
		cfg.Paths.LogDir,
		cfg.Paths.PromptDir,
		cfg.Breakdown.Strategy,
		cfg.Breakdown.ResponseFile,
		cfg.Logging.Level,
		cfg.Display.Color,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
