package testsupport

import (
	"path/filepath"
	"testing"

	"goalie/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.GoalsDir = filepath.Join(base, "goals")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.PromptDir = filepath.Join(base, "prompts")
	cfgVal.Display.Color = config.ColorNever

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithResponseFile switches breakdown to read the given response text, which
// is written to a file under the config's base directory.
func WithResponseFile(response string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "response.json")
		WriteFile(b.t, path, response)
		b.cfg.Breakdown.Strategy = config.StrategyResponseFile
		b.cfg.Breakdown.ResponseFile = path
	}
}

// WithLogLevel overrides the configured log level.
func WithLogLevel(level string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Level = level
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.GoalsDir)
}
