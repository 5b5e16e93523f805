package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"goalie/internal/breakdown"
	"goalie/internal/config"
	"goalie/internal/lifecycle"
	"goalie/internal/logging"
	"goalie/internal/recommend"
	"goalie/internal/store"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool
	jsonFlag    *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	logPath    string
	loggerErr  error

	repo *store.FileRepository
}

func newCommandContext(configFlag *string, verboseFlag, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
		jsonFlag:    jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

// ensureLogger builds the per-invocation logger and prunes expired log files.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, logPath, err := logging.NewFromConfig(cfg, c.verbose(), logging.NewSessionID())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
		c.logPath = logPath
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, time.Now(), logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: logging.LogFilePattern,
			Keep:    logPath,
		})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) repository() (*store.FileRepository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	c.repo = store.NewFileRepository(cfg.Paths.GoalsDir, logger)
	return c.repo, nil
}

// manager returns a lifecycle manager whose breakdowns use decomposer.
// Commands that never break goals down pass nil.
func (c *commandContext) manager(decomposer breakdown.Decomposer) (*lifecycle.Manager, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, err
	}
	return lifecycle.NewManager(repo, decomposer, c.logger), nil
}

func (c *commandContext) engine() (*recommend.Engine, error) {
	repo, err := c.repository()
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(repo, c.logger), nil
}

// decomposer selects the breakdown strategy. A non-empty responsePath always
// wins; otherwise the configured strategy applies. Prompt file locations are
// announced on out.
func (c *commandContext) decomposer(responsePath string, out io.Writer) (breakdown.Decomposer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(responsePath) != "" {
		expanded, err := config.ExpandPath(responsePath)
		if err != nil {
			return nil, fmt.Errorf("resolve response path: %w", err)
		}
		return breakdown.ResponseFile{Path: expanded}, nil
	}
	if cfg.Breakdown.Strategy == config.StrategyResponseFile {
		return breakdown.ResponseFile{Path: cfg.Breakdown.ResponseFile}, nil
	}

	prompt := breakdown.NewPromptFile(cfg.Paths.PromptDir, c.logger)
	prompt.Notify = func(path string) {
		fmt.Fprintf(out, "Breakdown prompt saved to %s\n", path)
		fmt.Fprintln(out, "Starter tasks were created; rerun with --response once you have an assistant's answer.")
	}
	return prompt, nil
}

// withLock runs fn while holding the workspace lock. Only one goalie process
// may modify a goals directory at a time.
func (c *commandContext) withLock(fn func() error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another goalie process is modifying %s; try again shortly", cfg.Paths.GoalsDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(c.logger, "workspace lock release failed", "lock_release_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove "+cfg.LockPath()+" if no goalie process is running"),
				logging.String(logging.FieldImpact, "later commands may report the workspace as busy"),
			)
		}
	}()
	return fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
