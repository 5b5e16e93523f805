package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeBreakdown(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeDisplay()
	return nil
}

func (c *Config) normalizePaths() error {
	goalsDir := strings.TrimSpace(c.Paths.GoalsDir)
	if goalsDir == "" || goalsDir == defaultGoalsDir {
		if value, ok := os.LookupEnv(EnvGoalsDir); ok && strings.TrimSpace(value) != "" {
			goalsDir = strings.TrimSpace(value)
		}
	}
	if goalsDir == "" {
		goalsDir = defaultGoalsDir
	}

	var err error
	if c.Paths.GoalsDir, err = expandPath(goalsDir); err != nil {
		return fmt.Errorf("paths.goals_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PromptDir) == "" {
		c.Paths.PromptDir = defaultPromptDir
	}
	if c.Paths.PromptDir, err = expandPath(strings.TrimSpace(c.Paths.PromptDir)); err != nil {
		return fmt.Errorf("paths.prompt_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeBreakdown() error {
	c.Breakdown.Strategy = strings.ToLower(strings.TrimSpace(c.Breakdown.Strategy))
	if c.Breakdown.Strategy == "" {
		c.Breakdown.Strategy = defaultBreakdownStrategy
	}
	c.Breakdown.Strategy = strings.ReplaceAll(c.Breakdown.Strategy, "-", "_")

	response := strings.TrimSpace(c.Breakdown.ResponseFile)
	if response == "" {
		c.Breakdown.ResponseFile = ""
		return nil
	}
	var err error
	if c.Breakdown.ResponseFile, err = expandPath(response); err != nil {
		return fmt.Errorf("breakdown.response_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" || c.Logging.Level == defaultLogLevel {
		if value, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
			c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeDisplay() {
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultColorMode
	}
}
