package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateBreakdown(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.GoalsDir) == "" {
		return errors.New("paths.goals_dir must be set")
	}
	if strings.TrimSpace(c.Paths.PromptDir) == "" {
		return errors.New("paths.prompt_dir must be set")
	}
	return nil
}

func (c *Config) validateBreakdown() error {
	switch c.Breakdown.Strategy {
	case StrategyPromptFile:
		return nil
	case StrategyResponseFile:
		if strings.TrimSpace(c.Breakdown.ResponseFile) == "" {
			return errors.New("breakdown.response_file must be set when breakdown.strategy is response_file")
		}
		return nil
	default:
		return fmt.Errorf("breakdown.strategy: unsupported value %q (want %s or %s)", c.Breakdown.Strategy, StrategyPromptFile, StrategyResponseFile)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must be >= 0")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("display.color: unsupported value %q (want auto, always, or never)", c.Display.Color)
	}
}
