package preflight

import (
	"goalie/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Goals directory", cfg.Paths.GoalsDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	switch cfg.Breakdown.Strategy {
	case config.StrategyPromptFile:
		results = append(results, CheckDirectoryAccess("Prompt directory", cfg.Paths.PromptDir))
	case config.StrategyResponseFile:
		results = append(results, CheckFileReadable("Response file", cfg.Breakdown.ResponseFile))
	}

	results = append(results,
		CheckGoalStore(cfg.Paths.GoalsDir),
		CheckWorkspaceLock(cfg.LockPath()),
	)
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
