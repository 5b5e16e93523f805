package breakdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"goalie/internal/fileutil"
	"goalie/internal/logging"
)

// Decomposer answers a decomposition request with free text that should
// contain a JSON array of task records.
type Decomposer interface {
	Decompose(ctx context.Context, prompt string) (string, error)
}

// DecomposerFunc adapts a function to Decomposer.
type DecomposerFunc func(ctx context.Context, prompt string) (string, error)

// Decompose calls f.
func (f DecomposerFunc) Decompose(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// StarterPlan is the answer PromptFile gives while the real breakdown is
// pending: plan the goal, then start on it.
const StarterPlan = `[
  {
    "title": "Review goal and create detailed plan",
    "description": "Break down this goal into specific, actionable tasks with priorities and time estimates",
    "priority": "high",
    "difficulty": 3,
    "timeEstimate": 60,
    "dependencies": []
  },
  {
    "title": "Execute first phase of goal",
    "description": "Begin working on the initial tasks identified in the planning phase",
    "priority": "medium",
    "difficulty": 5,
    "timeEstimate": 120,
    "dependencies": ["1"]
  }
]`

const promptFilePrefix = "breakdown-prompt-"

// PromptFile saves each request as a markdown file in Dir with instructions
// for running it through an assistant by hand, then answers with StarterPlan.
type PromptFile struct {
	Dir string
	// Notify, when set, receives the path of each prompt file written.
	Notify func(path string)

	now    func() time.Time
	logger *slog.Logger
}

// NewPromptFile returns a PromptFile writing into dir.
func NewPromptFile(dir string, logger *slog.Logger) *PromptFile {
	return &PromptFile{
		Dir:    dir,
		now:    time.Now,
		logger: logging.NewComponentLogger(logger, "breakdown"),
	}
}

// Decompose writes the prompt file and returns StarterPlan.
func (p *PromptFile) Decompose(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create prompt directory: %w", err)
	}

	now := time.Now
	if p.now != nil {
		now = p.now
	}
	name := promptFilePrefix + strconv.FormatInt(now().UnixMilli(), 10) + ".md"
	path := filepath.Join(p.Dir, name)
	if err := fileutil.WriteFileAtomic(path, []byte(promptDocument(prompt)), 0o644); err != nil {
		return "", fmt.Errorf("write prompt file: %w", err)
	}

	if p.logger != nil {
		p.logger.Info("breakdown prompt saved",
			logging.String("path", path),
			logging.String(logging.FieldEventType, "breakdown_prompt_saved"),
		)
	}
	if p.Notify != nil {
		p.Notify(path)
	}
	return StarterPlan, nil
}

func promptDocument(prompt string) string {
	var b strings.Builder
	b.WriteString("# Goal Breakdown Request\n\n")
	b.WriteString(prompt)
	b.WriteString(`

## Instructions
1. Copy the goal breakdown prompt above.
2. Give it to your assistant of choice and ask it to break down the goal.
3. Save the JSON answer to a file, for example response.json.
4. Run: goalie breakdown <goal-id> --response response.json

The expected JSON format is:
` + "```json\n")
	b.WriteString(responseFormat)
	b.WriteString("\n```\n")
	return b.String()
}

// ResponseFile answers every request with the content of Path, a response
// saved earlier by a person.
type ResponseFile struct {
	Path string
}

// Decompose returns the saved response text.
func (r ResponseFile) Decompose(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(r.Path) == "" {
		return "", errors.New("response file path is empty")
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return "", fmt.Errorf("read response file: %w", err)
	}
	return string(data), nil
}
