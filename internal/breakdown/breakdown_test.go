package breakdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalie/internal/model"
)

func TestBuildPrompt(t *testing.T) {
	due := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	goal := &model.Goal{ID: "ship-v1-x", Name: "Ship V1", Description: "First public release", DueDate: &due}

	prompt := BuildPrompt(goal)
	assert.Contains(t, prompt, "Goal: Ship V1\n")
	assert.Contains(t, prompt, "Description: First public release")
	assert.Contains(t, prompt, "Due Date: 2025-09-01")
	assert.Contains(t, prompt, `"timeEstimate": minutes`)
	assert.True(t, strings.HasSuffix(prompt, "Only return the JSON array, no additional text."))

	goal.DueDate = nil
	assert.NotContains(t, BuildPrompt(goal), "Due Date:")
}

func TestParseStarterPlan(t *testing.T) {
	tasks, err := ParseTasks(StarterPlan)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	first, second := tasks[0], tasks[1]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Review goal and create detailed plan", first.Title)
	assert.Equal(t, model.PriorityHigh, first.Priority)
	assert.Equal(t, 3, first.Difficulty)
	assert.Equal(t, 60, first.TimeEstimate)
	assert.Equal(t, []string{}, first.Dependencies)
	assert.Equal(t, model.TaskTodo, first.Status)

	assert.Equal(t, "2", second.ID)
	assert.Equal(t, model.PriorityMedium, second.Priority)
	assert.Equal(t, 5, second.Difficulty)
	assert.Equal(t, 120, second.TimeEstimate)
	assert.Equal(t, []string{"1"}, second.Dependencies)
}

func TestParseTasksDefaultsAndLooseValues(t *testing.T) {
	response := "Sure! Here is the plan:\n```json\n" + `[
  {"description": "no title", "priority": "URGENT", "difficulty": 0},
  {"title": "Mixed", "priority": "Low", "difficulty": "4", "timeEstimate": 44.6, "dependencies": [1, "2", null, ""]}
]` + "\n```\nLet me know if you need more."

	tasks, err := ParseTasks(response)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Task 1", tasks[0].Title)
	assert.Equal(t, "no title", tasks[0].Description)
	assert.Equal(t, model.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, 1, tasks[0].Difficulty)
	assert.Equal(t, 30, tasks[0].TimeEstimate)

	assert.Equal(t, "Mixed", tasks[1].Title)
	assert.Equal(t, model.PriorityLow, tasks[1].Priority)
	assert.Equal(t, 4, tasks[1].Difficulty)
	assert.Equal(t, 45, tasks[1].TimeEstimate)
	assert.Equal(t, []string{"1", "2"}, tasks[1].Dependencies)
}

func TestParseTasksEmptyArray(t *testing.T) {
	tasks, err := ParseTasks("[]")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestParseTasksFailures(t *testing.T) {
	_, err := ParseTasks("I could not do that.")
	assert.ErrorIs(t, err, ErrNoTaskArray)

	_, err = ParseTasks("] backwards [")
	assert.ErrorIs(t, err, ErrNoTaskArray)

	_, err = ParseTasks(`[{"title": "unterminated}]`)
	assert.Error(t, err)

	_, err = ParseTasks(`[1, 2, 3]`)
	assert.Error(t, err)

	_, err = ParseTasks(`[{"title": "x", "difficulty": "hard"}]`)
	assert.Error(t, err)
}

func TestFallbackTasks(t *testing.T) {
	tasks := FallbackTasks("ship-v1-x")
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "1", task.ID)
	assert.Equal(t, "Review and break down goal manually", task.Title)
	assert.Contains(t, task.Description, "ship-v1-x")
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, 3, task.Difficulty)
	assert.Equal(t, 60, task.TimeEstimate)
}

func TestPromptFileWritesRequest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	decomposer := NewPromptFile(dir, nil)
	decomposer.now = func() time.Time { return time.UnixMilli(1700000000123) }
	var notified string
	decomposer.Notify = func(path string) { notified = path }

	response, err := decomposer.Decompose(context.Background(), "break down: Ship V1")
	require.NoError(t, err)
	assert.Equal(t, StarterPlan, response)

	want := filepath.Join(dir, "breakdown-prompt-1700000000123.md")
	assert.Equal(t, want, notified)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# Goal Breakdown Request\n\nbreak down: Ship V1"))
	assert.Contains(t, text, "## Instructions")
	assert.Contains(t, text, "goalie breakdown <goal-id> --response")
}

func TestPromptFileHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPromptFile(t.TempDir(), nil).Decompose(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answer.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"Saved"}]`), 0o644))

	response, err := ResponseFile{Path: path}.Decompose(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"Saved"}]`, response)

	_, err = ResponseFile{Path: filepath.Join(t.TempDir(), "missing.json")}.Decompose(context.Background(), "")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = ResponseFile{}.Decompose(context.Background(), "")
	assert.Error(t, err)
}

func TestDecomposerFunc(t *testing.T) {
	var got string
	d := DecomposerFunc(func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "[]", nil
	})
	out, err := d.Decompose(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Equal(t, "p", got)
}
