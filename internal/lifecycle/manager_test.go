package lifecycle_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalie/internal/breakdown"
	"goalie/internal/lifecycle"
	"goalie/internal/model"
	"goalie/internal/recommend"
	"goalie/internal/store"
	"goalie/internal/testsupport"
)

var clock = time.Date(2025, time.March, 3, 10, 20, 30, 456_789_000, time.UTC)

func canned(response string) breakdown.Decomposer {
	return breakdown.DecomposerFunc(func(context.Context, string) (string, error) {
		return response, nil
	})
}

func newManager(t *testing.T, decomposer breakdown.Decomposer) (*lifecycle.Manager, *store.FileRepository) {
	t.Helper()
	repo := testsupport.NewRepository(t)
	return lifecycle.NewManager(repo, decomposer, nil).WithClock(testsupport.Clock(clock)), repo
}

func TestEndToEndShipV1(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := store.NewFileRepository(cfg.Paths.GoalsDir, nil)
	mgr := lifecycle.NewManager(repo, breakdown.NewPromptFile(cfg.Paths.PromptDir, nil), nil)
	require.NoError(t, mgr.Init())

	goal, err := mgr.CreateGoal("Ship V1", "", "")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^ship-v1-[0-9a-z]+$`), goal.ID)

	tasks, err := mgr.BreakdownGoal(context.Background(), goal.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "1", tasks[0].ID)
	assert.Equal(t, "2", tasks[1].ID)
	assert.Equal(t, []string{"1"}, tasks[1].Dependencies)

	stored, err := repo.LoadGoal(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, stored.Tasks)

	best, err := recommend.NewEngine(repo, nil).Recommend("")
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "1", best.Task.ID)
	assert.Equal(t, goal.ID, best.GoalID)
}

func TestCreateGoal(t *testing.T) {
	mgr, repo := newManager(t, nil)

	goal, err := mgr.CreateGoal("  Learn Rust  ", " systems language ", "2025-04-30")
	require.NoError(t, err)

	assert.Equal(t, model.NewGoalID("Learn Rust", clock), goal.ID)
	assert.True(t, strings.HasPrefix(goal.ID, "learn-rust-"))
	assert.Equal(t, "Learn Rust", goal.Name)
	assert.Equal(t, "systems language", goal.Description)
	assert.Equal(t, model.GoalActive, goal.Status)
	assert.Equal(t, 0, goal.CompletionPercentage)
	assert.Equal(t, clock.Truncate(time.Millisecond), goal.CreatedDate)
	require.NotNil(t, goal.DueDate)
	assert.Equal(t, time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), *goal.DueDate)

	loaded, err := repo.LoadGoal(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal, loaded)
}

func TestCreateGoalAvoidsIDCollision(t *testing.T) {
	mgr, _ := newManager(t, nil)

	first, err := mgr.CreateGoal("Same", "", "")
	require.NoError(t, err)
	second, err := mgr.CreateGoal("Same", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateGoalValidation(t *testing.T) {
	mgr, _ := newManager(t, nil)

	_, err := mgr.CreateGoal("   ", "", "")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = mgr.CreateGoal("Valid", "", "someday")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBreakdownGoalNotFound(t *testing.T) {
	mgr, _ := newManager(t, canned("[]"))

	_, err := mgr.BreakdownGoal(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBreakdownGoalFallsBackOnGarbage(t *testing.T) {
	mgr, repo := newManager(t, canned("I'm sorry, I can't help with that."))
	goal, err := mgr.CreateGoal("Vague", "", "")
	require.NoError(t, err)

	tasks, err := mgr.BreakdownGoal(context.Background(), goal.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Review and break down goal manually", tasks[0].Title)

	stored, err := repo.LoadTask(goal.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, tasks[0], stored)
}

func TestBreakdownGoalPropagatesDecomposerError(t *testing.T) {
	boom := errors.New("assistant unavailable")
	mgr, _ := newManager(t, breakdown.DecomposerFunc(func(context.Context, string) (string, error) {
		return "", boom
	}))
	goal, err := mgr.CreateGoal("Goal", "", "")
	require.NoError(t, err)

	_, err = mgr.BreakdownGoal(context.Background(), goal.ID)
	assert.ErrorIs(t, err, boom)
}

func TestBreakdownGoalTwiceDoesNotDuplicateIDs(t *testing.T) {
	mgr, repo := newManager(t, canned(breakdown.StarterPlan))
	goal, err := mgr.CreateGoal("Repeat", "", "")
	require.NoError(t, err)

	for range 2 {
		_, err := mgr.BreakdownGoal(context.Background(), goal.ID)
		require.NoError(t, err)
	}
	stored, err := repo.LoadGoal(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, stored.Tasks)
}

func TestCompletionPercentage(t *testing.T) {
	mgr, repo := newManager(t, nil)
	testsupport.SeedGoal(t, repo, testsupport.Goal("empty", "Empty"))

	done := testsupport.Task("1", "done")
	done.Status = model.TaskCompleted
	testsupport.SeedGoal(t, repo, testsupport.Goal("third", "Third"),
		done, testsupport.Task("2", "todo"), testsupport.Task("3", "todo"))

	pct, err := mgr.CompletionPercentage("empty")
	require.NoError(t, err)
	assert.Equal(t, 0, pct)

	pct, err = mgr.CompletionPercentage("third")
	require.NoError(t, err)
	assert.Equal(t, 33, pct)

	goals, err := mgr.ListGoals()
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, 0, goals[0].CompletionPercentage)
	assert.Equal(t, 33, goals[1].CompletionPercentage)

	goal, err := mgr.Goal("third")
	require.NoError(t, err)
	assert.Equal(t, 33, goal.CompletionPercentage)
}

func TestCompleteTaskFirstMatchWins(t *testing.T) {
	mgr, repo := newManager(t, nil)
	testsupport.SeedGoal(t, repo, testsupport.Goal("b-goal", "B"), testsupport.Task("1", "b one"))
	testsupport.SeedGoal(t, repo, testsupport.Goal("a-goal", "A"), testsupport.Task("1", "a one"))

	task, goalID, err := mgr.CompleteTask("1")
	require.NoError(t, err)
	assert.Equal(t, "a-goal", goalID)
	assert.Equal(t, model.TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedDate)

	untouched, err := repo.LoadTask("b-goal", "1")
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, untouched.Status)

	_, _, err = mgr.CompleteTask("404")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateTaskStatusKeepsCompletedDate(t *testing.T) {
	mgr, repo := newManager(t, nil)
	testsupport.SeedGoal(t, repo, testsupport.Goal("g", "G"), testsupport.Task("1", "one"))

	task, err := mgr.UpdateTaskStatus("g", "1", model.TaskInProgress)
	require.NoError(t, err)
	assert.Nil(t, task.CompletedDate)

	task, err = mgr.UpdateTaskStatus("g", "1", model.TaskCompleted)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedDate)
	stamp := *task.CompletedDate

	task, err = mgr.UpdateTaskStatus("g", "1", model.TaskTodo)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedDate)
	assert.Equal(t, stamp, *task.CompletedDate)

	stored, err := repo.LoadTask("g", "1")
	require.NoError(t, err)
	assert.Equal(t, model.TaskTodo, stored.Status)
	require.NotNil(t, stored.CompletedDate)

	_, err = mgr.UpdateTaskStatus("g", "9", model.TaskCompleted)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestToggleTaskCycles(t *testing.T) {
	mgr, repo := newManager(t, nil)
	testsupport.SeedGoal(t, repo, testsupport.Goal("g", "G"), testsupport.Task("1", "one"))

	want := []model.TaskStatus{model.TaskInProgress, model.TaskCompleted, model.TaskTodo}
	for _, status := range want {
		task, err := mgr.ToggleTask("g", "1")
		require.NoError(t, err)
		assert.Equal(t, status, task.Status)
	}
}

func TestUpdateGoalStatus(t *testing.T) {
	mgr, repo := newManager(t, nil)
	testsupport.SeedGoal(t, repo, testsupport.Goal("g", "G"))

	goal, err := mgr.UpdateGoalStatus("g", model.GoalPaused)
	require.NoError(t, err)
	assert.Equal(t, model.GoalPaused, goal.Status)

	stored, err := repo.LoadGoal("g")
	require.NoError(t, err)
	assert.Equal(t, model.GoalPaused, stored.Status)

	_, err = mgr.UpdateGoalStatus("nope", model.GoalActive)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTasksAndTask(t *testing.T) {
	mgr, repo := newManager(t, nil)
	testsupport.SeedGoal(t, repo, testsupport.Goal("g", "G"), testsupport.Task("2", "two"), testsupport.Task("1", "one"))

	tasks, err := mgr.Tasks("g")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "1", tasks[0].ID)

	task, err := mgr.Task("g", "2")
	require.NoError(t, err)
	assert.Equal(t, "two", task.Title)

	_, err = mgr.Task("g", "3")
	var notFound *model.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "task", notFound.Kind)
}
