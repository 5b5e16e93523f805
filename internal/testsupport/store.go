package testsupport

import (
	"testing"
	"time"

	"goalie/internal/model"
	"goalie/internal/store"
)

// NewRepository returns a file repository rooted in a fresh temp directory.
func NewRepository(t testing.TB) *store.FileRepository {
	t.Helper()

	repo := store.NewFileRepository(t.TempDir(), nil)
	if err := repo.Init(); err != nil {
		t.Fatalf("repo.Init: %v", err)
	}
	return repo
}

// SeedGoal saves goal and tasks, appending each task ID to goal.Tasks.
func SeedGoal(t testing.TB, repo store.Repository, goal *model.Goal, tasks ...*model.Task) *model.Goal {
	t.Helper()

	if goal.Status == "" {
		goal.Status = model.GoalActive
	}
	if goal.Tasks == nil {
		goal.Tasks = []string{}
	}
	for _, task := range tasks {
		if err := repo.SaveTask(goal.ID, task); err != nil {
			t.Fatalf("repo.SaveTask %s: %v", task.ID, err)
		}
		goal.Tasks = append(goal.Tasks, task.ID)
	}
	if err := repo.SaveGoal(goal); err != nil {
		t.Fatalf("repo.SaveGoal %s: %v", goal.ID, err)
	}
	return goal
}

// Goal builds an active goal with a fixed creation time.
func Goal(id, name string) *model.Goal {
	return &model.Goal{
		ID:          id,
		Name:        name,
		CreatedDate: time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
		Status:      model.GoalActive,
		Tasks:       []string{},
	}
}

// Task builds a todo task with the given dependencies.
func Task(id, title string, deps ...string) *model.Task {
	task := model.NewTask(id)
	task.Title = title
	if deps != nil {
		task.Dependencies = deps
	}
	return task
}

// Clock returns a function reporting a fixed instant, for injection as a
// component's notion of now.
func Clock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
