package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"goalie/internal/model"
)

func TestSetStatusAndToggle(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "create-goal", "Chores")
	goalID := decodeJSON[[]model.Goal](t, mustRunCLI(t, env, "--json", "list-goals"))[0].ID

	requireContains(t, mustRunCLI(t, env, "toggle", goalID, "1"), "Task 1 is now in_progress")
	requireContains(t, mustRunCLI(t, env, "toggle", goalID, "1"), "Task 1 is now completed")
	requireContains(t, mustRunCLI(t, env, "set-status", goalID, "1", "in-progress"), "Task 1 is now in_progress")

	task := decodeJSON[model.Task](t, mustRunCLI(t, env, "--json", "show-task", goalID, "1"))
	if task.Status != model.TaskInProgress {
		t.Fatalf("status = %q, want in_progress", task.Status)
	}
	if task.CompletedDate == nil {
		t.Fatal("completedDate should survive moving back to in_progress")
	}

	_, _, err := runCLI(t, env, "", "set-status", goalID, "1", "done")
	if err == nil || !strings.Contains(err.Error(), "invalid task status") {
		t.Fatalf("expected invalid status error, got %v", err)
	}
	_, _, err = runCLI(t, env, "", "toggle", goalID, "99")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShowTask(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "create-goal", "Garden")
	goalID := decodeJSON[[]model.Goal](t, mustRunCLI(t, env, "--json", "list-goals"))[0].ID

	out := mustRunCLI(t, env, "show-task", goalID, "2")
	requireContains(t, out, "2. Execute first phase of goal")
	requireContains(t, out, "Depends on:  1")
	requireContains(t, out, "Difficulty:  5/10")
	requireContains(t, out, "Estimate:    2h")

	_, _, err := runCLI(t, env, "", "show-task", goalID, "7")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !strings.Contains(err.Error(), "list-tasks") {
		t.Fatalf("expected hint in error, got %v", err)
	}
}

func TestCompleteTaskUnknown(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", "complete-task", "42")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddSubtask(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "create-goal", "Move house")
	goalID := decodeJSON[[]model.Goal](t, mustRunCLI(t, env, "--json", "list-goals"))[0].ID

	requireContains(t, mustRunCLI(t, env, "add-subtask", goalID, "2", "Book", "movers"), "Created subtask 2.1 (Book movers) under task 2")

	sub := decodeJSON[model.Task](t, mustRunCLI(t, env, "--json", "add-subtask", goalID, "2",
		"--priority", "low", "--estimate", "15", "--depends", "2.1", "--due", "2030-06-01"))
	if sub.ID != "2.2" || sub.Title != "Subtask 2" {
		t.Fatalf("unexpected subtask %s %q", sub.ID, sub.Title)
	}
	if sub.Priority != model.PriorityLow || sub.TimeEstimate != 15 || sub.Difficulty != 5 {
		t.Fatalf("unexpected subtask fields: %+v", sub)
	}
	if len(sub.Dependencies) != 1 || sub.Dependencies[0] != "2.1" {
		t.Fatalf("dependencies = %v", sub.Dependencies)
	}

	parent := decodeJSON[model.Task](t, mustRunCLI(t, env, "--json", "show-task", goalID, "2"))
	if strings.Join(parent.Subtasks, ",") != "2.1,2.2" {
		t.Fatalf("parent subtasks = %v", parent.Subtasks)
	}

	_, _, err := runCLI(t, env, "", "add-subtask", goalID, "2", "--priority", "urgent")
	if err == nil {
		t.Fatal("expected invalid priority error")
	}
}

func TestAvailableListsEligibleTasks(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "create-goal", "Blog")

	type entry struct {
		GoalID string     `json:"goalId"`
		Score  float64    `json:"score"`
		Task   model.Task `json:"task"`
	}
	available := decodeJSON[[]entry](t, mustRunCLI(t, env, "--json", "available"))
	if len(available) != 1 || available[0].Task.ID != "1" {
		t.Fatalf("expected only task 1 available, got %+v", available)
	}
	// high priority, difficulty 3, 60 minutes: 30 + 16 + 6
	if available[0].Score != 52 {
		t.Fatalf("score = %v, want 52", available[0].Score)
	}

	out := mustRunCLI(t, env, "available")
	requireContains(t, out, "Review goal and create detailed plan")
	requireContains(t, out, "52.0")
}

func TestMutatingCommandsRespectWorkspaceLock(t *testing.T) {
	env := setupCLITestEnv(t)
	mustRunCLI(t, env, "create-goal", "Locked")

	holder := flock.New(env.cfg.LockPath())
	if err := holder.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer holder.Unlock()

	_, _, err := runCLI(t, env, "", "complete-task", "1")
	if err == nil || !strings.Contains(err.Error(), "another goalie process") {
		t.Fatalf("expected busy workspace error, got %v", err)
	}

	// Reads do not take the lock.
	mustRunCLI(t, env, "list-goals")
}
