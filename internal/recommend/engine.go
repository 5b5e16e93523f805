package recommend

import (
	"fmt"
	"log/slog"
	"time"

	"goalie/internal/logging"
	"goalie/internal/model"
)

// Source is the read side of the goal store the engine needs.
type Source interface {
	LoadGoal(goalID string) (*model.Goal, error)
	ListGoals() ([]*model.Goal, error)
	ListTasksForGoal(goalID string) ([]*model.Task, error)
}

// Candidate is a pooled task together with the goal it belongs to.
type Candidate struct {
	GoalID string
	Task   *model.Task
	Score  float64
}

// Engine computes task eligibility and recommendations.
type Engine struct {
	source Source
	now    func() time.Time
	logger *slog.Logger
}

// NewEngine builds an engine reading from source.
func NewEngine(source Source, logger *slog.Logger) *Engine {
	return &Engine{
		source: source,
		now:    time.Now,
		logger: logging.NewComponentLogger(logger, "recommend"),
	}
}

// WithClock replaces the engine's notion of the current time.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Pool collects the tasks in scope. With a goalID only that goal is used,
// whatever its status; an unknown goalID yields an empty pool. Without one,
// every active goal contributes.
func (e *Engine) Pool(goalID string) ([]Candidate, error) {
	var goals []*model.Goal
	if goalID != "" {
		goal, err := e.source.LoadGoal(goalID)
		if err != nil {
			return nil, fmt.Errorf("load goal %s: %w", goalID, err)
		}
		if goal != nil {
			goals = append(goals, goal)
		}
	} else {
		all, err := e.source.ListGoals()
		if err != nil {
			return nil, err
		}
		for _, goal := range all {
			if goal.IsActive() {
				goals = append(goals, goal)
			}
		}
	}

	var pool []Candidate
	for _, goal := range goals {
		tasks, err := e.source.ListTasksForGoal(goal.ID)
		if err != nil {
			return nil, err
		}
		for _, task := range tasks {
			pool = append(pool, Candidate{GoalID: goal.ID, Task: task})
		}
	}
	return pool, nil
}

// Available returns the eligible tasks in scope, in pool order.
func (e *Engine) Available(goalID string) ([]Candidate, error) {
	pool, err := e.Pool(goalID)
	if err != nil {
		return nil, err
	}
	return Filter(pool), nil
}

// Recommend returns the best eligible task in scope, or nil when none is
// eligible.
func (e *Engine) Recommend(goalID string) (*Candidate, error) {
	available, err := e.Available(goalID)
	if err != nil {
		return nil, err
	}
	best := Select(available, e.now())
	if best != nil {
		e.logger.Debug("task recommended",
			logging.GoalID(best.GoalID),
			logging.TaskID(best.Task.ID),
			logging.Any("score", best.Score),
			logging.Int("eligible", len(available)),
		)
	}
	return best, nil
}

// Filter keeps the eligible candidates of pool, preserving order.
func Filter(pool []Candidate) []Candidate {
	tasks := make([]*model.Task, len(pool))
	for i, c := range pool {
		tasks[i] = c.Task
	}
	out := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if Eligible(c.Task, tasks) {
			out = append(out, c)
		}
	}
	return out
}

// Eligible reports whether task is todo and each of its dependencies resolves
// to a completed task in pool. The first task in pool with a matching ID is
// the one consulted; an unresolved dependency blocks the task.
func Eligible(task *model.Task, pool []*model.Task) bool {
	if task.Status != model.TaskTodo {
		return false
	}
	for _, dep := range task.Dependencies {
		resolved := find(pool, dep)
		if resolved == nil || !resolved.IsCompleted() {
			return false
		}
	}
	return true
}

// Select scores candidates and returns the highest, the earliest winning
// ties. It returns nil for an empty slice.
func Select(candidates []Candidate, now time.Time) *Candidate {
	var best *Candidate
	for i := range candidates {
		c := candidates[i]
		c.Score = Score(c.Task, now)
		if best == nil || c.Score > best.Score {
			best = &c
		}
	}
	return best
}

func find(pool []*model.Task, id string) *model.Task {
	for _, task := range pool {
		if task.ID == id {
			return task
		}
	}
	return nil
}
