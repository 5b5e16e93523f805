package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
	"time"

	"goalie/internal/breakdown"
	"goalie/internal/codec"
	"goalie/internal/logging"
	"goalie/internal/model"
	"goalie/internal/store"
)

// Manager coordinates goal and task changes against a repository.
type Manager struct {
	repo       store.Repository
	decomposer breakdown.Decomposer
	logger     *slog.Logger
	now        func() time.Time
}

// NewManager builds a Manager. decomposer is consulted by BreakdownGoal.
func NewManager(repo store.Repository, decomposer breakdown.Decomposer, logger *slog.Logger) *Manager {
	return &Manager{
		repo:       repo,
		decomposer: decomposer,
		logger:     logging.NewComponentLogger(logger, "lifecycle"),
		now:        time.Now,
	}
}

// WithClock replaces the manager's notion of the current time.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Init prepares the underlying store.
func (m *Manager) Init() error {
	return m.repo.Init()
}

func (m *Manager) timestamp() time.Time {
	return m.now().UTC().Truncate(time.Millisecond)
}

// CreateGoal persists a new active goal. dueText is optional and accepts a
// date (YYYY-MM-DD) or ISO-8601 timestamp; only its calendar date is kept.
func (m *Manager) CreateGoal(name, description, dueText string) (*model.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.Invalid("name", "goal name is required")
	}

	var due *time.Time
	if strings.TrimSpace(dueText) != "" {
		parsed, ok := codec.ParseDate(dueText)
		if !ok {
			return nil, model.Invalid("due date", fmt.Sprintf("%q is not a date (want YYYY-MM-DD)", dueText))
		}
		day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		due = &day
	}

	created := m.timestamp()
	id := model.NewGoalID(name, created)
	for offset := time.Millisecond; m.repo.GoalExists(id); offset += time.Millisecond {
		id = model.NewGoalID(name, created.Add(offset))
	}

	goal := &model.Goal{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedDate: created,
		DueDate:     due,
		Status:      model.GoalActive,
		Tasks:       []string{},
	}
	if err := m.repo.SaveGoal(goal); err != nil {
		return nil, err
	}
	m.logger.Info("goal created",
		logging.GoalID(goal.ID),
		logging.String("name", goal.Name),
		logging.String(logging.FieldEventType, "goal_created"),
	)
	return goal, nil
}

// BreakdownGoal asks the decomposer for a task list and stores it under the
// goal. An unparsable answer is replaced by FallbackTasks and logged; an
// error from the decomposer itself is returned. Task IDs restart at "1", so
// a second breakdown overwrites tasks with the same IDs.
func (m *Manager) BreakdownGoal(ctx context.Context, goalID string) ([]*model.Task, error) {
	goal, err := m.loadGoal(goalID)
	if err != nil {
		return nil, err
	}
	if m.decomposer == nil {
		return nil, fmt.Errorf("breakdown goal %s: no decomposer configured", goalID)
	}

	response, err := m.decomposer.Decompose(ctx, breakdown.BuildPrompt(goal))
	if err != nil {
		return nil, fmt.Errorf("breakdown goal %s: %w", goalID, err)
	}

	tasks, parseErr := breakdown.ParseTasks(response)
	if parseErr != nil {
		logging.WarnWithContext(m.logger, "breakdown response unparsable; using manual review task", "breakdown_fallback",
			logging.GoalID(goalID),
			logging.Error(parseErr),
			logging.String("raw_response", response),
			logging.String(logging.FieldErrorHint, "inspect raw_response and rerun breakdown with --response"),
			logging.String(logging.FieldImpact, "goal gets a single review task instead of a plan"),
		)
		tasks = breakdown.FallbackTasks(goalID)
	}

	for _, task := range tasks {
		if err := m.repo.SaveTask(goalID, task); err != nil {
			return nil, err
		}
		if !slices.Contains(goal.Tasks, task.ID) {
			goal.Tasks = append(goal.Tasks, task.ID)
		}
	}
	if err := m.repo.SaveGoal(goal); err != nil {
		return nil, err
	}

	m.logger.Info("goal broken down",
		logging.GoalID(goalID),
		logging.Int("tasks", len(tasks)),
		logging.Bool("fallback", parseErr != nil),
		logging.String(logging.FieldEventType, "goal_breakdown"),
	)
	return tasks, nil
}

// ListGoals returns every goal with its completion percentage recomputed
// from the task files.
func (m *Manager) ListGoals() ([]*model.Goal, error) {
	goals, err := m.repo.ListGoals()
	if err != nil {
		return nil, err
	}
	for _, goal := range goals {
		pct, err := m.CompletionPercentage(goal.ID)
		if err != nil {
			return nil, err
		}
		goal.CompletionPercentage = pct
	}
	return goals, nil
}

// Goal loads one goal with a fresh completion percentage.
func (m *Manager) Goal(goalID string) (*model.Goal, error) {
	goal, err := m.loadGoal(goalID)
	if err != nil {
		return nil, err
	}
	if goal.CompletionPercentage, err = m.CompletionPercentage(goalID); err != nil {
		return nil, err
	}
	return goal, nil
}

// CompletionPercentage is round(100 * completed / total) over the goal's task
// files, 0 for a goal without tasks.
func (m *Manager) CompletionPercentage(goalID string) (int, error) {
	tasks, err := m.repo.ListTasksForGoal(goalID)
	if err != nil {
		return 0, err
	}
	return percentComplete(tasks), nil
}

func percentComplete(tasks []*model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range tasks {
		if task.IsCompleted() {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// UpdateGoalStatus sets a goal's status.
func (m *Manager) UpdateGoalStatus(goalID string, status model.GoalStatus) (*model.Goal, error) {
	goal, err := m.loadGoal(goalID)
	if err != nil {
		return nil, err
	}
	goal.Status = status
	if err := m.repo.SaveGoal(goal); err != nil {
		return nil, err
	}
	m.logger.Info("goal status updated",
		logging.GoalID(goalID),
		logging.String("status", string(status)),
		logging.String(logging.FieldEventType, "goal_status"),
	)
	return goal, nil
}

// Tasks returns the tasks stored under a goal.
func (m *Manager) Tasks(goalID string) ([]*model.Task, error) {
	return m.repo.ListTasksForGoal(goalID)
}

// Task loads one task, failing with a NotFoundError when it is absent.
func (m *Manager) Task(goalID, taskID string) (*model.Task, error) {
	task, err := m.repo.LoadTask(goalID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, model.TaskNotFound(goalID, taskID)
	}
	return task, nil
}

// CompleteTask marks the first task with taskID, searching goals in listing
// order, as completed. It returns the task and the goal it was found in.
func (m *Manager) CompleteTask(taskID string) (*model.Task, string, error) {
	goals, err := m.repo.ListGoals()
	if err != nil {
		return nil, "", err
	}
	for _, goal := range goals {
		task, err := m.repo.LoadTask(goal.ID, taskID)
		if err != nil {
			return nil, "", err
		}
		if task == nil {
			continue
		}
		m.markStatus(task, model.TaskCompleted)
		if err := m.repo.SaveTask(goal.ID, task); err != nil {
			return nil, "", err
		}
		m.logTransition(goal.ID, task)
		return task, goal.ID, nil
	}
	return nil, "", model.TaskNotFound("", taskID)
}

// UpdateTaskStatus sets a task's status. Moving to completed stamps
// completedDate; moving away from completed leaves the old stamp in place.
func (m *Manager) UpdateTaskStatus(goalID, taskID string, status model.TaskStatus) (*model.Task, error) {
	task, err := m.Task(goalID, taskID)
	if err != nil {
		return nil, err
	}
	m.markStatus(task, status)
	if err := m.repo.SaveTask(goalID, task); err != nil {
		return nil, err
	}
	m.logTransition(goalID, task)
	return task, nil
}

// ToggleTask advances a task one step around todo, in_progress, completed.
func (m *Manager) ToggleTask(goalID, taskID string) (*model.Task, error) {
	task, err := m.Task(goalID, taskID)
	if err != nil {
		return nil, err
	}
	return m.UpdateTaskStatus(goalID, taskID, task.Status.Next())
}

func (m *Manager) markStatus(task *model.Task, status model.TaskStatus) {
	task.Status = status
	if status == model.TaskCompleted {
		completed := m.timestamp()
		task.CompletedDate = &completed
	}
}

func (m *Manager) logTransition(goalID string, task *model.Task) {
	m.logger.Info("task status updated",
		logging.GoalID(goalID),
		logging.TaskID(task.ID),
		logging.String("status", string(task.Status)),
		logging.String(logging.FieldEventType, "task_status"),
	)
}

func (m *Manager) loadGoal(goalID string) (*model.Goal, error) {
	goal, err := m.repo.LoadGoal(goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, model.GoalNotFound(goalID)
	}
	return goal, nil
}
