package model

import (
	"strings"
	"time"
)

// TaskStatus represents the lifecycle of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

var allTaskStatuses = []TaskStatus{
	TaskTodo,
	TaskInProgress,
	TaskCompleted,
}

// Priority ranks how important a task is relative to its siblings.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var allPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
}

// GoalStatus represents the lifecycle of a goal.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

var allGoalStatuses = []GoalStatus{
	GoalActive,
	GoalCompleted,
	GoalPaused,
}

const (
	// DefaultDifficulty applies when a stored task omits its difficulty.
	DefaultDifficulty = 1
	// DefaultSubtaskEstimate is the time estimate, in minutes, given to subtasks
	// created without one.
	DefaultSubtaskEstimate = 30
)

// Task is an actionable unit of work owned by exactly one goal.
//
// Difficulty is nominally 1-10 and TimeEstimate is in minutes; neither range
// is enforced. Dates carry day granularity only and are kept in UTC.
type Task struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Status               TaskStatus `json:"status"`
	Priority             Priority   `json:"priority"`
	Difficulty           int        `json:"difficulty"`
	TimeEstimate         int        `json:"timeEstimate"`
	Dependencies         []string   `json:"dependencies"`
	DueDate              *time.Time `json:"dueDate,omitempty"`
	RecommendedStartDate *time.Time `json:"recommendedStartDate,omitempty"`
	CompletedDate        *time.Time `json:"completedDate,omitempty"`
	ParentTask           string     `json:"parentTask,omitempty"`
	Subtasks             []string   `json:"subtasks"`
}

// NewTask returns a todo task with the type defaults applied.
func NewTask(id string) *Task {
	return &Task{
		ID:           id,
		Status:       TaskTodo,
		Priority:     PriorityMedium,
		Difficulty:   DefaultDifficulty,
		Dependencies: []string{},
		Subtasks:     []string{},
	}
}

// IsCompleted reports whether the task has been finished.
func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskCompleted
}

// Goal is a top-level objective owning zero or more tasks.
//
// Tasks is the append-only list of task IDs recorded at creation time; the
// directory listing is the authoritative task set. CompletionPercentage is
// derived and only trustworthy right after a recomputation.
type Goal struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	CreatedDate          time.Time  `json:"createdDate"`
	DueDate              *time.Time `json:"dueDate,omitempty"`
	Status               GoalStatus `json:"status"`
	Tasks                []string   `json:"tasks"`
	CompletionPercentage int        `json:"completionPercentage"`
}

// IsActive reports whether the goal participates in cross-goal recommendations.
func (g *Goal) IsActive() bool {
	return g != nil && g.Status == GoalActive
}

// Next returns the status that follows s in the todo, in_progress, completed
// cycle. Unknown statuses restart the cycle at todo.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskTodo:
		return TaskInProgress
	case TaskInProgress:
		return TaskCompleted
	default:
		return TaskTodo
	}
}

// ParseTaskStatus normalizes user input into a TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	for _, status := range allTaskStatuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// ParsePriority normalizes user input into a Priority.
func ParsePriority(value string) (Priority, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, priority := range allPriorities {
		if string(priority) == normalized {
			return priority, true
		}
	}
	return "", false
}

// ParseGoalStatus normalizes user input into a GoalStatus.
func ParseGoalStatus(value string) (GoalStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, status := range allGoalStatuses {
		if string(status) == normalized {
			return status, true
		}
	}
	return "", false
}

// Weight returns the scoring weight of the priority: high=3, medium=2, low=1.
// Values outside the enum weigh as low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}
