package lifecycle

import (
	"strconv"
	"strings"
	"time"

	"goalie/internal/logging"
	"goalie/internal/model"
)

// SubtaskSpec holds the fields a caller sets on a new subtask. Zero values
// mean "not given".
type SubtaskSpec struct {
	Title        string
	Description  string
	Priority     model.Priority
	Difficulty   int
	TimeEstimate int
	Dependencies []string
	DueDate      *time.Time
}

// CreateSubtask adds a subtask under parentID. Its ID is
// "<parentID>.<n>" where n is one more than the parent's subtask count.
// Priority and difficulty default to the parent's, the time estimate to 30
// minutes, and the title to "Subtask <n>".
func (m *Manager) CreateSubtask(goalID, parentID string, spec SubtaskSpec) (*model.Task, error) {
	parent, err := m.Task(goalID, parentID)
	if err != nil {
		return nil, err
	}

	ordinal := len(parent.Subtasks) + 1
	subtask := model.NewTask(model.SubtaskID(parentID, ordinal))
	subtask.ParentTask = parentID
	subtask.Title = strings.TrimSpace(spec.Title)
	if subtask.Title == "" {
		subtask.Title = "Subtask " + strconv.Itoa(ordinal)
	}
	subtask.Description = strings.TrimSpace(spec.Description)
	subtask.Priority = parent.Priority
	if spec.Priority != "" {
		subtask.Priority = spec.Priority
	}
	subtask.Difficulty = parent.Difficulty
	if spec.Difficulty != 0 {
		subtask.Difficulty = spec.Difficulty
	}
	subtask.TimeEstimate = model.DefaultSubtaskEstimate
	if spec.TimeEstimate != 0 {
		subtask.TimeEstimate = spec.TimeEstimate
	}
	if len(spec.Dependencies) > 0 {
		subtask.Dependencies = append([]string{}, spec.Dependencies...)
	}
	subtask.DueDate = spec.DueDate

	if err := m.repo.SaveTask(goalID, subtask); err != nil {
		return nil, err
	}
	parent.Subtasks = append(parent.Subtasks, subtask.ID)
	if err := m.repo.SaveTask(goalID, parent); err != nil {
		return nil, err
	}

	m.logger.Info("subtask created",
		logging.GoalID(goalID),
		logging.TaskID(subtask.ID),
		logging.String("parent", parentID),
		logging.String(logging.FieldEventType, "subtask_created"),
	)
	return subtask, nil
}
