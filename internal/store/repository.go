package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"goalie/internal/codec"
	"goalie/internal/fileutil"
	"goalie/internal/logging"
	"goalie/internal/model"
)

const (
	goalFileName       = "goal.md"
	legacyGoalFileName = "goal.json"
	taskFileExt        = ".md"
	fileMode           = 0o644
	dirMode            = 0o755
)

// Repository is the persistence contract the lifecycle and recommendation
// layers depend on. Load methods return (nil, nil) when the record is absent.
type Repository interface {
	Init() error
	GoalExists(goalID string) bool
	SaveGoal(goal *model.Goal) error
	LoadGoal(goalID string) (*model.Goal, error)
	ListGoals() ([]*model.Goal, error)
	SaveTask(goalID string, task *model.Task) error
	LoadTask(goalID, taskID string) (*model.Task, error)
	ListTasksForGoal(goalID string) ([]*model.Task, error)
}

// FileRepository stores goals and tasks as markdown files below root.
type FileRepository struct {
	root   string
	logger *slog.Logger
}

var _ Repository = (*FileRepository)(nil)

// NewFileRepository returns a repository rooted at root. A nil logger
// discards migration and skip notices.
func NewFileRepository(root string, logger *slog.Logger) *FileRepository {
	return &FileRepository{
		root:   root,
		logger: logging.NewComponentLogger(logger, "store"),
	}
}

// Root returns the goals root directory.
func (r *FileRepository) Root() string {
	return r.root
}

// Init creates the goals root if needed.
func (r *FileRepository) Init() error {
	if err := os.MkdirAll(r.root, dirMode); err != nil {
		return fmt.Errorf("create goals directory: %w", err)
	}
	return nil
}

// GoalExists reports whether the goal's directory exists.
func (r *FileRepository) GoalExists(goalID string) bool {
	dir, err := r.goalDir(goalID)
	if err != nil {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// SaveGoal writes goal.md, creating the goal directory when needed.
func (r *FileRepository) SaveGoal(goal *model.Goal) error {
	dir, err := r.goalDir(goal.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create goal directory %s: %w", goal.ID, err)
	}
	data, err := codec.EncodeGoal(goal)
	if err != nil {
		return fmt.Errorf("encode goal %s: %w", goal.ID, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, goalFileName), data, fileMode); err != nil {
		return fmt.Errorf("save goal %s: %w", goal.ID, err)
	}
	return nil
}

// LoadGoal reads goal.md, falling back to a legacy goal.json which is then
// rewritten as goal.md and removed. A legacy record that cannot be decoded
// is left in place and reported as model.ErrMalformedRecord.
func (r *FileRepository) LoadGoal(goalID string) (*model.Goal, error) {
	dir, err := r.goalDir(goalID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, goalFileName))
	switch {
	case err == nil:
		return codec.DecodeGoal(goalID, data), nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read goal %s: %w", goalID, err)
	}

	return r.migrateLegacyGoal(goalID, dir)
}

func (r *FileRepository) migrateLegacyGoal(goalID, dir string) (*model.Goal, error) {
	legacyPath := filepath.Join(dir, legacyGoalFileName)
	data, err := os.ReadFile(legacyPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read legacy goal %s: %w", goalID, err)
	}

	goal, err := codec.DecodeGoalRecord(goalID, data)
	if err != nil {
		return nil, err
	}
	// The directory name is the goal's identity; a stale record id must not
	// redirect the migrated file away from the goal's tasks.
	goal.ID = goalID
	if err := r.SaveGoal(goal); err != nil {
		return nil, fmt.Errorf("migrate goal %s: %w", goalID, err)
	}
	if err := os.Remove(legacyPath); err != nil {
		logging.ErrorWithContext(r.logger, "legacy goal record not removed", "goal_migration_cleanup_failed",
			logging.GoalID(goalID),
			logging.String("path", legacyPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete goal.json by hand; goal.md takes precedence"),
		)
	}

	r.logger.Info("legacy goal record migrated",
		logging.GoalID(goal.ID),
		logging.String("from", codec.FormatLegacyRecord.String()),
		logging.String("to", codec.FormatCurrent.String()),
		logging.String(logging.FieldEventType, "goal_migrated"),
	)
	return goal, nil
}

// ListGoals loads every goal directory under the root in name order.
// Directories without a goal file, and goals whose legacy record is
// malformed, are skipped. A missing root yields an empty list.
func (r *FileRepository) ListGoals() ([]*model.Goal, error) {
	entries, err := os.ReadDir(r.root)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Goal{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	goals := make([]*model.Goal, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		goal, err := r.LoadGoal(entry.Name())
		if errors.Is(err, model.ErrMalformedRecord) {
			logging.WarnWithContext(r.logger, "goal skipped; legacy record unreadable", "goal_skipped",
				logging.GoalID(entry.Name()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix or remove goal.json by hand"),
				logging.String(logging.FieldImpact, "goal is hidden from listings"),
			)
			continue
		}
		if err != nil {
			return nil, err
		}
		if goal == nil {
			continue
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

// SaveTask writes <goalID>/<taskID>.md.
func (r *FileRepository) SaveTask(goalID string, task *model.Task) error {
	dir, err := r.goalDir(goalID)
	if err != nil {
		return err
	}
	path, err := taskPath(dir, task.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create goal directory %s: %w", goalID, err)
	}
	data, err := codec.EncodeTask(task)
	if err != nil {
		return fmt.Errorf("encode task %s: %w", task.ID, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, fileMode); err != nil {
		return fmt.Errorf("save task %s/%s: %w", goalID, task.ID, err)
	}
	return nil
}

// LoadTask reads one task file.
func (r *FileRepository) LoadTask(goalID, taskID string) (*model.Task, error) {
	dir, err := r.goalDir(goalID)
	if err != nil {
		return nil, err
	}
	path, err := taskPath(dir, taskID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task %s/%s: %w", goalID, taskID, err)
	}
	task, format := codec.DecodeTask(taskID, data)
	if format != codec.FormatCurrent {
		r.logger.Debug("task decoded from older layout",
			logging.GoalID(goalID),
			logging.TaskID(taskID),
			logging.String("format", format.String()),
		)
	}
	return task, nil
}

// ListTasksForGoal loads every task file of a goal, ordered by task ID with
// numeric segments compared numerically. A missing goal directory yields an
// empty list.
func (r *FileRepository) ListTasksForGoal(goalID string) ([]*model.Task, error) {
	dir, err := r.goalDir(goalID)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list tasks for %s: %w", goalID, err)
	}

	tasks := make([]*model.Task, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == goalFileName || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, taskFileExt) {
			continue
		}
		task, err := r.LoadTask(goalID, strings.TrimSuffix(name, taskFileExt))
		if err != nil {
			return nil, err
		}
		if task != nil {
			tasks = append(tasks, task)
		}
	}
	SortTasks(tasks)
	return tasks, nil
}

func (r *FileRepository) goalDir(goalID string) (string, error) {
	if !validPathComponent(goalID) {
		return "", model.Invalid("goal id", fmt.Sprintf("%q cannot name a directory", goalID))
	}
	return filepath.Join(r.root, goalID), nil
}

func taskPath(goalDir, taskID string) (string, error) {
	if !model.ValidTaskID(taskID) {
		return "", model.Invalid("task id", fmt.Sprintf("%q cannot name a file", taskID))
	}
	return filepath.Join(goalDir, taskID+taskFileExt), nil
}

func validPathComponent(id string) bool {
	if strings.TrimSpace(id) == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
