package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"goalie/internal/codec"
	"goalie/internal/lifecycle"
	"goalie/internal/model"
)

func newTaskCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListTasksCommand(ctx),
		newShowTaskCommand(ctx),
		newCompleteTaskCommand(ctx),
		newSetStatusCommand(ctx),
		newToggleCommand(ctx),
		newAddSubtaskCommand(ctx),
	}
}

func newListTasksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list-tasks <goal-id>",
		Aliases: []string{"tasks"},
		Short:   "List the tasks of a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			goal, err := mgr.Goal(args[0])
			if err != nil {
				return notFoundHint(err, "run goalie list-goals to see goal IDs")
			}
			tasks, err := mgr.Tasks(goal.ID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, tasks)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%d%% complete)\n", goal.Name, goal.CompletionPercentage)
			if len(tasks) == 0 {
				fmt.Fprintf(out, "No tasks yet. Run: goalie breakdown %s\n", goal.ID)
				return nil
			}
			fmt.Fprintln(out, renderTaskTable(tasks))
			return nil
		},
	}
}

func newShowTaskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show-task <goal-id> <task-id>",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			task, err := mgr.Task(args[0], args[1])
			if err != nil {
				return notFoundHint(err, "run goalie list-tasks "+args[0]+" to see task IDs")
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, task)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(taskDetailLines(args[0], task), "\n"))
			return nil
		},
	}
}

func newCompleteTaskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "complete-task <task-id>",
		Short: "Mark a task completed, searching every goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			var task *model.Task
			var goalID string
			err = ctx.withLock(func() error {
				task, goalID, err = mgr.CompleteTask(args[0])
				return err
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, taskInGoal{GoalID: goalID, Task: task})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s (%s) in goal %s\n", task.ID, task.Title, goalID)
			return nil
		},
	}
}

type taskInGoal struct {
	GoalID string      `json:"goalId"`
	Task   *model.Task `json:"task"`
}

func newSetStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <goal-id> <task-id> <todo|in_progress|completed>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := model.ParseTaskStatus(args[2])
			if !ok {
				return fmt.Errorf("invalid task status %q (want todo, in_progress, or completed)", args[2])
			}
			return updateTask(cmd, ctx, args[0], args[1], func(mgr *lifecycle.Manager) (*model.Task, error) {
				return mgr.UpdateTaskStatus(args[0], args[1], status)
			})
		},
	}
}

func newToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <goal-id> <task-id>",
		Short: "Advance a task through todo, in progress, and completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateTask(cmd, ctx, args[0], args[1], func(mgr *lifecycle.Manager) (*model.Task, error) {
				return mgr.ToggleTask(args[0], args[1])
			})
		},
	}
}

func updateTask(cmd *cobra.Command, ctx *commandContext, goalID, taskID string, apply func(*lifecycle.Manager) (*model.Task, error)) error {
	mgr, err := ctx.manager(nil)
	if err != nil {
		return err
	}
	var task *model.Task
	err = ctx.withLock(func() error {
		task, err = apply(mgr)
		return err
	})
	if err != nil {
		return notFoundHint(err, "run goalie list-tasks "+goalID+" to see task IDs")
	}
	if ctx.jsonOutput() {
		return writeJSON(cmd, task)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", taskID, task.Status)
	return nil
}

func newAddSubtaskCommand(ctx *commandContext) *cobra.Command {
	var spec lifecycle.SubtaskSpec
	var priority string
	var due string

	cmd := &cobra.Command{
		Use:   "add-subtask <goal-id> <parent-task-id> [title]",
		Short: "Add a subtask under an existing task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				spec.Title = strings.Join(args[2:], " ")
			}
			if priority != "" {
				parsed, ok := model.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("invalid priority %q (want low, medium, or high)", priority)
				}
				spec.Priority = parsed
			}
			if due != "" {
				parsed, ok := codec.ParseDate(due)
				if !ok {
					return model.Invalid("due date", fmt.Sprintf("%q is not a date (want YYYY-MM-DD)", due))
				}
				day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
				spec.DueDate = &day
			}

			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			var subtask *model.Task
			err = ctx.withLock(func() error {
				subtask, err = mgr.CreateSubtask(args[0], args[1], spec)
				return err
			})
			if err != nil {
				return notFoundHint(err, "run goalie list-tasks "+args[0]+" to see task IDs")
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, subtask)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created subtask %s (%s) under task %s\n", subtask.ID, subtask.Title, args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&spec.Description, "description", "d", "", "Subtask description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high); defaults to the parent's")
	cmd.Flags().IntVar(&spec.Difficulty, "difficulty", 0, "Difficulty 1-10; defaults to the parent's")
	cmd.Flags().IntVar(&spec.TimeEstimate, "estimate", 0, "Time estimate in minutes (default 30)")
	cmd.Flags().StringSliceVar(&spec.Dependencies, "depends", nil, "IDs of tasks this subtask depends on")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}
