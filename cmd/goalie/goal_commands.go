package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"goalie/internal/model"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the goals directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			if err := mgr.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal store ready at %s\n", ctx.config.Paths.GoalsDir)
			return nil
		},
	}
}

func newGoalCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newCreateGoalCommand(ctx),
		newBreakdownCommand(ctx),
		newListGoalsCommand(ctx),
		newSetGoalStatusCommand(ctx),
	}
}

type goalWithTasks struct {
	Goal  *model.Goal   `json:"goal"`
	Tasks []*model.Task `json:"tasks"`
}

func newCreateGoalCommand(ctx *commandContext) *cobra.Command {
	var description string
	var due string
	var noBreakdown bool
	var response string

	cmd := &cobra.Command{
		Use:   "create-goal <name>",
		Short: "Create a goal and break it down into tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			progress := out
			if ctx.jsonOutput() {
				progress = cmd.ErrOrStderr()
			}
			decomposer, err := ctx.decomposer(response, progress)
			if err != nil {
				return err
			}
			mgr, err := ctx.manager(decomposer)
			if err != nil {
				return err
			}

			result := goalWithTasks{Tasks: []*model.Task{}}
			err = ctx.withLock(func() error {
				goal, err := mgr.CreateGoal(strings.Join(args, " "), description, due)
				if err != nil {
					return err
				}
				result.Goal = goal
				if noBreakdown {
					return nil
				}
				tasks, err := mgr.BreakdownGoal(cmd.Context(), goal.ID)
				if err != nil {
					return err
				}
				result.Tasks = tasks
				result.Goal, err = mgr.Goal(goal.ID)
				return err
			})
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(out, "Created goal %q (%s)\n", result.Goal.Name, result.Goal.ID)
			if len(result.Tasks) > 0 {
				fmt.Fprintln(out, renderTaskTable(result.Tasks))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Goal description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&noBreakdown, "no-breakdown", false, "Skip breaking the goal down into tasks")
	cmd.Flags().StringVar(&response, "response", "", "Read the breakdown from a saved assistant response")
	return cmd
}

func newBreakdownCommand(ctx *commandContext) *cobra.Command {
	var response string

	cmd := &cobra.Command{
		Use:   "breakdown <goal-id>",
		Short: "Break a goal down into tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			progress := out
			if ctx.jsonOutput() {
				progress = cmd.ErrOrStderr()
			}
			decomposer, err := ctx.decomposer(response, progress)
			if err != nil {
				return err
			}
			mgr, err := ctx.manager(decomposer)
			if err != nil {
				return err
			}

			var tasks []*model.Task
			err = ctx.withLock(func() error {
				tasks, err = mgr.BreakdownGoal(cmd.Context(), args[0])
				return err
			})
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, tasks)
			}
			fmt.Fprintf(out, "Goal %s now has %d tasks from this breakdown\n", args[0], len(tasks))
			fmt.Fprintln(out, renderTaskTable(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&response, "response", "", "Read the breakdown from a saved assistant response")
	return cmd
}

func newListGoalsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list-goals",
		Aliases: []string{"goals"},
		Short:   "List goals with their progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			goals, err := mgr.ListGoals()
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, goals)
			}
			out := cmd.OutOrStdout()
			if len(goals) == 0 {
				fmt.Fprintln(out, "No goals yet. Create one with: goalie create-goal <name>")
				return nil
			}
			fmt.Fprintln(out, renderGoalTable(goals))
			return nil
		},
	}
}

func newSetGoalStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-goal-status <goal-id> <active|completed|paused>",
		Short: "Change a goal's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := model.ParseGoalStatus(args[1])
			if !ok {
				return fmt.Errorf("invalid goal status %q (want active, completed, or paused)", args[1])
			}
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			var goal *model.Goal
			err = ctx.withLock(func() error {
				goal, err = mgr.UpdateGoalStatus(args[0], status)
				return err
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, goal)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal %s is now %s\n", goal.ID, status)
			return nil
		},
	}
}

// notFoundHint adds a next step to lookup failures.
func notFoundHint(err error, hint string) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w (%s)", err, hint)
	}
	return err
}
