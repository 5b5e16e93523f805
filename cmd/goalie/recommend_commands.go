package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"goalie/internal/recommend"
	"goalie/internal/textutil"
)

type scoredTask struct {
	GoalID string  `json:"goalId"`
	Score  float64 `json:"score"`
	Task   any     `json:"task"`
}

func newWorkCommand(ctx *commandContext) *cobra.Command {
	var goalID string

	cmd := &cobra.Command{
		Use:     "work",
		Aliases: []string{"next"},
		Short:   "Recommend the task to work on next",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.engine()
			if err != nil {
				return err
			}
			best, err := engine.Recommend(goalID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				if best == nil {
					return writeJSON(cmd, nil)
				}
				return writeJSON(cmd, scoredTask{GoalID: best.GoalID, Score: best.Score, Task: best.Task})
			}
			out := cmd.OutOrStdout()
			if best == nil {
				fmt.Fprintln(out, "No tasks available. Everything is either done or waiting on a dependency.")
				return nil
			}
			fmt.Fprintf(out, "Recommended next task (score %s):\n", formatScore(best.Score))
			fmt.Fprintln(out, strings.Join(taskDetailLines(best.GoalID, best.Task), "\n"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goalID, "goal", "g", "", "Only consider tasks of this goal")
	return cmd
}

func newAvailableCommand(ctx *commandContext) *cobra.Command {
	var goalID string

	cmd := &cobra.Command{
		Use:   "available",
		Short: "List tasks whose dependencies are all completed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.engine()
			if err != nil {
				return err
			}
			available, err := engine.Available(goalID)
			if err != nil {
				return err
			}

			now := time.Now()
			scored := make([]scoredTask, 0, len(available))
			rows := make([][]string, 0, len(available))
			for _, c := range available {
				score := recommend.Score(c.Task, now)
				scored = append(scored, scoredTask{GoalID: c.GoalID, Score: score, Task: c.Task})
				rows = append(rows, []string{
					c.GoalID,
					c.Task.ID,
					textutil.Truncate(c.Task.Title, titleWidth),
					textutil.Label(string(c.Task.Priority)),
					formatMinutes(c.Task.TimeEstimate),
					formatScore(score),
				})
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, scored)
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No tasks available.")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Goal", "ID", "Title", "Priority", "Est", "Score"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goalID, "goal", "g", "", "Only consider tasks of this goal")
	return cmd
}
