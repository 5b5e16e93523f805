package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"goalie/internal/model"
	"goalie/internal/textutil"
)

type statusSummary struct {
	TotalGoals     int           `json:"totalGoals"`
	ActiveGoals    int           `json:"activeGoals"`
	CompletedGoals int           `json:"completedGoals"`
	PausedGoals    int           `json:"pausedGoals"`
	Goals          []*model.Goal `json:"goals"`
	Recommended    *scoredTask   `json:"recommended"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize goal progress and the next recommended task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := ctx.manager(nil)
			if err != nil {
				return err
			}
			engine, err := ctx.engine()
			if err != nil {
				return err
			}
			goals, err := mgr.ListGoals()
			if err != nil {
				return err
			}
			best, err := engine.Recommend("")
			if err != nil {
				return err
			}

			summary := statusSummary{TotalGoals: len(goals), Goals: goals}
			for _, goal := range goals {
				switch goal.Status {
				case model.GoalActive:
					summary.ActiveGoals++
				case model.GoalCompleted:
					summary.CompletedGoals++
				case model.GoalPaused:
					summary.PausedGoals++
				}
			}
			if best != nil {
				summary.Recommended = &scoredTask{GoalID: best.GoalID, Score: best.Score, Task: best.Task}
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(ctx.config, out)
			for _, line := range renderSectionHeader("Goals", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Total", statusInfo, fmt.Sprintf("%d %s", summary.TotalGoals, textutil.Ternary(summary.TotalGoals == 1, "goal", "goals")), colorize))
			fmt.Fprintln(out, renderStatusLine("Active", statusInfo, fmt.Sprint(summary.ActiveGoals), colorize))
			fmt.Fprintln(out, renderStatusLine("Completed", statusOK, fmt.Sprint(summary.CompletedGoals), colorize))
			if summary.PausedGoals > 0 {
				fmt.Fprintln(out, renderStatusLine("Paused", statusWarn, fmt.Sprint(summary.PausedGoals), colorize))
			}

			if summary.ActiveGoals > 0 {
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Progress", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, goal := range goals {
					if !goal.IsActive() {
						continue
					}
					label := textutil.Truncate(goal.Name, statusLabelWidth-1)
					fmt.Fprintln(out, renderStatusLine(label, goalStatusKind(goal.Status), fmt.Sprintf("%d%% complete", goal.CompletionPercentage), colorize))
				}
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Next", colorize) {
				fmt.Fprintln(out, line)
			}
			if best == nil {
				fmt.Fprintln(out, renderStatusLine("Recommended", statusWarn, "nothing available", colorize))
				return nil
			}
			message := fmt.Sprintf("%s/%s %s (score %s)", best.GoalID, best.Task.ID, best.Task.Title, formatScore(best.Score))
			fmt.Fprintln(out, renderStatusLine("Recommended", statusOK, message, colorize))
			return nil
		},
	}
}
