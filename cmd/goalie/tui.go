package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"goalie/internal/lifecycle"
	"goalie/internal/model"
	"goalie/internal/recommend"
	"goalie/internal/textutil"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse goals and toggle tasks interactively",
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
			b := &browser{
				mgr:      mgr,
				engine:   engine,
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				withLock: ctx.withLock,
			}
			return b.run()
		},
	}
}

// browser is a line-oriented goal and task view. Every screen is redrawn
// from the store, so changes made by other commands show up on the next
// prompt.
type browser struct {
	mgr      *lifecycle.Manager
	engine   *recommend.Engine
	in       *bufio.Scanner
	out      io.Writer
	withLock func(func() error) error
}

func (b *browser) run() error {
	for {
		goals, err := b.mgr.ListGoals()
		if err != nil {
			return err
		}
		fmt.Fprintln(b.out)
		fmt.Fprintln(b.out, "Goals")
		if len(goals) == 0 {
			fmt.Fprintln(b.out, "  (none)")
		}
		for i, goal := range goals {
			fmt.Fprintf(b.out, "  %d) %s [%s, %d%%]\n", i+1, goal.Name, textutil.Label(string(goal.Status)), goal.CompletionPercentage)
		}

		input, ok := b.prompt("goal number, w=what next, q=quit> ")
		if !ok || input == "q" {
			return nil
		}
		switch input {
		case "":
			continue
		case "w":
			if err := b.showRecommendation(""); err != nil {
				return err
			}
			continue
		}
		index, valid := parseChoice(input, len(goals))
		if !valid {
			fmt.Fprintf(b.out, "Unknown choice %q\n", input)
			continue
		}
		quit, err := b.goalView(goals[index].ID)
		if err != nil || quit {
			return err
		}
	}
}

func (b *browser) goalView(goalID string) (bool, error) {
	for {
		goal, err := b.mgr.Goal(goalID)
		if err != nil {
			return false, err
		}
		tasks, err := b.mgr.Tasks(goalID)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(b.out)
		fmt.Fprintf(b.out, "%s (%d%% complete)\n", goal.Name, goal.CompletionPercentage)
		if len(tasks) == 0 {
			fmt.Fprintln(b.out, "  (no tasks)")
		}
		for i, task := range tasks {
			fmt.Fprintf(b.out, "  %d) %s %s %s\n", i+1, statusMarker(task.Status), task.ID, task.Title)
		}

		input, ok := b.prompt("task number to toggle, w=what next, b=back, q=quit> ")
		if !ok || input == "q" {
			return true, nil
		}
		switch input {
		case "":
			continue
		case "b":
			return false, nil
		case "w":
			if err := b.showRecommendation(goalID); err != nil {
				return false, err
			}
			continue
		}
		index, valid := parseChoice(input, len(tasks))
		if !valid {
			fmt.Fprintf(b.out, "Unknown choice %q\n", input)
			continue
		}
		var toggled *model.Task
		err = b.withLock(func() error {
			toggled, err = b.mgr.ToggleTask(goalID, tasks[index].ID)
			return err
		})
		if err != nil {
			return false, err
		}
		fmt.Fprintf(b.out, "Task %s is now %s\n", toggled.ID, textutil.Label(string(toggled.Status)))
	}
}

func (b *browser) showRecommendation(goalID string) error {
	best, err := b.engine.Recommend(goalID)
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Fprintln(b.out, "Nothing available right now.")
		return nil
	}
	fmt.Fprintf(b.out, "Next: %s/%s %s (score %s)\n", best.GoalID, best.Task.ID, best.Task.Title, formatScore(best.Score))
	return nil
}

// prompt writes label and reads one trimmed, lower-cased line. It reports
// false at end of input.
func (b *browser) prompt(label string) (string, bool) {
	fmt.Fprint(b.out, label)
	if !b.in.Scan() {
		fmt.Fprintln(b.out)
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(b.in.Text())), true
}

func parseChoice(input string, count int) (int, bool) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}

func statusMarker(status model.TaskStatus) string {
	switch status {
	case model.TaskCompleted:
		return "[x]"
	case model.TaskInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}
