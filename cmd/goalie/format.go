package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"goalie/internal/codec"
	"goalie/internal/model"
	"goalie/internal/textutil"
)

const titleWidth = 48

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return codec.FormatDate(*t)
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

func taskRows(tasks []*model.Task) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			task.ID,
			textutil.Truncate(task.Title, titleWidth),
			textutil.Label(string(task.Status)),
			textutil.Label(string(task.Priority)),
			strconv.Itoa(task.Difficulty),
			formatMinutes(task.TimeEstimate),
			formatList(task.Dependencies),
			formatOptionalDate(task.DueDate),
		})
	}
	return rows
}

func renderTaskTable(tasks []*model.Task) string {
	return renderTable(
		[]string{"ID", "Title", "Status", "Priority", "Diff", "Est", "Depends", "Due"},
		taskRows(tasks),
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	)
}

func renderGoalTable(goals []*model.Goal) string {
	rows := make([][]string, 0, len(goals))
	for _, goal := range goals {
		rows = append(rows, []string{
			goal.ID,
			textutil.Truncate(goal.Name, titleWidth),
			textutil.Label(string(goal.Status)),
			fmt.Sprintf("%d%%", goal.CompletionPercentage),
			strconv.Itoa(len(goal.Tasks)),
			formatOptionalDate(goal.DueDate),
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Status", "Progress", "Tasks", "Due"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

// taskDetailLines renders every field of task as aligned "Label: value" lines.
func taskDetailLines(goalID string, task *model.Task) []string {
	lines := []string{
		fmt.Sprintf("%s. %s", task.ID, task.Title),
		fmt.Sprintf("  Goal:        %s", goalID),
		fmt.Sprintf("  Status:      %s", textutil.Label(string(task.Status))),
		fmt.Sprintf("  Priority:    %s", textutil.Label(string(task.Priority))),
		fmt.Sprintf("  Difficulty:  %d/10", task.Difficulty),
		fmt.Sprintf("  Estimate:    %s", formatMinutes(task.TimeEstimate)),
		fmt.Sprintf("  Depends on:  %s", formatList(task.Dependencies)),
		fmt.Sprintf("  Due:         %s", formatOptionalDate(task.DueDate)),
	}
	if task.ParentTask != "" {
		lines = append(lines, fmt.Sprintf("  Parent:      %s", task.ParentTask))
	}
	if len(task.Subtasks) > 0 {
		lines = append(lines, fmt.Sprintf("  Subtasks:    %s", formatList(task.Subtasks)))
	}
	if task.CompletedDate != nil {
		lines = append(lines, fmt.Sprintf("  Completed:   %s", formatOptionalDate(task.CompletedDate)))
	}
	if desc := strings.TrimSpace(task.Description); desc != "" {
		lines = append(lines, "", desc)
	}
	return lines
}
