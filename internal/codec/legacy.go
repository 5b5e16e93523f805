package codec

import (
	"strconv"
	"strings"

	"goalie/internal/model"
)

const legacyDescriptionMarker = "## Description"

// legacyField maps a "**Key:**" line prefix to the task field it sets.
type legacyField struct {
	key   string
	apply func(task *model.Task, value string)
}

var legacyFields = []legacyField{
	{key: "Status", apply: func(task *model.Task, value string) {
		if value != "" {
			task.Status = model.TaskStatus(value)
		}
	}},
	{key: "Priority", apply: func(task *model.Task, value string) {
		if value != "" {
			task.Priority = model.Priority(value)
		}
	}},
	{key: "Difficulty", apply: func(task *model.Task, value string) {
		// "7/10"
		head, _, _ := strings.Cut(value, "/")
		if n, err := strconv.Atoi(strings.TrimSpace(head)); err == nil {
			task.Difficulty = n
		}
	}},
	{key: "Time Estimate", apply: func(task *model.Task, value string) {
		// "45 minutes"
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return
		}
		if n, err := strconv.Atoi(fields[0]); err == nil {
			task.TimeEstimate = n
		}
	}},
	{key: "Dependencies", apply: func(task *model.Task, value string) {
		task.Dependencies = splitList(value)
	}},
	{key: "Due Date", apply: func(task *model.Task, value string) {
		task.DueDate = parseOptionalDate(value)
	}},
	{key: "Recommended Start Date", apply: func(task *model.Task, value string) {
		task.RecommendedStartDate = parseOptionalDate(value)
	}},
	{key: "Completed Date", apply: func(task *model.Task, value string) {
		task.CompletedDate = parseOptionalDate(value)
	}},
	{key: "Parent Task", apply: func(task *model.Task, value string) {
		task.ParentTask = value
	}},
	{key: "Subtasks", apply: func(task *model.Task, value string) {
		task.Subtasks = splitList(value)
	}},
}

// decodeLegacyTask reads the pre-frontmatter markdown layout:
//
//	# Title
//	**Status:** todo
//	**Difficulty:** 3/10
//	**Time Estimate:** 45 minutes
//	...
//	## Description
//	free text
//
// Metadata lines are recognized anywhere in the file. Non-blank lines after
// the description marker form the description. Content with no recognizable
// legacy markup at all is kept whole as the description.
func decodeLegacyTask(id, content string) *model.Task {
	task := model.NewTask(id)

	recognized := false
	inDescription := false
	var description []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if title, ok := strings.CutPrefix(line, "# "); ok {
			task.Title = strings.TrimSpace(title)
			recognized = true
			continue
		}
		if field, value, ok := matchLegacyField(line); ok {
			field.apply(task, value)
			recognized = true
			continue
		}
		if strings.TrimSpace(line) == legacyDescriptionMarker {
			inDescription = true
			recognized = true
			continue
		}
		if inDescription && strings.TrimSpace(line) != "" {
			description = append(description, line)
		}
	}

	if !recognized {
		task.Description = strings.TrimSpace(content)
		return task
	}
	task.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return task
}

func matchLegacyField(line string) (legacyField, string, bool) {
	if !strings.HasPrefix(line, "**") {
		return legacyField{}, "", false
	}
	for _, field := range legacyFields {
		rest, ok := strings.CutPrefix(line, "**"+field.key+":**")
		if !ok {
			continue
		}
		return field, unwrapEmphasis(rest), true
	}
	return legacyField{}, "", false
}

func unwrapEmphasis(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "**")
	value = strings.TrimSuffix(value, "**")
	return strings.TrimSpace(value)
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
