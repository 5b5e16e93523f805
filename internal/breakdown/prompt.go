package breakdown

import (
	"strings"

	"goalie/internal/codec"
	"goalie/internal/model"
)

const responseFormat = `[
  {
    "title": "Task title",
    "description": "Detailed description",
    "priority": "high|medium|low",
    "difficulty": 1-10,
    "timeEstimate": minutes,
    "dependencies": ["1", "2"]
  }
]`

// BuildPrompt renders the decomposition request for goal.
func BuildPrompt(goal *model.Goal) string {
	var b strings.Builder
	b.WriteString("I need help breaking down this goal into actionable tasks:\n\n")
	b.WriteString("Goal: " + goal.Name + "\n")
	b.WriteString("Description: " + goal.Description)
	if goal.DueDate != nil {
		b.WriteString("\nDue Date: " + codec.FormatDate(*goal.DueDate))
	}
	b.WriteString(`

Please break this goal down into specific, actionable tasks. For each task, provide:
1. Title (clear and actionable)
2. Description (detailed enough to know exactly what to do)
3. Priority (high/medium/low)
4. Difficulty (1-10 scale)
5. Time estimate (in minutes)
6. Dependencies (if any, reference by task number)

Format your response as a JSON array of tasks with the following structure:
`)
	b.WriteString(responseFormat)
	b.WriteString("\n\nDependencies are optional and list the numbers of earlier tasks.\n")
	b.WriteString("Only return the JSON array, no additional text.")
	return b.String()
}
