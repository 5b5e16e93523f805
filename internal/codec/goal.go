package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"goalie/internal/model"
)

type goalMeta struct {
	ID                   string   `yaml:"id,omitempty"`
	Name                 string   `yaml:"name,omitempty"`
	CreatedDate          string   `yaml:"createdDate,omitempty"`
	DueDate              string   `yaml:"dueDate,omitempty"`
	Status               string   `yaml:"status,omitempty"`
	Tasks                []string `yaml:"tasks,omitempty,flow"`
	CompletionPercentage *int     `yaml:"completionPercentage,omitempty"`
}

// EncodeGoal renders goal in the current frontmatter format with its
// description as the body.
func EncodeGoal(goal *model.Goal) ([]byte, error) {
	percentage := goal.CompletionPercentage
	meta := goalMeta{
		ID:                   goal.ID,
		Name:                 goal.Name,
		DueDate:              formatOptionalDate(goal.DueDate),
		Status:               string(goal.Status),
		Tasks:                nonEmpty(goal.Tasks),
		CompletionPercentage: &percentage,
	}
	if !goal.CreatedDate.IsZero() {
		meta.CreatedDate = FormatTimestamp(goal.CreatedDate)
	}
	return joinFrontmatter(meta, goal.Description)
}

// DecodeGoal parses a goal.md file. id is the directory-derived identifier
// used when the content does not name one. Content without usable
// frontmatter becomes the description of an otherwise default goal.
func DecodeGoal(id string, data []byte) *model.Goal {
	doc := splitFrontmatter(string(data))

	var meta goalMeta
	if !doc.decodeMeta(&meta) {
		meta = goalMeta{}
	}
	return meta.toGoal(id, doc.body)
}

func (m goalMeta) toGoal(fallbackID, body string) *model.Goal {
	goal := newGoal(fallbackID)
	if m.ID != "" {
		goal.ID = m.ID
	}
	goal.Name = m.Name
	goal.Description = strings.TrimSpace(body)
	if created, ok := ParseDate(m.CreatedDate); ok {
		goal.CreatedDate = created
	}
	goal.DueDate = parseOptionalDate(m.DueDate)
	if m.Status != "" {
		goal.Status = model.GoalStatus(m.Status)
	}
	if m.Tasks != nil {
		goal.Tasks = m.Tasks
	}
	if m.CompletionPercentage != nil {
		goal.CompletionPercentage = *m.CompletionPercentage
	}
	return goal
}

// goalRecord is the legacy whole-record JSON layout of goal.json.
type goalRecord struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	CreatedDate          string   `json:"createdDate"`
	DueDate              string   `json:"dueDate"`
	Status               string   `json:"status"`
	Tasks                []string `json:"tasks"`
	CompletionPercentage *float64 `json:"completionPercentage"`
}

// DecodeGoalRecord reads a legacy goal.json record. Unlike the markdown
// formats a broken record is reported as ErrMalformedRecord, since the caller
// is about to rewrite it and must not replace it with an empty goal.
func DecodeGoalRecord(id string, data []byte) (*model.Goal, error) {
	var record goalRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: decode goal record %s: %w", model.ErrMalformedRecord, id, err)
	}

	goal := newGoal(id)
	if record.ID != "" {
		goal.ID = record.ID
	}
	goal.Name = record.Name
	goal.Description = strings.TrimSpace(record.Description)
	if created, ok := ParseDate(record.CreatedDate); ok {
		goal.CreatedDate = created
	}
	goal.DueDate = parseOptionalDate(record.DueDate)
	if record.Status != "" {
		goal.Status = model.GoalStatus(record.Status)
	}
	if record.Tasks != nil {
		goal.Tasks = record.Tasks
	}
	if record.CompletionPercentage != nil {
		goal.CompletionPercentage = int(math.Round(*record.CompletionPercentage))
	}
	return goal, nil
}

func newGoal(id string) *model.Goal {
	return &model.Goal{
		ID:     id,
		Status: model.GoalActive,
		Tasks:  []string{},
	}
}
