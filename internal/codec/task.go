package codec

import (
	"goalie/internal/model"
)

// taskMeta is the frontmatter shape of a task file. Pointer and empty-string
// fields distinguish "key absent" from "key present with a zero value".
type taskMeta struct {
	ID                   string   `yaml:"id,omitempty"`
	Title                string   `yaml:"title,omitempty"`
	Status               string   `yaml:"status,omitempty"`
	Priority             string   `yaml:"priority,omitempty"`
	Difficulty           *int     `yaml:"difficulty,omitempty"`
	TimeEstimate         *int     `yaml:"timeEstimate,omitempty"`
	Dependencies         []string `yaml:"dependencies,omitempty,flow"`
	DueDate              string   `yaml:"dueDate,omitempty"`
	RecommendedStartDate string   `yaml:"recommendedStartDate,omitempty"`
	CompletedDate        string   `yaml:"completedDate,omitempty"`
	ParentTask           string   `yaml:"parentTask,omitempty"`
	Subtasks             []string `yaml:"subtasks,omitempty,flow"`
}

// EncodeTask renders task in the current frontmatter format. Empty optional
// fields are omitted; difficulty and timeEstimate are always written.
func EncodeTask(task *model.Task) ([]byte, error) {
	difficulty := task.Difficulty
	estimate := task.TimeEstimate
	meta := taskMeta{
		ID:                   task.ID,
		Title:                task.Title,
		Status:               string(task.Status),
		Priority:             string(task.Priority),
		Difficulty:           &difficulty,
		TimeEstimate:         &estimate,
		Dependencies:         nonEmpty(task.Dependencies),
		DueDate:              formatOptionalDate(task.DueDate),
		RecommendedStartDate: formatOptionalDate(task.RecommendedStartDate),
		CompletedDate:        formatOptionalDate(task.CompletedDate),
		ParentTask:           task.ParentTask,
		Subtasks:             nonEmpty(task.Subtasks),
	}
	return joinFrontmatter(meta, task.Description)
}

// DecodeTask parses a task file. id is the file-derived identifier used when
// the content does not name one. Files without usable frontmatter are read as
// the legacy markdown layout; decoding never fails.
func DecodeTask(id string, data []byte) (*model.Task, Format) {
	doc := splitFrontmatter(string(data))

	var meta taskMeta
	if !doc.decodeMeta(&meta) {
		return decodeLegacyTask(id, doc.body), FormatLegacyText
	}
	return meta.toTask(id, doc.body), FormatCurrent
}

// toTask applies the field default table: each absent key takes the type
// default, present keys are kept verbatim.
func (m taskMeta) toTask(fallbackID, body string) *model.Task {
	task := model.NewTask(fallbackID)
	if m.ID != "" {
		task.ID = m.ID
	}
	task.Title = m.Title
	task.Description = body
	if m.Status != "" {
		task.Status = model.TaskStatus(m.Status)
	}
	if m.Priority != "" {
		task.Priority = model.Priority(m.Priority)
	}
	if m.Difficulty != nil {
		task.Difficulty = *m.Difficulty
	}
	if m.TimeEstimate != nil {
		task.TimeEstimate = *m.TimeEstimate
	}
	if m.Dependencies != nil {
		task.Dependencies = m.Dependencies
	}
	task.DueDate = parseOptionalDate(m.DueDate)
	task.RecommendedStartDate = parseOptionalDate(m.RecommendedStartDate)
	task.CompletedDate = parseOptionalDate(m.CompletedDate)
	task.ParentTask = m.ParentTask
	if m.Subtasks != nil {
		task.Subtasks = m.Subtasks
	}
	return task
}

func nonEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
