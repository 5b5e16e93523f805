package breakdown

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"goalie/internal/model"
)

const (
	defaultResponseDifficulty = 1
	defaultResponseEstimate   = 30
	snippetLimit              = 200
)

// ErrNoTaskArray reports a response without a bracket-delimited array.
var ErrNoTaskArray = errors.New("no JSON array found in response")

// taskRecord is one element of a decomposition response. Numbers may arrive
// as JSON numbers or numeric strings.
type taskRecord struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Priority     string            `json:"priority"`
	Difficulty   flexNumber        `json:"difficulty"`
	TimeEstimate flexNumber        `json:"timeEstimate"`
	Dependencies []json.RawMessage `json:"dependencies"`
}

// ParseTasks reads the task array embedded in response: the text from the
// first '[' to the last ']'. Tasks get IDs "1", "2", ... in array order.
// Missing or zero fields take defaults: title "Task N", priority medium,
// difficulty 1, time estimate 30.
func ParseTasks(response string) ([]*model.Task, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start < 0 || end <= start {
		return nil, ErrNoTaskArray
	}
	payload := response[start : end+1]

	var records []taskRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, fmt.Errorf("decode task array: %w (payload snippet: %s)", err, snippet(payload))
	}

	tasks := make([]*model.Task, 0, len(records))
	for i, record := range records {
		tasks = append(tasks, record.toTask(model.SequentialTaskID(i)))
	}
	return tasks, nil
}

func (r taskRecord) toTask(id string) *model.Task {
	task := model.NewTask(id)
	task.Title = strings.TrimSpace(r.Title)
	if task.Title == "" {
		task.Title = "Task " + id
	}
	task.Description = strings.TrimSpace(r.Description)
	if priority, ok := model.ParsePriority(r.Priority); ok {
		task.Priority = priority
	}
	task.Difficulty = r.Difficulty.orDefault(defaultResponseDifficulty)
	task.TimeEstimate = r.TimeEstimate.orDefault(defaultResponseEstimate)
	for _, raw := range r.Dependencies {
		if dep, ok := dependencyID(raw); ok {
			task.Dependencies = append(task.Dependencies, dep)
		}
	}
	return task
}

// FallbackTasks is the plan used when a response cannot be parsed: one task
// asking for the goal to be broken down by hand.
func FallbackTasks(goalID string) []*model.Task {
	task := model.NewTask(model.SequentialTaskID(0))
	task.Title = "Review and break down goal manually"
	task.Description = "Automatic breakdown failed. Please break down the goal by hand: " + goalID
	task.Priority = model.PriorityHigh
	task.Difficulty = 3
	task.TimeEstimate = 60
	return []*model.Task{task}
}

// dependencyID accepts "1" or 1.
func dependencyID(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

type flexNumber struct {
	value float64
	set   bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.value, f.set = n, true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number, got %s", data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("expected number, got %q", s)
	}
	f.value, f.set = n, true
	return nil
}

// orDefault returns the rounded value, or fallback when it is missing or zero.
func (f flexNumber) orDefault(fallback int) int {
	if !f.set {
		return fallback
	}
	n := int(math.Round(f.value))
	if n == 0 {
		return fallback
	}
	return n
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= snippetLimit {
		return s
	}
	return s[:snippetLimit] + "..."
}
