package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"goalie/internal/textutil"
)

// NewGoalID derives a goal identifier from its name and creation instant:
// slug(name) + "-" + base36(unix milliseconds).
func NewGoalID(name string, created time.Time) string {
	return textutil.Slugify(name) + "-" + strconv.FormatInt(created.UnixMilli(), 36)
}

// SubtaskID returns the ID of the ordinal-th (1-based) subtask of parentID.
func SubtaskID(parentID string, ordinal int) string {
	return fmt.Sprintf("%s.%d", parentID, ordinal)
}

// SequentialTaskID returns the 1-based task ID used for the index-th task of a
// breakdown.
func SequentialTaskID(index int) string {
	return strconv.Itoa(index + 1)
}

// ValidTaskID reports whether id can be used as a task file name.
func ValidTaskID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || id == "goal" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}
