package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrValidation      = errors.New("validation error")
)

// NotFoundError reports a goal or task that an operation required but could
// not locate. It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Kind   string
	ID     string
	GoalID string
}

func (e *NotFoundError) Error() string {
	if e.GoalID != "" {
		return fmt.Sprintf("%s %s not found in goal %s", e.Kind, e.ID, e.GoalID)
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ErrorKind classifies the error for callers that map failures to exit states.
func (e *NotFoundError) ErrorKind() string {
	return "not_found"
}

// GoalNotFound builds the error returned when a goal directory is absent.
func GoalNotFound(id string) error {
	return &NotFoundError{Kind: "goal", ID: id}
}

// TaskNotFound builds the error returned when a task file is absent. goalID
// may be empty for cross-goal lookups.
func TaskNotFound(goalID, id string) error {
	return &NotFoundError{Kind: "task", ID: id, GoalID: goalID}
}

// Invalid wraps ErrValidation with a field-specific message.
func Invalid(field, message string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, message)
}
