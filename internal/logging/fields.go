package logging

// Standardized structured logging keys.
const (
	FieldComponent = "component"
	FieldGoalID    = "goal_id"
	FieldTaskID    = "task_id"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSessionID identifies one CLI invocation across log lines.
	FieldSessionID = "session_id"
)
