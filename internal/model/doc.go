// Package model defines the goal and task records shared by every goalie
// component.
//
// Goals own their tasks by directory containment; tasks reference each other
// only by ID (dependencies, parent, subtasks). Enumerations are plain string
// types so they read naturally in frontmatter and JSON, and unknown values
// read from disk pass through untouched rather than failing a load.
//
// The package also carries the error taxonomy (ErrNotFound,
// ErrMalformedRecord, ErrValidation) so storage, recommendation, and
// lifecycle code can classify failures with errors.Is.
package model
