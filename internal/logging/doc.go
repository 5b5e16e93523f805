// Package logging assembles structured slog loggers and formatting helpers
// used across goalie.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and stamps each record with the invocation's session ID. The
// package also provides a no-op logger for tests and library code that is
// handed no logger.
package logging
