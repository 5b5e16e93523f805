// Package store persists goals and tasks as files under a goals root:
//
//	<root>/<goalID>/goal.md      goal metadata and description
//	<root>/<goalID>/goal.json    legacy goal record, migrated on first read
//	<root>/<goalID>/<taskID>.md  one file per task
//
// Every call reads or writes the filesystem directly; nothing is cached and
// nothing is locked. Callers that may race another process hold their own
// lock around mutating sequences.
package store
