// Package lifecycle implements the goal and task operations behind every
// command: creating and breaking down goals, reporting progress, and moving
// tasks through their statuses.
//
// Multi-step writes (a subtask and then its parent, tasks and then their
// goal) are not atomic. A crash between steps can leave a task file the
// parent record does not list; the files themselves stay readable.
package lifecycle
