// Package breakdown turns a goal into an initial task list.
//
// A Decomposer receives a natural-language request built by BuildPrompt and
// answers with text that should contain a JSON array of task records.
// ParseTasks reads that answer defensively; when it cannot, callers use
// FallbackTasks. No decomposer here talks to a network service: PromptFile
// writes the request for a person to carry to an assistant and answers with a
// fixed starter plan, and ResponseFile reads an answer saved earlier.
package breakdown
