// Package recommend selects the next task to work on.
//
// Tasks from the goals in scope form one pool. A task is eligible when it is
// todo and every dependency names a completed task in that pool; eligible
// tasks are scored on priority, difficulty, time estimate, and due-date
// urgency, and the highest score wins with pool order breaking ties.
package recommend
