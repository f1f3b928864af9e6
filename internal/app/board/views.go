/*
Package board contains the core state synchronization and session logic for
the task board.

This file implements the view projections: pure, side-effect-free derivations
over the snapshot, recomputed on every read. The snapshot is small, so no
caching is applied.
*/
package board

import "taskboard/internal/app/model"

// Users returns a copy of the loaded user set in load order.
func (e *Engine) Users() []model.User {
	e.mu.RLock()
	defer e.mu.RUnlock()

	users := make([]model.User, len(e.users))
	copy(users, e.users)
	return users
}

// TasksOf returns the tasks owned by the given user, in creation order.
// Ownership scopes visibility: a user's view never contains another user's
// tasks.
func (e *Engine) TasksOf(userID string) []model.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var tasks []model.Task
	for _, t := range e.tasks {
		if t.OwnerID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// CommentsOf returns the comments attached to the given task, in creation
// order.
func (e *Engine) CommentsOf(taskID string) []model.Comment {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var comments []model.Comment
	for _, c := range e.comments {
		if c.TaskID == taskID {
			comments = append(comments, c)
		}
	}
	return comments
}

// Draft returns the pending comment text for the given task, or "".
func (e *Engine) Draft(taskID string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.drafts[taskID]
}

// Incomplete returns the tasks not yet completed, preserving order.
func Incomplete(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Complete returns the completed tasks, preserving order.
func Complete(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}
