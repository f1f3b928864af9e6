/*
Package board contains the core state synchronization and session logic for
the task board.

This file implements the initial load: three ordered reads from the remote
store, reshaped into the in-memory snapshot. The load is all-or-nothing; no
partial snapshot is ever published.
*/
package board

import (
	"context"

	"taskboard/internal/pkg/errs"
)

// LoadAll fetches the three remote record sets and publishes them as the
// initial snapshot. If any read fails, every set stays empty and a single
// aggregated load error is surfaced. On success the loaded user set is
// handed to the session for validation of the restored identity.
func (e *Engine) LoadAll(ctx context.Context) *errs.CustomError {
	e.clearError()

	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return e.failLoad(err, "users")
	}

	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return e.failLoad(err, "tasks")
	}

	comments, err := e.store.ListComments(ctx)
	if err != nil {
		return e.failLoad(err, "comments")
	}

	e.mu.Lock()
	e.users = users
	e.tasks = tasks
	e.comments = comments
	e.mu.Unlock()

	e.session.Validate(users)

	e.logger.Info().
		Int("users", len(users)).
		Int("tasks", len(tasks)).
		Int("comments", len(comments)).
		Msg("Initial load complete.")
	return nil
}

// failLoad discards anything read so far and surfaces one load error naming
// the record set that failed.
func (e *Engine) failLoad(err error, set string) *errs.CustomError {
	e.logger.Error().Err(err).Str("record_set", set).Msg("Initial load failed. Snapshot left empty.")

	customErr := errs.NewError(errs.ErrLoadFailed, set)

	e.mu.Lock()
	e.users = nil
	e.tasks = nil
	e.comments = nil
	e.lastErr = customErr
	e.mu.Unlock()

	return customErr
}
