/*
Package remote defines the capability contract for the remote relational store
and its PostgreSQL implementation.

The board engine never talks to the database directly. It depends on the Store
interface: ordered list reads for the initial load, and row-level writes that
return the created record with store-assigned id and timestamp. Cascading
removal of a task's comments on delete is the store's responsibility.
*/
package remote

import (
	"context"

	"taskboard/internal/app/model"
)

// Store is the row-level capability contract consumed by the board engine.
//
// List reads return records in stable order: users by id, tasks and comments
// by creation time. Creates return the full created row. A nil error means
// the write is confirmed; callers mirror the change locally only after that.
type Store interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	ListComments(ctx context.Context) ([]model.Comment, error)

	CreateUser(ctx context.Context, name, email string) (model.User, error)
	CreateTask(ctx context.Context, text, ownerID string) (model.Task, error)
	SetTaskCompleted(ctx context.Context, id string, completed bool) error
	DeleteTask(ctx context.Context, id string) error
	CreateComment(ctx context.Context, taskID, userID, userName, content string) (model.Comment, error)
}
