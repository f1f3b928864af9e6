/*
Package model defines the core entities of the task board: users, tasks,
and comments.

All identifiers are opaque strings assigned by the remote store and are
immutable once a record has been created. The structs carry JSON tags for
serialization in HTTP responses and in the durable local identity copy.
*/
package model

import "time"

// User represents a registered board member.
// Users are created through registration and are never mutated or deleted
// by this application.
type User struct {

	// ID is the unique store-assigned identifier for the user.
	ID string `json:"id"`

	// Name is the display name shown on the board and on comments.
	Name string `json:"name"`

	// Email is the address supplied at registration.
	Email string `json:"email"`
}

// Task represents a single board item, owned by exactly one user.
type Task struct {

	// ID is the unique store-assigned identifier for the task.
	ID string `json:"id"`

	// Text is the task description. Non-empty at creation.
	Text string `json:"text"`

	// Completed reports which bucket the task sits in.
	Completed bool `json:"completed"`

	// OwnerID references the creating user. Set once, never reassigned.
	OwnerID string `json:"ownerId"`

	// CreatedAt is the store-assigned creation timestamp, used for ordering.
	CreatedAt time.Time `json:"createdAt"`
}

// Comment represents a threaded note attached to a task.
// Comments are never edited or deleted directly; they are removed
// transitively when their task is deleted.
type Comment struct {

	// ID is the unique store-assigned identifier for the comment.
	ID string `json:"id"`

	// TaskID references the task this comment belongs to. Immutable.
	TaskID string `json:"taskId"`

	// UserID references the comment author. Immutable.
	UserID string `json:"userId"`

	// UserName is a snapshot of the author's name taken at creation time.
	// It is intentionally not kept in sync with later name changes.
	UserName string `json:"userName"`

	// Content is the comment body. Non-empty at creation.
	Content string `json:"content"`

	// CreatedAt is the store-assigned creation timestamp, used for ordering.
	CreatedAt time.Time `json:"createdAt"`
}
