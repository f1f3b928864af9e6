/*
Package board contains the core state synchronization and session logic for
the task board.

This file defines the Engine struct, the coordinator that owns the in-memory
snapshot of users, tasks, and comments. Every mutation follows the same
write-through pattern: validate locally, issue the remote write, and only
after confirmation apply the equivalent change to the snapshot. A rejected
remote write never corrupts the local view.
*/
package board

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"taskboard/internal/app/model"
	"taskboard/internal/app/remote"
	"taskboard/internal/pkg/errs"
	"taskboard/internal/pkg/logx"
)

// Engine coordinates the session, the remote store, and the local snapshot.
type Engine struct {
	// store is the remote relational store gateway.
	store remote.Store

	// session tracks the active user.
	session *Session

	// mu protects the snapshot fields and lastErr below.
	mu sync.RWMutex

	// users, tasks, and comments mirror the remote record sets in load order.
	users    []model.User
	tasks    []model.Task
	comments []model.Comment

	// drafts maps task id to pending, unsaved comment text.
	drafts map[string]string

	// lastErr is the single current surfaced error. A new attempt that
	// reaches the store replaces it.
	lastErr *errs.CustomError

	// structured logger with engine context.
	logger zerolog.Logger
}

// NewEngine constructs an Engine with an empty snapshot and an unresolved
// session backed by the given durable identity store.
func NewEngine(store remote.Store, identity IdentityStore) *Engine {
	engineLogger := logx.Logger().With().Str("component", "Engine").Logger()

	return &Engine{
		store:   store,
		session: NewSession(identity),
		drafts:  make(map[string]string),
		logger:  engineLogger,
	}
}

// RestoreSession reads the durable identity copy. Called once at startup,
// before LoadAll validates the copy against the loaded user set.
func (e *Engine) RestoreSession() {
	e.session.Restore()
}

// Login binds the session to a user from the loaded set.
func (e *Engine) Login(id string) *errs.CustomError {
	e.mu.RLock()
	users := e.users
	e.mu.RUnlock()

	return e.session.Login(id, users)
}

// Logout clears the session. The snapshot is left intact.
func (e *Engine) Logout() {
	e.session.Logout()
}

// CurrentUser returns a copy of the active user, or nil when signed out.
func (e *Engine) CurrentUser() *model.User {
	return e.session.Current()
}

// SessionState returns the session's lifecycle state.
func (e *Engine) SessionState() SessionState {
	return e.session.State()
}

// LastError returns the current surfaced error, or nil.
func (e *Engine) LastError() *errs.CustomError {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.lastErr
}

// CreateTask creates an incomplete task owned by the active user and appends
// the confirmed row to the snapshot.
func (e *Engine) CreateTask(ctx context.Context, text string) (*model.Task, *errs.CustomError) {
	user := e.session.Current()
	if user == nil {
		return nil, errs.NewError(errs.ErrNoActiveSession)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.NewError(errs.ErrEmptyTaskText)
	}

	e.clearError()

	created, err := e.store.CreateTask(ctx, text, user.ID)
	if err != nil {
		return nil, e.fail(err, "create_task", errs.ErrRemoteWrite)
	}

	e.mu.Lock()
	e.tasks = append(e.tasks, created)
	e.mu.Unlock()

	e.logger.Info().Str("task_id", created.ID).Str("owner_id", user.ID).Msg("Task created.")
	return &created, nil
}

// ToggleTask flips the completed flag of one of the active user's tasks.
// The negation is requested remotely first; the local flag only moves after
// confirmation.
func (e *Engine) ToggleTask(ctx context.Context, taskID string) *errs.CustomError {
	task, customErr := e.ownedTask(taskID)
	if customErr != nil {
		return customErr
	}

	return e.setCompleted(ctx, taskID, !task.Completed)
}

// MoveTask sets an explicit target bucket for one of the active user's
// tasks, used by the drag-and-drop transition. Dropping a task onto the
// bucket it already sits in is a legal idempotent write.
func (e *Engine) MoveTask(ctx context.Context, taskID string, completed bool) *errs.CustomError {
	if _, customErr := e.ownedTask(taskID); customErr != nil {
		return customErr
	}

	return e.setCompleted(ctx, taskID, completed)
}

// setCompleted issues the remote completed-flag update and mirrors the
// confirmed value into the snapshot.
func (e *Engine) setCompleted(ctx context.Context, taskID string, completed bool) *errs.CustomError {
	e.clearError()

	if err := e.store.SetTaskCompleted(ctx, taskID, completed); err != nil {
		return e.fail(err, "set_task_completed", errs.ErrRemoteWrite)
	}

	e.mu.Lock()
	for i := range e.tasks {
		if e.tasks[i].ID == taskID {
			e.tasks[i].Completed = completed
			break
		}
	}
	e.mu.Unlock()

	e.logger.Info().Str("task_id", taskID).Bool("completed", completed).Msg("Task moved.")
	return nil
}

// DeleteTask deletes one of the active user's tasks. The remote store
// cascades the delete to the task's comments; the snapshot prunes its
// comment set identically so the two stay consistent.
func (e *Engine) DeleteTask(ctx context.Context, taskID string) *errs.CustomError {
	if _, customErr := e.ownedTask(taskID); customErr != nil {
		return customErr
	}

	e.clearError()

	if err := e.store.DeleteTask(ctx, taskID); err != nil {
		return e.fail(err, "delete_task", errs.ErrRemoteWrite)
	}

	e.mu.Lock()
	tasks := e.tasks[:0]
	for _, t := range e.tasks {
		if t.ID != taskID {
			tasks = append(tasks, t)
		}
	}
	e.tasks = tasks

	comments := e.comments[:0]
	for _, c := range e.comments {
		if c.TaskID != taskID {
			comments = append(comments, c)
		}
	}
	e.comments = comments

	delete(e.drafts, taskID)
	e.mu.Unlock()

	e.logger.Info().Str("task_id", taskID).Msg("Task deleted with its comments.")
	return nil
}

// RegisterUser creates a new user, appends it to the user set, and binds it
// as the active session.
func (e *Engine) RegisterUser(ctx context.Context, name, email string) (*model.User, *errs.CustomError) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, errs.NewError(errs.ErrEmptyUserFields)
	}

	e.clearError()

	created, err := e.store.CreateUser(ctx, name, email)
	if err != nil {
		if remote.IsUniqueViolation(err) {
			return nil, e.fail(err, "register_user", errs.ErrEmailTaken)
		}
		return nil, e.fail(err, "register_user", errs.ErrRemoteWrite)
	}

	e.mu.Lock()
	e.users = append(e.users, created)
	users := e.users
	e.mu.Unlock()

	if customErr := e.session.Login(created.ID, users); customErr != nil {
		return nil, customErr
	}

	e.logger.Info().Str("user_id", created.ID).Msg("User registered and signed in.")
	return &created, nil
}

// CreateComment attaches a comment to a task on behalf of the active user.
// The insert carries a snapshot of the author's current name. On success the
// confirmed row is appended and the task's draft text is cleared.
func (e *Engine) CreateComment(ctx context.Context, taskID, content string) (*model.Comment, *errs.CustomError) {
	user := e.session.Current()
	if user == nil {
		return nil, errs.NewError(errs.ErrNoActiveSession)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errs.NewError(errs.ErrEmptyCommentContent)
	}

	if !e.taskExists(taskID) {
		return nil, errs.NewError(errs.ErrTaskNotFound)
	}

	e.clearError()

	created, err := e.store.CreateComment(ctx, taskID, user.ID, user.Name, content)
	if err != nil {
		return nil, e.fail(err, "create_comment", errs.ErrRemoteWrite)
	}

	e.mu.Lock()
	e.comments = append(e.comments, created)
	delete(e.drafts, taskID)
	e.mu.Unlock()

	e.logger.Info().Str("comment_id", created.ID).Str("task_id", taskID).Msg("Comment created.")
	return &created, nil
}

// SetDraft records pending, unsaved comment text for a task.
// Drafts are ephemeral: never written remotely, cleared once their comment
// is successfully created.
func (e *Engine) SetDraft(taskID, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if text == "" {
		delete(e.drafts, taskID)
		return
	}
	e.drafts[taskID] = text
}

// ownedTask returns the task with the given id if it belongs to the active
// user. Preconditions failing here never reach the remote store.
func (e *Engine) ownedTask(taskID string) (model.Task, *errs.CustomError) {
	user := e.session.Current()
	if user == nil {
		return model.Task{}, errs.NewError(errs.ErrNoActiveSession)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, t := range e.tasks {
		if t.ID == taskID {
			if t.OwnerID != user.ID {
				return model.Task{}, errs.NewError(errs.ErrTaskNotFound)
			}
			return t, nil
		}
	}
	return model.Task{}, errs.NewError(errs.ErrTaskNotFound)
}

// taskExists reports whether the task is present in the snapshot.
func (e *Engine) taskExists(taskID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, t := range e.tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

// clearError drops the previous surfaced error before a new attempt.
func (e *Engine) clearError() {
	e.mu.Lock()
	e.lastErr = nil
	e.mu.Unlock()
}

// fail records a rejected remote write: the snapshot is left untouched and
// a single replacing error is surfaced.
func (e *Engine) fail(err error, op string, code int) *errs.CustomError {
	e.logger.Error().Err(err).Str("operation", op).Msg("Remote write rejected. Local state unchanged.")

	customErr := errs.NewError(code)

	e.mu.Lock()
	e.lastErr = customErr
	e.mu.Unlock()

	return customErr
}
