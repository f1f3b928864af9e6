/*
Package handler provides HTTP handler functions for task operations and the board view.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/app/board"
	"taskboard/internal/app/model"
	"taskboard/internal/pkg/errs"
	"taskboard/internal/pkg/req"
	"taskboard/internal/pkg/resp"
)

// TaskView is a task decorated with its comment thread and pending draft
// text, the shape the presentation layer renders in a bucket column.
type TaskView struct {
	model.Task
	Comments []model.Comment `json:"comments"`
	Draft    string          `json:"draft,omitempty"`
}

// HandleGetBoard returns the active user's board: the incomplete and
// complete buckets of their own tasks, each task carrying its comments and
// draft, plus the current surfaced error if one exists.
func HandleGetBoard(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := deps.Engine.CurrentUser()
		if user == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrNoActiveSession))
			return
		}

		tasks := deps.Engine.TasksOf(user.ID)

		data := map[string]any{
			"user":       user,
			"incomplete": taskViews(deps.Engine, board.Incomplete(tasks)),
			"complete":   taskViews(deps.Engine, board.Complete(tasks)),
		}

		if lastErr := deps.Engine.LastError(); lastErr != nil {
			data["error"] = lastErr.Message
		}

		resp.RespondSuccess(w, r, data)
	}
}

// taskViews decorates each task with its comments and draft text.
func taskViews(engine *board.Engine, tasks []model.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{
			Task:     t,
			Comments: engine.CommentsOf(t.ID),
			Draft:    engine.Draft(t.ID),
		})
	}
	return views
}

type CreateTaskInput struct {
	Text string `json:"text"`
}

// HandleCreateTask creates a task owned by the active user.
func HandleCreateTask(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CreateTaskInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		task, customErr := deps.Engine.CreateTask(r.Context(), input.Text)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"task": task,
		})
	}
}

// HandleToggleTask flips the completed flag of the given task.
func HandleToggleTask(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")

		if customErr := deps.Engine.ToggleTask(r.Context(), taskID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

type MoveTaskInput struct {
	Completed bool `json:"completed"`
}

// HandleMoveTask sets an explicit bucket for the given task, used by the
// drag-and-drop transition. Dropping a task onto its current bucket succeeds.
func HandleMoveTask(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")

		var input MoveTaskInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := deps.Engine.MoveTask(r.Context(), taskID, input.Completed); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleDeleteTask deletes the given task together with its comments.
func HandleDeleteTask(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")

		if customErr := deps.Engine.DeleteTask(r.Context(), taskID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
