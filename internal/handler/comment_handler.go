/*
Package handler provides HTTP handler functions for task comments and draft text.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskboard/internal/pkg/req"
	"taskboard/internal/pkg/resp"
)

type CreateCommentInput struct {
	Content string `json:"content"`
}

// HandleCreateComment attaches a comment to the given task on behalf of the
// active user and clears the task's draft text.
func HandleCreateComment(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")

		var input CreateCommentInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		comment, customErr := deps.Engine.CreateComment(r.Context(), taskID, input.Content)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"comment": comment,
		})
	}
}

type SetDraftInput struct {
	Text string `json:"text"`
}

// HandleSetDraft records pending comment text for the given task.
// Drafts never touch the remote store.
func HandleSetDraft(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID := chi.URLParam(r, "id")

		var input SetDraftInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		deps.Engine.SetDraft(taskID, input.Text)

		resp.RespondSuccess(w, r, nil)
	}
}
