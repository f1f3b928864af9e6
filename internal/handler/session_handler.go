/*
Package handler provides HTTP handler functions for session management and user registration.

Signing in is selection from the open user list, not credentialed authentication;
the session endpoints simply bind and release the active user.
*/
package handler

import (
	"net/http"

	"taskboard/internal/pkg/errs"
	"taskboard/internal/pkg/req"
	"taskboard/internal/pkg/resp"
)

// HandleGetSession returns the active user and the session lifecycle state.
func HandleGetSession(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := deps.Engine.CurrentUser()

		resp.RespondSuccess(w, r, map[string]any{
			"state": deps.Engine.SessionState().String(),
			"user":  user,
		})
	}
}

type LoginInput struct {
	UserID string `json:"userId"`
}

// HandleLogin binds the session to a user selected from the loaded user list.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.UserID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if customErr := deps.Engine.Login(input.UserID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": deps.Engine.CurrentUser(),
		})
	}
}

// HandleLogout clears the session and its durable identity copy.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Engine.Logout()

		resp.RespondSuccess(w, r, nil)
	}
}

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleRegister creates a new user and signs it in as the active session.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		user, customErr := deps.Engine.RegisterUser(r.Context(), input.Name, input.Email)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": user,
		})
	}
}

// HandleListUsers returns the loaded user set for the sign-in selection list.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"users": deps.Engine.Users(),
		})
	}
}
