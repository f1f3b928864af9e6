/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Task, Comment, and Registration Business Logic Errors
	ErrEmptyTaskText:       {Code: ErrEmptyTaskText, Message: "Task text cannot be empty."},
	ErrTaskNotFound:        {Code: ErrTaskNotFound, Message: "Task not found."},
	ErrEmptyCommentContent: {Code: ErrEmptyCommentContent, Message: "Comment cannot be empty."},
	ErrEmptyUserFields:     {Code: ErrEmptyUserFields, Message: "Name and email are required."},
	ErrEmailTaken:          {Code: ErrEmailTaken, Message: "This email is already registered."},
	ErrUserNotFound:        {Code: ErrUserNotFound, Message: "User not found."},

	// 3xxx: Session Errors
	ErrNoActiveSession: {Code: ErrNoActiveSession, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx: Remote Store Synchronization Errors
	ErrLoadFailed:  {Code: ErrLoadFailed, Message: "Failed to load board data: %s.", Status: http.StatusServiceUnavailable},
	ErrRemoteWrite: {Code: ErrRemoteWrite, Message: "Failed to save your change. Please try again."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
