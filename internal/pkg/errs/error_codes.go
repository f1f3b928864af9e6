/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the application and in responses sent to the presentation layer.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Task, Comment, and Registration Business Logic Errors
const (
	// ErrEmptyTaskText indicates that a task was submitted with empty or whitespace-only text.
	ErrEmptyTaskText = 2101

	// ErrTaskNotFound indicates that the referenced task is not present in the current view.
	ErrTaskNotFound = 2102

	// ErrEmptyCommentContent indicates that a comment was submitted with empty or whitespace-only content.
	ErrEmptyCommentContent = 2201

	// ErrEmptyUserFields indicates that registration was attempted with an empty name or email.
	ErrEmptyUserFields = 2301

	// ErrEmailTaken indicates that the registration email is already in use.
	ErrEmailTaken = 2302

	// ErrUserNotFound indicates that the referenced user does not exist in the loaded user set.
	ErrUserNotFound = 2303
)

// 3xxx: Session Errors
const (
	// ErrNoActiveSession indicates that an operation requiring an active user was attempted while signed out.
	ErrNoActiveSession = 3001
)

// 4xxx: Remote Store Synchronization Errors
const (
	// ErrLoadFailed indicates that the initial load of remote records failed.
	ErrLoadFailed = 4001

	// ErrRemoteWrite indicates that the remote store rejected a create, update, or delete.
	ErrRemoteWrite = 4002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)
