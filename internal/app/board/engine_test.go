package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"taskboard/internal/app/board"
	"taskboard/internal/app/model"
	"taskboard/internal/pkg/errs"
)

// signedInEngine loads the given fixtures and signs in the first seeded user.
func signedInEngine(t *testing.T, store *fakeRemote) (*board.Engine, *fakeIdentity) {
	t.Helper()

	if len(store.users) == 0 {
		store.users = []model.User{{ID: "user-a", Name: "Tanaka", Email: "t@x.com"}}
	}

	identity := &fakeIdentity{}
	engine := board.NewEngine(store, identity)
	engine.RestoreSession()

	if customErr := engine.LoadAll(context.Background()); customErr != nil {
		t.Fatalf("LoadAll error: %v", customErr)
	}
	if customErr := engine.Login(store.users[0].ID); customErr != nil {
		t.Fatalf("Login error: %v", customErr)
	}
	return engine, identity
}

func taskIDs(tasks []model.Task) map[string]bool {
	ids := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		ids[task.ID] = true
	}
	return ids
}

func TestCreateTaskAppearsInOwnerView(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)
	owner := engine.CurrentUser()

	if len(engine.TasksOf(owner.ID)) != 0 {
		t.Fatal("expected no tasks before creation")
	}

	task, customErr := engine.CreateTask(context.Background(), "buy milk")
	if customErr != nil {
		t.Fatalf("CreateTask error: %v", customErr)
	}
	if task.Completed {
		t.Fatal("new task must start incomplete")
	}
	if task.OwnerID != owner.ID {
		t.Fatalf("owner = %q, want %q", task.OwnerID, owner.ID)
	}

	tasks := engine.TasksOf(owner.ID)
	if !taskIDs(tasks)[task.ID] {
		t.Fatal("created task missing from the owner's view")
	}
	if !taskIDs(board.Incomplete(tasks))[task.ID] {
		t.Fatal("created task missing from the incomplete bucket")
	}
}

func TestCreateTaskRejectsEmptyText(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)

	for _, text := range []string{"", "   "} {
		_, customErr := engine.CreateTask(context.Background(), text)
		if customErr == nil || customErr.Code != errs.ErrEmptyTaskText {
			t.Fatalf("text %q: expected ErrEmptyTaskText, got %v", text, customErr)
		}
	}

	if store.createTaskCalls != 0 {
		t.Fatalf("store was called %d times for rejected input", store.createTaskCalls)
	}
	if engine.LastError() != nil {
		t.Fatal("rejected input must not surface a board error")
	}
}

func TestCreateTaskRequiresSession(t *testing.T) {
	store := &fakeRemote{}
	engine := board.NewEngine(store, &fakeIdentity{})
	engine.RestoreSession()
	if customErr := engine.LoadAll(context.Background()); customErr != nil {
		t.Fatalf("LoadAll error: %v", customErr)
	}

	_, customErr := engine.CreateTask(context.Background(), "orphan")
	if customErr == nil || customErr.Code != errs.ErrNoActiveSession {
		t.Fatalf("expected ErrNoActiveSession, got %v", customErr)
	}
	if store.createTaskCalls != 0 {
		t.Fatal("store must not be called without a session")
	}
}

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)

	task, customErr := engine.CreateTask(context.Background(), "flip me")
	if customErr != nil {
		t.Fatalf("CreateTask error: %v", customErr)
	}

	if customErr := engine.ToggleTask(context.Background(), task.ID); customErr != nil {
		t.Fatalf("first toggle error: %v", customErr)
	}
	if customErr := engine.ToggleTask(context.Background(), task.ID); customErr != nil {
		t.Fatalf("second toggle error: %v", customErr)
	}

	tasks := engine.TasksOf(task.OwnerID)
	if len(tasks) != 1 || tasks[0].Completed {
		t.Fatalf("double toggle did not restore the original state: %+v", tasks)
	}
}

func TestToggleUnknownTaskDoesNotReachStore(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)

	customErr := engine.ToggleTask(context.Background(), "missing")
	if customErr == nil || customErr.Code != errs.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound, got %v", customErr)
	}
	if store.setCompletedCalls != 0 {
		t.Fatal("store must not be called for an unknown task")
	}
}

func TestToggleAnotherUsersTaskIsRejected(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{
			{ID: "user-a", Name: "Tanaka"},
			{ID: "user-b", Name: "Suzuki"},
		},
		tasks: []model.Task{{ID: "task-b", Text: "not yours", OwnerID: "user-b"}},
	}
	engine, _ := signedInEngine(t, store) // signs in user-a

	customErr := engine.ToggleTask(context.Background(), "task-b")
	if customErr == nil || customErr.Code != errs.ErrTaskNotFound {
		t.Fatalf("expected ErrTaskNotFound for foreign task, got %v", customErr)
	}
	if store.setCompletedCalls != 0 {
		t.Fatal("store must not be called for a foreign task")
	}
}

func TestMoveToCurrentBucketIsIdempotent(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{{ID: "user-a", Name: "Tanaka"}},
		tasks: []model.Task{{ID: "task-1", Text: "done already", OwnerID: "user-a", Completed: true}},
	}
	engine, _ := signedInEngine(t, store)

	if customErr := engine.MoveTask(context.Background(), "task-1", true); customErr != nil {
		t.Fatalf("MoveTask error: %v", customErr)
	}

	// The write is still issued; the state is unchanged.
	if store.setCompletedCalls != 1 {
		t.Fatalf("store write calls = %d, want 1", store.setCompletedCalls)
	}
	tasks := engine.TasksOf("user-a")
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("idempotent move altered state: %+v", tasks)
	}
}

func TestDeleteTaskCascadesComments(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{{ID: "user-a", Name: "Tanaka"}},
		tasks: []model.Task{
			{ID: "task-1", Text: "doomed", OwnerID: "user-a"},
			{ID: "task-2", Text: "survivor", OwnerID: "user-a"},
		},
		comments: []model.Comment{
			{ID: "c-1", TaskID: "task-1", UserID: "user-a", Content: "one"},
			{ID: "c-2", TaskID: "task-2", UserID: "user-a", Content: "two"},
			{ID: "c-3", TaskID: "task-1", UserID: "user-a", Content: "three"},
		},
	}
	engine, _ := signedInEngine(t, store)
	engine.SetDraft("task-1", "half-typed")

	if customErr := engine.DeleteTask(context.Background(), "task-1"); customErr != nil {
		t.Fatalf("DeleteTask error: %v", customErr)
	}

	if got := engine.CommentsOf("task-1"); len(got) != 0 {
		t.Fatalf("orphaned comments left behind: %+v", got)
	}
	if got := engine.CommentsOf("task-2"); len(got) != 1 {
		t.Fatalf("unrelated comments pruned: %+v", got)
	}
	if taskIDs(engine.TasksOf("user-a"))["task-1"] {
		t.Fatal("deleted task still visible")
	}
	if engine.Draft("task-1") != "" {
		t.Fatal("draft for deleted task not pruned")
	}
}

func TestFailedWriteLeavesSnapshotUntouched(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{{ID: "user-a", Name: "Tanaka"}},
		tasks: []model.Task{{ID: "task-1", Text: "keep me", OwnerID: "user-a"}},
		comments: []model.Comment{
			{ID: "c-1", TaskID: "task-1", UserID: "user-a", Content: "still here"},
		},
	}
	engine, _ := signedInEngine(t, store)

	store.deleteTaskErr = errors.New("store rejected the write")

	customErr := engine.DeleteTask(context.Background(), "task-1")
	if customErr == nil || customErr.Code != errs.ErrRemoteWrite {
		t.Fatalf("expected ErrRemoteWrite, got %v", customErr)
	}

	if !taskIDs(engine.TasksOf("user-a"))["task-1"] {
		t.Fatal("task vanished locally despite rejected remote delete")
	}
	if len(engine.CommentsOf("task-1")) != 1 {
		t.Fatal("comments pruned despite rejected remote delete")
	}
	if lastErr := engine.LastError(); lastErr == nil || lastErr.Code != errs.ErrRemoteWrite {
		t.Fatalf("surfaced error = %v, want ErrRemoteWrite", lastErr)
	}
}

func TestNewAttemptReplacesPreviousError(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)

	store.createTaskErr = errors.New("first failure")
	if _, customErr := engine.CreateTask(context.Background(), "will fail"); customErr == nil {
		t.Fatal("expected failure")
	}
	if engine.LastError() == nil {
		t.Fatal("expected a surfaced error")
	}

	store.createTaskErr = nil
	if _, customErr := engine.CreateTask(context.Background(), "will succeed"); customErr != nil {
		t.Fatalf("CreateTask error: %v", customErr)
	}
	if engine.LastError() != nil {
		t.Fatal("successful attempt did not clear the previous error")
	}
}

func TestRegisterUserBindsSession(t *testing.T) {
	store := &fakeRemote{users: []model.User{{ID: "user-x", Name: "Existing"}}}
	identity := &fakeIdentity{}
	engine := board.NewEngine(store, identity)
	engine.RestoreSession()
	if customErr := engine.LoadAll(context.Background()); customErr != nil {
		t.Fatalf("LoadAll error: %v", customErr)
	}

	user, customErr := engine.RegisterUser(context.Background(), "Tanaka", "t@x.com")
	if customErr != nil {
		t.Fatalf("RegisterUser error: %v", customErr)
	}

	current := engine.CurrentUser()
	if current == nil || current.ID != user.ID {
		t.Fatalf("session not bound to the new user: %+v", current)
	}
	if identity.saved == nil || identity.saved.ID != user.ID {
		t.Fatal("new identity not persisted durably")
	}

	found := false
	for _, u := range engine.Users() {
		if u.ID == user.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("new user missing from the user set")
	}
}

func TestRegisterUserRejectsEmptyFields(t *testing.T) {
	store := &fakeRemote{}
	identity := &fakeIdentity{}
	engine := board.NewEngine(store, identity)

	for _, input := range [][2]string{{"", "a@b.c"}, {"Name", "  "}, {" ", ""}} {
		_, customErr := engine.RegisterUser(context.Background(), input[0], input[1])
		if customErr == nil || customErr.Code != errs.ErrEmptyUserFields {
			t.Fatalf("input %v: expected ErrEmptyUserFields, got %v", input, customErr)
		}
	}
	if store.createUserCalls != 0 {
		t.Fatal("store must not be called for rejected registration")
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	store := &fakeRemote{}
	engine := board.NewEngine(store, &fakeIdentity{})

	store.createUserErr = &pgconn.PgError{Code: "23505"}

	_, customErr := engine.RegisterUser(context.Background(), "Tanaka", "taken@x.com")
	if customErr == nil || customErr.Code != errs.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", customErr)
	}
	if engine.CurrentUser() != nil {
		t.Fatal("failed registration must not bind a session")
	}
}

func TestCreateCommentSnapshotsAuthorNameAndClearsDraft(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)

	task, customErr := engine.CreateTask(context.Background(), "talk about me")
	if customErr != nil {
		t.Fatalf("CreateTask error: %v", customErr)
	}

	engine.SetDraft(task.ID, "looks goo")
	engine.SetDraft(task.ID, "looks good")
	if got := engine.Draft(task.ID); got != "looks good" {
		t.Fatalf("draft = %q, want %q", got, "looks good")
	}

	comment, customErr := engine.CreateComment(context.Background(), task.ID, "looks good")
	if customErr != nil {
		t.Fatalf("CreateComment error: %v", customErr)
	}

	if comment.UserName != "Tanaka" {
		t.Fatalf("comment author snapshot = %q, want %q", comment.UserName, "Tanaka")
	}
	if engine.Draft(task.ID) != "" {
		t.Fatal("draft not cleared after successful comment")
	}
	if got := engine.CommentsOf(task.ID); len(got) != 1 || got[0].ID != comment.ID {
		t.Fatalf("comment missing from the snapshot: %+v", got)
	}
}

func TestCreateCommentRejectsEmptyContent(t *testing.T) {
	store := &fakeRemote{}
	engine, _ := signedInEngine(t, store)

	task, customErr := engine.CreateTask(context.Background(), "quiet task")
	if customErr != nil {
		t.Fatalf("CreateTask error: %v", customErr)
	}

	before := store.createCommentCalls
	for _, content := range []string{"", "   "} {
		_, customErr := engine.CreateComment(context.Background(), task.ID, content)
		if customErr == nil || customErr.Code != errs.ErrEmptyCommentContent {
			t.Fatalf("content %q: expected ErrEmptyCommentContent, got %v", content, customErr)
		}
	}

	if store.createCommentCalls != before {
		t.Fatal("store must not be called for empty comment content")
	}
	if len(engine.CommentsOf(task.ID)) != 0 {
		t.Fatal("snapshot changed by rejected comments")
	}
}

func TestEndToEndRegisterCreateToggle(t *testing.T) {
	store := &fakeRemote{}
	engine := board.NewEngine(store, &fakeIdentity{})
	engine.RestoreSession()
	if customErr := engine.LoadAll(context.Background()); customErr != nil {
		t.Fatalf("LoadAll error: %v", customErr)
	}

	user, customErr := engine.RegisterUser(context.Background(), "Tanaka", "t@x.com")
	if customErr != nil {
		t.Fatalf("RegisterUser error: %v", customErr)
	}
	if current := engine.CurrentUser(); current == nil || current.ID != user.ID {
		t.Fatal("session did not become the registered user")
	}

	task, customErr := engine.CreateTask(context.Background(), "buy milk")
	if customErr != nil {
		t.Fatalf("CreateTask error: %v", customErr)
	}

	tasks := engine.TasksOf(user.ID)
	if !taskIDs(board.Incomplete(tasks))[task.ID] {
		t.Fatal("new task not in the incomplete bucket")
	}
	if task.Completed {
		t.Fatal("new task must start incomplete")
	}

	if customErr := engine.ToggleTask(context.Background(), task.ID); customErr != nil {
		t.Fatalf("ToggleTask error: %v", customErr)
	}

	tasks = engine.TasksOf(user.ID)
	if !taskIDs(board.Complete(tasks))[task.ID] {
		t.Fatal("toggled task not in the complete bucket")
	}
	if taskIDs(board.Incomplete(tasks))[task.ID] {
		t.Fatal("toggled task still in the incomplete bucket")
	}
}
