package board_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/app/model"
)

// fakeRemote is an in-memory stand-in for the remote store. It records call
// counts so tests can assert that rejected actions never reach the store,
// and it can be told to fail any individual operation.
type fakeRemote struct {
	mu sync.Mutex

	users    []model.User
	tasks    []model.Task
	comments []model.Comment

	listUsersErr     error
	listTasksErr     error
	listCommentsErr  error
	createUserErr    error
	createTaskErr    error
	setCompletedErr  error
	deleteTaskErr    error
	createCommentErr error

	createUserCalls    int
	createTaskCalls    int
	setCompletedCalls  int
	deleteTaskCalls    int
	createCommentCalls int

	seq int
	now time.Time
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) nextTime() time.Time {
	if f.now.IsZero() {
		f.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeRemote) ListUsers(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	out := make([]model.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeRemote) ListTasks(ctx context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listTasksErr != nil {
		return nil, f.listTasksErr
	}
	out := make([]model.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeRemote) ListComments(ctx context.Context) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listCommentsErr != nil {
		return nil, f.listCommentsErr
	}
	out := make([]model.Comment, len(f.comments))
	copy(out, f.comments)
	return out, nil
}

func (f *fakeRemote) CreateUser(ctx context.Context, name, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createUserCalls++
	if f.createUserErr != nil {
		return model.User{}, f.createUserErr
	}

	u := model.User{ID: f.nextID("user"), Name: name, Email: email}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeRemote) CreateTask(ctx context.Context, text, ownerID string) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createTaskCalls++
	if f.createTaskErr != nil {
		return model.Task{}, f.createTaskErr
	}

	t := model.Task{ID: f.nextID("task"), Text: text, OwnerID: ownerID, CreatedAt: f.nextTime()}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeRemote) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.setCompletedCalls++
	if f.setCompletedErr != nil {
		return f.setCompletedErr
	}

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Completed = completed
			return nil
		}
	}
	return fmt.Errorf("no task with id %s", id)
}

func (f *fakeRemote) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteTaskCalls++
	if f.deleteTaskErr != nil {
		return f.deleteTaskErr
	}

	tasks := f.tasks[:0]
	found := false
	for _, t := range f.tasks {
		if t.ID == id {
			found = true
			continue
		}
		tasks = append(tasks, t)
	}
	if !found {
		return fmt.Errorf("no task with id %s", id)
	}
	f.tasks = tasks

	// The remote store owns the cascade.
	comments := f.comments[:0]
	for _, c := range f.comments {
		if c.TaskID != id {
			comments = append(comments, c)
		}
	}
	f.comments = comments
	return nil
}

func (f *fakeRemote) CreateComment(ctx context.Context, taskID, userID, userName, content string) (model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.createCommentCalls++
	if f.createCommentErr != nil {
		return model.Comment{}, f.createCommentErr
	}

	c := model.Comment{
		ID:        f.nextID("comment"),
		TaskID:    taskID,
		UserID:    userID,
		UserName:  userName,
		Content:   content,
		CreatedAt: f.nextTime(),
	}
	f.comments = append(f.comments, c)
	return c, nil
}

// fakeIdentity is an in-memory durable identity store.
type fakeIdentity struct {
	saved *model.User

	getErr error
	setErr error

	setCalls   int
	clearCalls int
}

func (f *fakeIdentity) Get() (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.saved == nil {
		return nil, nil
	}
	u := *f.saved
	return &u, nil
}

func (f *fakeIdentity) Set(u model.User) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.saved = &u
	return nil
}

func (f *fakeIdentity) Clear() error {
	f.clearCalls++
	f.saved = nil
	return nil
}
