package board_test

import (
	"context"
	"testing"

	"taskboard/internal/app/board"
	"taskboard/internal/app/model"
)

func loadedEngine(t *testing.T, store *fakeRemote) *board.Engine {
	t.Helper()

	engine := board.NewEngine(store, &fakeIdentity{})
	engine.RestoreSession()
	if customErr := engine.LoadAll(context.Background()); customErr != nil {
		t.Fatalf("LoadAll error: %v", customErr)
	}
	return engine
}

func TestTasksOfScopesByOwner(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{{ID: "user-a"}, {ID: "user-b"}},
		tasks: []model.Task{
			{ID: "task-1", Text: "mine", OwnerID: "user-a"},
			{ID: "task-2", Text: "theirs", OwnerID: "user-b"},
			{ID: "task-3", Text: "also mine", OwnerID: "user-a"},
		},
	}
	engine := loadedEngine(t, store)

	tasks := engine.TasksOf("user-a")
	if len(tasks) != 2 {
		t.Fatalf("tasks for user-a = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.OwnerID != "user-a" {
			t.Fatalf("foreign task leaked into the view: %+v", task)
		}
	}
}

func TestBucketsPartitionByCompleted(t *testing.T) {
	tasks := []model.Task{
		{ID: "task-1", Completed: false},
		{ID: "task-2", Completed: true},
		{ID: "task-3", Completed: false},
	}

	incomplete := board.Incomplete(tasks)
	complete := board.Complete(tasks)

	if len(incomplete) != 2 || len(complete) != 1 {
		t.Fatalf("partition sizes = %d/%d, want 2/1", len(incomplete), len(complete))
	}
	if len(incomplete)+len(complete) != len(tasks) {
		t.Fatal("buckets do not partition the task list")
	}
	if incomplete[0].ID != "task-1" || incomplete[1].ID != "task-3" {
		t.Fatalf("incomplete bucket out of order: %+v", incomplete)
	}
}

func TestCommentsOfPreservesCreationOrder(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{{ID: "user-a"}},
		tasks: []model.Task{{ID: "task-1", Text: "discussed", OwnerID: "user-a"}},
		comments: []model.Comment{
			{ID: "c-1", TaskID: "task-1", Content: "first"},
			{ID: "c-2", TaskID: "other", Content: "unrelated"},
			{ID: "c-3", TaskID: "task-1", Content: "second"},
		},
	}
	engine := loadedEngine(t, store)

	comments := engine.CommentsOf("task-1")
	if len(comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(comments))
	}
	if comments[0].Content != "first" || comments[1].Content != "second" {
		t.Fatalf("comments out of creation order: %+v", comments)
	}
}

func TestViewsReturnCopies(t *testing.T) {
	store := &fakeRemote{
		users: []model.User{{ID: "user-a", Name: "Tanaka"}},
		tasks: []model.Task{{ID: "task-1", Text: "original", OwnerID: "user-a"}},
	}
	engine := loadedEngine(t, store)

	tasks := engine.TasksOf("user-a")
	tasks[0].Text = "mutated"

	if got := engine.TasksOf("user-a"); got[0].Text != "original" {
		t.Fatal("view mutation leaked into the snapshot")
	}
}
