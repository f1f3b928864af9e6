package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/internal/app/model"
)

// PostgresStore implements the Store contract on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an initialized connection pool in a Store implementation.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// ListUsers returns all registered users ordered by id.
func (s *PostgresStore) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListTasks returns all tasks ordered by creation time.
func (s *PostgresStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, text, completed, user_id, created_at
		FROM tasks
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListComments returns all comments ordered by creation time.
func (s *PostgresStore) ListComments(ctx context.Context) ([]model.Comment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, task_id, user_id, user_name, content, created_at
		FROM comments
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.UserID, &c.UserName, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// CreateUser inserts a new user row and returns it with its assigned id.
func (s *PostgresStore) CreateUser(ctx context.Context, name, email string) (model.User, error) {
	u := model.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email)
		VALUES ($1, $2, $3)`,
		u.ID, u.Name, u.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// CreateTask inserts a new incomplete task row and returns it with its
// assigned id and creation timestamp.
func (s *PostgresStore) CreateTask(ctx context.Context, text, ownerID string) (model.Task, error) {
	t := model.Task{
		ID:      uuid.New().String(),
		Text:    text,
		OwnerID: ownerID,
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, text, completed, user_id)
		VALUES ($1, $2, FALSE, $3)
		RETURNING created_at`,
		t.ID, t.Text, t.OwnerID).Scan(&t.CreatedAt)
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// SetTaskCompleted updates the completed flag of the given task.
func (s *PostgresStore) SetTaskCompleted(ctx context.Context, id string, completed bool) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks
		SET completed = $2
		WHERE id = $1`,
		id, completed)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update task: no row with id %s", id)
	}
	return nil
}

// DeleteTask removes the given task row. The schema cascades the delete to
// all comments referencing the task.
func (s *PostgresStore) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete task: no row with id %s", id)
	}
	return nil
}

// CreateComment inserts a new comment row carrying a snapshot of the author's
// current name and returns it with its assigned id and creation timestamp.
func (s *PostgresStore) CreateComment(ctx context.Context, taskID, userID, userName, content string) (model.Comment, error) {
	c := model.Comment{
		ID:       uuid.New().String(),
		TaskID:   taskID,
		UserID:   userID,
		UserName: userName,
		Content:  content,
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO comments (id, task_id, user_id, user_name, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		c.ID, c.TaskID, c.UserID, c.UserName, c.Content).Scan(&c.CreatedAt)
	if err != nil {
		return model.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}
