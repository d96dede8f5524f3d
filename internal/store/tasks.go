package store

import (
	"context"
	"database/sql"
	"fmt"

	"assetdesk/internal/model"
)

// CreateTask creates a task stamped with the acting admin's identity.
func CreateTask(ctx context.Context, db *sql.DB, title string, adminID int64, adminName string) (*model.Task, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO tasks (title, created_by, created_by_name) VALUES (?, ?, ?)`,
		title, adminID, adminName,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting task id: %w", err)
	}

	return GetTask(ctx, db, id)
}

// GetTask returns a task by ID.
func GetTask(ctx context.Context, db *sql.DB, id int64) (*model.Task, error) {
	t := &model.Task{}
	err := db.QueryRowContext(ctx,
		`SELECT id, title, completed, created_by, created_by_name, created_at, updated_at
		 FROM tasks WHERE id = ?`, id,
	).Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedBy, &t.CreatedByName, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// ListTasks returns all tasks, newest first.
func ListTasks(ctx context.Context, db *sql.DB) ([]model.Task, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, completed, created_by, created_by_name, created_at, updated_at
		 FROM tasks ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedBy, &t.CreatedByName,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SetTaskCompleted sets a task's completed flag.
func SetTaskCompleted(ctx context.Context, db *sql.DB, id int64, completed bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE tasks SET completed = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		completed, id,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// DeleteTask removes a task.
func DeleteTask(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}
