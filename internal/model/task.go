package model

import (
	"errors"
	"time"
)

// Task is an entry on the shared admin task list.
type Task struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Completed     bool      `json:"completed"`
	CreatedBy     int64     `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Validate returns the first violation found.
func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("Task title is required")
	}
	return nil
}
