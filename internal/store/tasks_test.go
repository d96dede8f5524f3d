package store

import (
	"context"
	"testing"

	"assetdesk/internal/db"
)

func TestTaskLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	task, err := CreateTask(ctx, database, "Replace aging switch", 1, "Admin One")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Title != "Replace aging switch" {
		t.Errorf("unexpected title: %q", task.Title)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.CreatedBy != 1 || task.CreatedByName != "Admin One" {
		t.Errorf("unexpected creator stamp: %d %q", task.CreatedBy, task.CreatedByName)
	}

	if err := SetTaskCompleted(ctx, database, task.ID, true); err != nil {
		t.Fatalf("SetTaskCompleted: %v", err)
	}
	got, _ := GetTask(ctx, database, task.ID)
	if !got.Completed {
		t.Error("expected task to be completed")
	}

	if err := SetTaskCompleted(ctx, database, task.ID, false); err != nil {
		t.Fatalf("SetTaskCompleted: %v", err)
	}
	got, _ = GetTask(ctx, database, task.ID)
	if got.Completed {
		t.Error("expected task to be reopened")
	}

	if err := DeleteTask(ctx, database, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	gone, _ := GetTask(ctx, database, task.ID)
	if gone != nil {
		t.Error("expected task to be deleted")
	}
}

func TestListTasksNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := CreateTask(ctx, database, title, 1, "Admin"); err != nil {
			t.Fatalf("CreateTask %q: %v", title, err)
		}
	}

	tasks, err := ListTasks(ctx, database)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "third" || tasks[2].Title != "first" {
		t.Errorf("expected newest first, got %q .. %q", tasks[0].Title, tasks[2].Title)
	}
}
