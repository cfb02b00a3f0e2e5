package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
	"github.com/vv-omkareshwar/Task-Management-App/internal/repository/sqlite"
	"github.com/vv-omkareshwar/Task-Management-App/internal/service"
)

func newTestTaskService(t *testing.T) (*service.TaskService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewTaskService(db.Tasks()), db
}

func createOwner(t *testing.T, db *sqlite.DB, email string) int64 {
	t.Helper()
	user := &domain.User{Name: "Owner", Email: email, PasswordHash: "hash"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func strPtr(s string) *string                   { return &s }
func statusPtr(s domain.Status) *domain.Status  { return &s }
func prioPtr(p domain.Priority) *domain.Priority { return &p }

func TestTaskService_Create_Defaults(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "defaults@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Write spec"}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.Status != domain.StatusTodo {
		t.Fatalf("expected default status To-Do, got %q", task.Status)
	}
	if task.UserID != owner {
		t.Fatalf("expected owner %d, got %d", owner, task.UserID)
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "validate@example.com")
	ctx := context.Background()

	tests := []struct {
		name string
		task domain.Task
	}{
		{"empty title", domain.Task{Title: "", Status: domain.StatusTodo}},
		{"unknown status", domain.Task{Title: "x", Status: "Someday"}},
		{"unknown priority", domain.Task{Title: "x", Status: domain.StatusTodo, Priority: "Critical"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := tc.task
			if err := tasks.Create(ctx, owner, &task); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestTaskService_CreateThenList_RoundTrip(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "roundtrip@example.com")
	ctx := context.Background()

	deadline := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	task := &domain.Task{
		Title:       "Ship it",
		Description: "Final review",
		Status:      domain.StatusInProgress,
		Priority:    domain.PriorityMedium,
		Deadline:    &deadline,
	}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	listed, err := tasks.List(ctx, owner)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 task, got %d", len(listed))
	}

	got := listed[0]
	if got.ID != task.ID || got.Title != "Ship it" || got.Description != "Final review" ||
		got.Status != domain.StatusInProgress || got.Priority != domain.PriorityMedium {
		t.Fatalf("listed task does not match created task: %+v", got)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Fatalf("expected deadline %v, got %v", deadline, got.Deadline)
	}
}

func TestTaskService_Update_SparsePatch(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "patch@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Original", Description: "Keep me", Priority: domain.PriorityLow}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Only status present: everything else stays.
	updated, err := tasks.Update(ctx, owner, task.ID, domain.TaskPatch{Status: statusPtr(domain.StatusFinished)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.StatusFinished {
		t.Fatalf("expected status Finished, got %q", updated.Status)
	}
	if updated.Title != "Original" || updated.Description != "Keep me" || updated.Priority != domain.PriorityLow {
		t.Fatalf("absent patch fields must stay untouched: %+v", updated)
	}
}

func TestTaskService_Update_ExplicitEmptyDescription(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "empty@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Has description", Description: "Delete me"}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// An explicit empty string is an assignment, not an omission.
	updated, err := tasks.Update(ctx, owner, task.ID, domain.TaskPatch{Description: strPtr("")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != "" {
		t.Fatalf("expected description cleared, got %q", updated.Description)
	}
}

func TestTaskService_Update_ExplicitEmptyTitleRejected(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "emptytitle@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Keep title"}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := tasks.Update(ctx, owner, task.ID, domain.TaskPatch{Title: strPtr("")})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty title, got %v", err)
	}
}

func TestTaskService_Update_Idempotent(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "idem@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Repeat"}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	patch := domain.TaskPatch{Status: statusPtr(domain.StatusFinished)}
	first, err := tasks.Update(ctx, owner, task.ID, patch)
	if err != nil {
		t.Fatalf("first Update: %v", err)
	}
	second, err := tasks.Update(ctx, owner, task.ID, patch)
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}

	if first.Status != second.Status || second.Status != domain.StatusFinished {
		t.Fatalf("repeated update must converge on the same state, got %q then %q", first.Status, second.Status)
	}
}

func TestTaskService_Update_NotFound(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "nf@example.com")

	_, err := tasks.Update(context.Background(), owner, 99999, domain.TaskPatch{Title: strPtr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskService_CrossUserIsolation(t *testing.T) {
	tasks, db := newTestTaskService(t)
	alice := createOwner(t, db, "alice-iso@example.com")
	bob := createOwner(t, db, "bob-iso@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Alice's task"}
	if err := tasks.Create(ctx, alice, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Bob holds a perfectly valid identity but does not own the task.
	if _, err := tasks.Update(ctx, bob, task.ID, domain.TaskPatch{Status: statusPtr(domain.StatusFinished)}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on update, got %v", err)
	}
	if err := tasks.Delete(ctx, bob, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}

	// Bob's list never contains Alice's task.
	bobTasks, err := tasks.List(ctx, bob)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bobTasks) != 0 {
		t.Fatalf("expected bob to see no tasks, got %d", len(bobTasks))
	}

	// The task is untouched.
	aliceTasks, err := tasks.List(ctx, alice)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(aliceTasks) != 1 || aliceTasks[0].Status != domain.StatusTodo {
		t.Fatalf("expected alice's task unchanged, got %+v", aliceTasks)
	}
}

func TestTaskService_Delete(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "del@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Doomed"}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := tasks.Delete(ctx, owner, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := tasks.Delete(ctx, owner, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestTaskService_StatusTransitionsUnconstrained(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "transitions@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Mover", Status: domain.StatusFinished}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Finished straight back to To-Do: no workflow guards.
	updated, err := tasks.Update(ctx, owner, task.ID, domain.TaskPatch{Status: statusPtr(domain.StatusTodo)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.StatusTodo {
		t.Fatalf("expected status To-Do, got %q", updated.Status)
	}
}

func TestTaskService_PriorityPatch(t *testing.T) {
	tasks, db := newTestTaskService(t)
	owner := createOwner(t, db, "prio@example.com")
	ctx := context.Background()

	task := &domain.Task{Title: "Prioritize"}
	if err := tasks.Create(ctx, owner, task); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := tasks.Update(ctx, owner, task.ID, domain.TaskPatch{Priority: prioPtr(domain.PriorityUrgent)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Priority != domain.PriorityUrgent {
		t.Fatalf("expected priority Urgent, got %q", updated.Priority)
	}
}
