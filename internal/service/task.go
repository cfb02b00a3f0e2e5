package service

import (
	"context"
	"fmt"

	"github.com/vv-omkareshwar/Task-Management-App/internal/domain"
)

// TaskService validates and applies task mutations, enforcing that only the
// owning user can read or change a task. The ownership check here is the
// sole isolation boundary: all users share one task store.
type TaskService struct {
	tasks domain.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// List returns the caller's tasks in insertion order.
func (s *TaskService) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

// Create validates and persists a new task owned by userID. Status defaults
// to To-Do when unset.
func (s *TaskService) Create(ctx context.Context, userID int64, task *domain.Task) error {
	task.UserID = userID
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}

	if err := validateTask(task); err != nil {
		return err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update applies a sparse patch to a task after the ownership check. Absent
// patch fields leave the stored value untouched. Any status may move to any
// other status; the board enforces no workflow.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		task.Deadline = patch.Deadline
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete removes a task after the ownership check.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return domain.ErrForbidden
	}

	return s.tasks.Delete(ctx, taskID)
}

func validateTask(task *domain.Task) error {
	if task.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !task.Status.Valid() {
		return fmt.Errorf("%w: status must be one of To-Do, In Progress, Under Review, Finished", domain.ErrInvalidInput)
	}
	if !task.Priority.Valid() {
		return fmt.Errorf("%w: priority must be one of Low, Medium, Urgent", domain.ErrInvalidInput)
	}
	return nil
}
