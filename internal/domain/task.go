package domain

import (
	"context"
	"time"
)

// Status is the board column a task sits in. Transitions are unconstrained:
// any status may move to any other in one step.
type Status string

const (
	StatusTodo        Status = "To-Do"
	StatusInProgress  Status = "In Progress"
	StatusUnderReview Status = "Under Review"
	StatusFinished    Status = "Finished"
)

// Statuses lists all board columns in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusUnderReview, StatusFinished}

// Valid reports whether s is one of the known board columns.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusUnderReview, StatusFinished:
		return true
	}
	return false
}

// Priority is a label on a task; it carries no scheduling semantics.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityUrgent Priority = "Urgent"
)

// Valid reports whether p is a known priority. The empty priority is valid:
// the field is optional.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user. Only the owner may read
// or mutate it.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	Deadline    *time.Time
	CreatedAt   time.Time
}

// TaskPatch carries a sparse update. Nil means the field was absent from the
// request; a non-nil pointer to a zero value is an explicit assignment.
// Deadline can be set but not cleared through a patch.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Deadline    *time.Time
}

// TaskRepository defines persistence operations for tasks. Ownership is
// enforced by the service layer; the repository works on raw ids.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	ListByUser(ctx context.Context, userID int64) ([]Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id int64) error
}
