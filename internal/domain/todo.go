package domain

import (
	"context"
	"time"
)

type TodoStatus string

const (
	TodoStatusPending    TodoStatus = "pending"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusCompleted  TodoStatus = "completed"
)

type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// Todo is a single task owned by a user. Completed todos are removed
// permanently when the owner harvests them.
type Todo struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	Status      TodoStatus
	Priority    TodoPriority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoFilter narrows todo listings. Zero values mean "no filter".
type TodoFilter struct {
	Status    TodoStatus
	Priority  TodoPriority
	DueBefore *time.Time
	Offset    int
	Limit     int
}

// TodoRepository defines persistence operations for todos. All reads and
// writes except ListAll are scoped to a single owner.
type TodoRepository interface {
	Create(ctx context.Context, todo *Todo) error
	GetByID(ctx context.Context, id, ownerID int64) (*Todo, error)
	ListByOwner(ctx context.Context, ownerID int64, filter TodoFilter) ([]Todo, error)
	Update(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id, ownerID int64) error
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
	// ListAll spans all users; admin listings only.
	ListAll(ctx context.Context, filter TodoFilter) ([]Todo, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status TodoStatus) (int, error)
}

// ValidTodoStatus reports whether s is one of the known statuses.
func ValidTodoStatus(s TodoStatus) bool {
	switch s {
	case TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted:
		return true
	}
	return false
}

// ValidTodoPriority reports whether p is one of the known priorities.
func ValidTodoPriority(p TodoPriority) bool {
	switch p {
	case TodoPriorityLow, TodoPriorityMedium, TodoPriorityHigh:
		return true
	}
	return false
}
