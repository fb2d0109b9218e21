package service

import (
	"context"
	"fmt"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

// TodoService handles todo CRUD with validation. Every operation is scoped
// to the owning user; a foreign todo id behaves like a missing one.
type TodoService struct {
	todos domain.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos domain.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// TodoUpdate carries a partial update; nil fields are left unchanged.
type TodoUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TodoStatus
	Priority    *domain.TodoPriority
	DueDate     *time.Time
	ClearDue    bool
}

// Create creates a new todo for the given owner.
func (s *TodoService) Create(ctx context.Context, todo *domain.Todo) error {
	if err := validateTodo(todo); err != nil {
		return err
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// GetByID returns a single todo owned by ownerID.
func (s *TodoService) GetByID(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	return s.todos.GetByID(ctx, id, ownerID)
}

// ListByOwner returns the owner's todos, optionally filtered.
func (s *TodoService) ListByOwner(ctx context.Context, ownerID int64, filter domain.TodoFilter) ([]domain.Todo, error) {
	if filter.Status != "" && !domain.ValidTodoStatus(filter.Status) {
		return nil, fmt.Errorf("%w: invalid status filter %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.Priority != "" && !domain.ValidTodoPriority(filter.Priority) {
		return nil, fmt.Errorf("%w: invalid priority filter %q", domain.ErrInvalidInput, filter.Priority)
	}
	return s.todos.ListByOwner(ctx, ownerID, filter)
}

// Update applies a partial update to an owned todo.
func (s *TodoService) Update(ctx context.Context, id, ownerID int64, update TodoUpdate) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Description != nil {
		todo.Description = *update.Description
	}
	if update.Status != nil {
		todo.Status = *update.Status
	}
	if update.Priority != nil {
		todo.Priority = *update.Priority
	}
	if update.ClearDue {
		todo.DueDate = nil
	} else if update.DueDate != nil {
		todo.DueDate = update.DueDate
	}

	if err := validateTodo(todo); err != nil {
		return nil, err
	}
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// Delete removes an owned todo.
func (s *TodoService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.todos.Delete(ctx, id, ownerID)
}

func validateTodo(todo *domain.Todo) error {
	if todo.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(todo.Title) > 200 {
		return fmt.Errorf("%w: title must be at most 200 characters", domain.ErrInvalidInput)
	}
	if todo.Status != "" && !domain.ValidTodoStatus(todo.Status) {
		return fmt.Errorf("%w: status must be pending, in_progress, or completed", domain.ErrInvalidInput)
	}
	if todo.Priority != "" && !domain.ValidTodoPriority(todo.Priority) {
		return fmt.Errorf("%w: priority must be low, medium, or high", domain.ErrInvalidInput)
	}
	return nil
}
