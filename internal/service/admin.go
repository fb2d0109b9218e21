package service

import (
	"context"
	"fmt"

	"github.com/msomdec/toadoo/internal/domain"
)

// AdminService handles user and system management for admin accounts.
// Role checks happen in the HTTP layer; the self-modification guards live
// here because they are business rules, not transport concerns.
type AdminService struct {
	users domain.UserRepository
	todos domain.TodoRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(users domain.UserRepository, todos domain.TodoRepository) *AdminService {
	return &AdminService{users: users, todos: todos}
}

// SystemStats aggregates counts for the admin dashboard.
type SystemStats struct {
	TotalUsers      int
	ActiveUsers     int
	InactiveUsers   int
	AdminUsers      int
	TotalTodos      int
	CompletedTodos  int
	PendingTodos    int
	InProgressTodos int
}

// ListUsers returns users matching the filter.
func (s *AdminService) ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	return s.users.List(ctx, filter)
}

// GetUser returns a single user by id.
func (s *AdminService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateRole promotes or demotes a user. Admins cannot change their own role.
func (s *AdminService) UpdateRole(ctx context.Context, adminID, userID int64, role domain.Role) (*domain.User, error) {
	if adminID == userID {
		return nil, fmt.Errorf("%w: cannot change your own role", domain.ErrInvalidInput)
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: role must be user or admin", domain.ErrInvalidInput)
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateStatus activates or deactivates a user account. Admins cannot
// deactivate themselves.
func (s *AdminService) UpdateStatus(ctx context.Context, adminID, userID int64, isActive bool) (*domain.User, error) {
	if adminID == userID {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", domain.ErrInvalidInput)
	}

	if err := s.users.UpdateStatus(ctx, userID, isActive); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// DeleteUser removes a user and everything owned by them. Admins cannot
// delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID int64) error {
	if adminID == userID {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrInvalidInput)
	}
	return s.users.Delete(ctx, userID)
}

// ListTodos lists todos across all users, or for one user when userID > 0.
func (s *AdminService) ListTodos(ctx context.Context, userID int64, filter domain.TodoFilter) ([]domain.Todo, error) {
	if filter.Status != "" && !domain.ValidTodoStatus(filter.Status) {
		return nil, fmt.Errorf("%w: invalid status filter %q", domain.ErrInvalidInput, filter.Status)
	}
	if userID > 0 {
		return s.todos.ListByOwner(ctx, userID, filter)
	}
	return s.todos.ListAll(ctx, filter)
}

// Stats collects system-wide user and todo counts.
func (s *AdminService) Stats(ctx context.Context) (*SystemStats, error) {
	stats := &SystemStats{}
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.users.CountByStatus(ctx, true); err != nil {
		return nil, err
	}
	stats.InactiveUsers = stats.TotalUsers - stats.ActiveUsers
	if stats.AdminUsers, err = s.users.CountByRole(ctx, domain.RoleAdmin); err != nil {
		return nil, err
	}

	if stats.TotalTodos, err = s.todos.Count(ctx); err != nil {
		return nil, err
	}
	if stats.CompletedTodos, err = s.todos.CountByStatus(ctx, domain.TodoStatusCompleted); err != nil {
		return nil, err
	}
	if stats.PendingTodos, err = s.todos.CountByStatus(ctx, domain.TodoStatusPending); err != nil {
		return nil, err
	}
	if stats.InProgressTodos, err = s.todos.CountByStatus(ctx, domain.TodoStatusInProgress); err != nil {
		return nil, err
	}

	return stats, nil
}
