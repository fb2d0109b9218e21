package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered user of the application.
// TotalCompletedCount is the lifetime number of harvested todos; it is
// only ever incremented inside the harvest transaction.
type User struct {
	ID                  int64
	Email               string
	Username            string
	PasswordHash        string
	Role                Role
	IsActive            bool
	IsVerified          bool
	TotalCompletedCount int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	IsActive *bool
	Role     *Role
	Offset   int
	Limit    int
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByIdentifier resolves either a username or an email address.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateRole(ctx context.Context, id int64, role Role) error
	UpdateStatus(ctx context.Context, id int64, isActive bool) error
	MarkVerified(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, isActive bool) (int, error)
	CountByRole(ctx context.Context, role Role) (int, error)
}
