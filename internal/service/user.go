package service

import (
	"context"
	"fmt"

	"github.com/msomdec/toadoo/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles self-service profile operations.
type UserService struct {
	users      domain.UserRepository
	tokens     domain.TokenRepository
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository, tokens domain.TokenRepository, bcryptCost int) *UserService {
	return &UserService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// UpdateProfile changes the user's email and/or username. Empty fields are
// left unchanged; uniqueness is enforced by the store.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, email, username string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if username != "" {
		if len(username) < 3 || len(username) > 50 {
			return nil, fmt.Errorf("%w: username must be 3-50 characters", domain.ErrInvalidInput)
		}
		user.Username = username
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the old password, sets the new one, and revokes
// all refresh tokens so other sessions must log in again.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%w: incorrect current password", domain.ErrInvalidInput)
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.tokens.RevokeAllForUser(ctx, userID)
}

// DeleteAccount permanently deletes the user; todos, tokens, and harvest
// history go with it via foreign-key cascades.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}
