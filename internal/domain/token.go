package domain

import (
	"context"
	"time"
)

// RefreshToken is a stored, revocable refresh credential. The Token value
// is the signed JWT itself; revocation is checked against this table on
// every refresh.
type RefreshToken struct {
	ID        int64
	Token     string
	UserID    int64
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// ActionToken is a single-use token mailed to a user for email
// verification or password reset.
type ActionToken struct {
	ID        int64
	Token     string
	UserID    int64
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// ActionTokenKind selects which single-use token table to operate on.
type ActionTokenKind string

const (
	TokenEmailVerification ActionTokenKind = "email_verification"
	TokenPasswordReset     ActionTokenKind = "password_reset"
)

// TokenRepository persists refresh tokens and single-use action tokens.
type TokenRepository interface {
	CreateRefresh(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// GetRefresh returns a token only if it exists, is not revoked, and has
	// not expired; otherwise ErrNotFound.
	GetRefresh(ctx context.Context, token string) (*RefreshToken, error)
	RevokeRefresh(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error

	CreateAction(ctx context.Context, kind ActionTokenKind, token string, userID int64, expiresAt time.Time) error
	// GetAction returns a token only if it exists, is unused, and has not
	// expired; otherwise ErrNotFound.
	GetAction(ctx context.Context, kind ActionTokenKind, token string) (*ActionToken, error)
	MarkActionUsed(ctx context.Context, kind ActionTokenKind, token string) error
}

// Mailer delivers account emails. The default implementation is a mock
// that logs instead of sending.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, token string) error
	SendPasswordResetEmail(ctx context.Context, email, token string) error
}
