package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

// TokenRepository implements domain.TokenRepository using SQLite.
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new SQLite-backed TokenRepository.
func NewTokenRepository(db *DB) *TokenRepository {
	return &TokenRepository{db: db.SqlDB}
}

func actionTable(kind domain.ActionTokenKind) (string, error) {
	switch kind {
	case domain.TokenEmailVerification:
		return "email_verification_tokens", nil
	case domain.TokenPasswordReset:
		return "password_reset_tokens", nil
	}
	return "", fmt.Errorf("%w: unknown token kind %q", domain.ErrInvalidInput, kind)
}

func (r *TokenRepository) CreateRefresh(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		token, userID, expiresAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetRefresh(ctx context.Context, token string) (*domain.RefreshToken, error) {
	rt := &domain.RefreshToken{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, token, user_id, expires_at, revoked, created_at FROM refresh_tokens
		 WHERE token = ? AND revoked = 0 AND expires_at > ?`,
		token, time.Now().UTC(),
	).Scan(&rt.ID, &rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query refresh token: %w", err)
	}
	return rt, nil
}

func (r *TokenRepository) RevokeRefresh(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE token = ?`, token,
	)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE user_id = ?`, userID,
	)
	if err != nil {
		return fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return nil
}

func (r *TokenRepository) CreateAction(ctx context.Context, kind domain.ActionTokenKind, token string, userID int64, expiresAt time.Time) error {
	table, err := actionTable(kind)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)`,
		token, userID, expiresAt, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert %s token: %w", kind, err)
	}
	return nil
}

func (r *TokenRepository) GetAction(ctx context.Context, kind domain.ActionTokenKind, token string) (*domain.ActionToken, error) {
	table, err := actionTable(kind)
	if err != nil {
		return nil, err
	}
	at := &domain.ActionToken{}
	err = r.db.QueryRowContext(ctx,
		`SELECT id, token, user_id, expires_at, used, created_at FROM `+table+`
		 WHERE token = ? AND used = 0 AND expires_at > ?`,
		token, time.Now().UTC(),
	).Scan(&at.ID, &at.Token, &at.UserID, &at.ExpiresAt, &at.Used, &at.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query %s token: %w", kind, err)
	}
	return at, nil
}

func (r *TokenRepository) MarkActionUsed(ctx context.Context, kind domain.ActionTokenKind, token string) error {
	table, err := actionTable(kind)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE `+table+` SET used = 1 WHERE token = ?`, token,
	)
	if err != nil {
		return fmt.Errorf("mark %s token used: %w", kind, err)
	}
	return nil
}
