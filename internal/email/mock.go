// Package email delivers account emails. The only implementation is a mock
// that logs the token instead of sending, which is enough for local use and
// for the frontend's development flow.
package email

import (
	"context"
	"log/slog"
)

// MockMailer logs outgoing emails via slog instead of sending them.
type MockMailer struct{}

// NewMockMailer creates a MockMailer.
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendVerificationEmail(ctx context.Context, email, token string) error {
	slog.Info("mock verification email sent", "to", email, "token", truncate(token))
	return nil
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, email, token string) error {
	slog.Info("mock password reset email sent", "to", email, "token", truncate(token))
	return nil
}

// truncate keeps logs from echoing whole tokens.
func truncate(token string) string {
	if len(token) <= 10 {
		return token
	}
	return token[:10] + "..."
}
