package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/repository/sqlite"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-at-least-32-bytes-long!"

// bcrypt.MinCost keeps the hashing fast under test.
const testBcryptCost = 4

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sqlite.DB, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "unusable",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, db.Users().Create(context.Background(), user))
	return user
}

func seedTodo(t *testing.T, db *sqlite.DB, ownerID int64, title string, status domain.TodoStatus) *domain.Todo {
	t.Helper()
	todo := &domain.Todo{
		OwnerID:  ownerID,
		Title:    title,
		Status:   status,
		Priority: domain.TodoPriorityMedium,
	}
	require.NoError(t, db.Todos().Create(context.Background(), todo))
	return todo
}

// captureMailer records the tokens handed to it so tests can replay the
// verification and reset flows.
type captureMailer struct {
	mu                 sync.Mutex
	verificationTokens []string
	resetTokens        []string
}

func (m *captureMailer) SendVerificationEmail(_ context.Context, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verificationTokens = append(m.verificationTokens, token)
	return nil
}

func (m *captureMailer) SendPasswordResetEmail(_ context.Context, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetTokens = append(m.resetTokens, token)
	return nil
}

func (m *captureMailer) lastVerification(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.verificationTokens, "no verification email sent")
	return m.verificationTokens[len(m.verificationTokens)-1]
}

func (m *captureMailer) lastReset(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resetTokens, "no reset email sent")
	return m.resetTokens[len(m.resetTokens)-1]
}
