package service_test

import (
	"context"
	"testing"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/repository/sqlite"
	"github.com/msomdec/toadoo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, *sqliteFixture) {
	t.Helper()
	db := newTestDB(t)
	mailer := &captureMailer{}
	auth := service.NewAuthService(db.Users(), db.Tokens(), mailer, testJWTSecret, testBcryptCost)
	return auth, &sqliteFixture{db: db, mailer: mailer}
}

type sqliteFixture struct {
	db     *sqlite.DB
	mailer *captureMailer
}

func TestAuthService_Register(t *testing.T) {
	auth, fx := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "toad@example.com", "toadking", "Secret123")
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsVerified)
	assert.NotEqual(t, "Secret123", user.PasswordHash, "password must be hashed")

	// A verification token was issued through the mailer.
	fx.mailer.lastVerification(t)
}

func TestAuthService_Register_PasswordPolicy(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "secret123"},
		{"no lowercase", "SECRET123"},
		{"no digit", "SecretPass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(ctx, "p@example.com", "polichecker", tc.password)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "dup@example.com", "firstfrog", "Secret123")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "dup@example.com", "secondfrog", "Secret123")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "login@example.com", "loginfrog", "Secret123")
	require.NoError(t, err)

	t.Run("by username", func(t *testing.T) {
		pair, err := auth.Login(ctx, "loginfrog", "Secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		id, err := auth.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})

	t.Run("by email", func(t *testing.T) {
		_, err := auth.Login(ctx, "login@example.com", "Secret123")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, "loginfrog", "Wrong1234")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := auth.Login(ctx, "nobody", "Secret123")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	auth, fx := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "frozen@example.com", "frozenfrog", "Secret123")
	require.NoError(t, err)
	require.NoError(t, fx.db.Users().UpdateStatus(ctx, user.ID, false))

	_, err = auth.Login(ctx, "frozenfrog", "Secret123")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "rot@example.com", "rotator", "Secret123")
	require.NoError(t, err)

	pair, err := auth.Login(ctx, "rotator", "Secret123")
	require.NoError(t, err)

	next, err := auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The old token is revoked and cannot be replayed.
	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// The new one still works.
	_, err = auth.Refresh(ctx, next.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_Refresh_RejectsGarbage(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "mix@example.com", "mixemup", "Secret123")
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "mixemup", "Secret123")
	require.NoError(t, err)

	// An access token is not a stored refresh token.
	_, err = auth.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Logout(t *testing.T) {
	auth, _ := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "out@example.com", "logoutfrog", "Secret123")
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "logoutfrog", "Secret123")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, pair.RefreshToken))

	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	auth, fx := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "verify@example.com", "verifier", "Secret123")
	require.NoError(t, err)

	token := fx.mailer.lastVerification(t)
	user, err := auth.VerifyEmail(ctx, token)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Single use.
	_, err = auth.VerifyEmail(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_ResendVerification(t *testing.T) {
	auth, fx := newAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "again@example.com", "againfrog", "Secret123")
	require.NoError(t, err)

	first := fx.mailer.lastVerification(t)
	require.NoError(t, auth.ResendVerification(ctx, user))
	second := fx.mailer.lastVerification(t)
	assert.NotEqual(t, first, second)

	// Already-verified accounts are refused.
	verified, err := auth.VerifyEmail(ctx, second)
	require.NoError(t, err)
	err = auth.ResendVerification(ctx, verified)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	auth, fx := newAuthService(t)

	err := auth.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err, "unknown emails must not be distinguishable")
	assert.Empty(t, fx.mailer.resetTokens)
}

func TestAuthService_ResetPassword(t *testing.T) {
	auth, fx := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "reset@example.com", "resetfrog", "Secret123")
	require.NoError(t, err)
	pair, err := auth.Login(ctx, "resetfrog", "Secret123")
	require.NoError(t, err)

	require.NoError(t, auth.ForgotPassword(ctx, "reset@example.com"))
	token := fx.mailer.lastReset(t)

	_, err = auth.ResetPassword(ctx, token, "NewSecret456")
	require.NoError(t, err)

	// Old password is dead, new one works.
	_, err = auth.Login(ctx, "resetfrog", "Secret123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = auth.Login(ctx, "resetfrog", "NewSecret456")
	assert.NoError(t, err)

	// Every outstanding session was revoked.
	_, err = auth.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Reset tokens are single use.
	_, err = auth.ResetPassword(ctx, token, "OtherSecret789")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthService_ResetPassword_WeakPasswordKeepsToken(t *testing.T) {
	auth, fx := newAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, "weak@example.com", "weakfrog", "Secret123")
	require.NoError(t, err)
	require.NoError(t, auth.ForgotPassword(ctx, "weak@example.com"))
	token := fx.mailer.lastReset(t)

	_, err = auth.ResetPassword(ctx, token, "short")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// The token survives a rejected password and can still be used.
	_, err = auth.ResetPassword(ctx, token, "NewSecret456")
	assert.NoError(t, err)
}
