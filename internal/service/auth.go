package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/toadoo/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL       = 30 * time.Minute
	refreshTokenTTL      = 7 * 24 * time.Hour
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles registration, login, token rotation, email
// verification, and password reset.
type AuthService struct {
	users      domain.UserRepository
	tokens     domain.TokenRepository
	mailer     domain.Mailer
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, tokens domain.TokenRepository, mailer domain.Mailer, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a new unverified user account and issues an email
// verification token through the mailer.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	if email == "" || username == "" {
		return nil, fmt.Errorf("%w: email and username are required", domain.ErrInvalidInput)
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, fmt.Errorf("%w: username must be 3-50 characters", domain.ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
		IsVerified:   false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials by username or email and returns a fresh token
// pair. Inactive accounts are rejected with ErrForbidden.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh rotates a refresh token: the presented token must be stored,
// unrevoked, unexpired, and validly signed. The old token is revoked and a
// new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.tokens.GetRefresh(ctx, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	userID, err := s.parseToken(refreshToken, "refresh")
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if userID != stored.UserID {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	if err := s.tokens.RevokeRefresh(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes the presented refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.RevokeRefresh(ctx, refreshToken)
}

// ValidateAccessToken parses and validates an access JWT, returning the
// user ID from the sub claim.
func (s *AuthService) ValidateAccessToken(tokenString string) (int64, error) {
	return s.parseToken(tokenString, "access")
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// VerifyEmail consumes a verification token and marks the user verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	at, err := s.tokens.GetAction(ctx, domain.TokenEmailVerification, token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired verification token", domain.ErrInvalidInput)
	}

	if err := s.users.MarkVerified(ctx, at.UserID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	if err := s.tokens.MarkActionUsed(ctx, domain.TokenEmailVerification, token); err != nil {
		return nil, fmt.Errorf("mark token used: %w", err)
	}

	return s.users.GetByID(ctx, at.UserID)
}

// ResendVerification issues a fresh verification token for an unverified user.
func (s *AuthService) ResendVerification(ctx context.Context, user *domain.User) error {
	if user.IsVerified {
		return fmt.Errorf("%w: email already verified", domain.ErrInvalidInput)
	}
	return s.issueVerification(ctx, user)
}

// ForgotPassword issues a reset token if the email is known. It reports
// success either way so callers cannot probe which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	token := uuid.NewString()
	if err := s.tokens.CreateAction(ctx, domain.TokenPasswordReset, token, user.ID, time.Now().UTC().Add(resetTokenTTL)); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return s.mailer.SendPasswordResetEmail(ctx, user.Email, token)
}

// ResetPassword consumes a reset token, sets the new password, and revokes
// every outstanding refresh token for the user.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	at, err := s.tokens.GetAction(ctx, domain.TokenPasswordReset, token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired reset token", domain.ErrInvalidInput)
	}

	if err := validatePassword(newPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, at.UserID, string(hash)); err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	if err := s.tokens.MarkActionUsed(ctx, domain.TokenPasswordReset, token); err != nil {
		return nil, fmt.Errorf("mark token used: %w", err)
	}
	if err := s.tokens.RevokeAllForUser(ctx, at.UserID); err != nil {
		return nil, fmt.Errorf("revoke refresh tokens: %w", err)
	}

	return s.users.GetByID(ctx, at.UserID)
}

func (s *AuthService) issueVerification(ctx context.Context, user *domain.User) error {
	token := uuid.NewString()
	if err := s.tokens.CreateAction(ctx, domain.TokenEmailVerification, token, user.ID, time.Now().UTC().Add(verificationTokenTTL)); err != nil {
		return fmt.Errorf("create verification token: %w", err)
	}
	return s.mailer.SendVerificationEmail(ctx, user.Email, token)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *domain.User) (*TokenPair, error) {
	now := time.Now()

	access, err := s.signToken(user.ID, "access", now, now.Add(accessTokenTTL), "")
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshExpiry := now.Add(refreshTokenTTL)
	refresh, err := s.signToken(user.ID, "refresh", now, refreshExpiry, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.tokens.CreateRefresh(ctx, refresh, user.ID, refreshExpiry.UTC()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(userID int64, tokenType string, issuedAt, expiresAt time.Time, jti string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"type": tokenType,
		"iat":  issuedAt.Unix(),
		"exp":  expiresAt.Unix(),
	}
	if jti != "" {
		claims["jti"] = jti
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) parseToken(tokenString, wantType string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	if typ, _ := claims["type"].(string); typ != wantType {
		return 0, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// validatePassword enforces the registration password policy: at least 8
// characters with an uppercase letter, a lowercase letter, and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return fmt.Errorf("%w: password must contain uppercase, lowercase, and a digit", domain.ErrInvalidInput)
	}
	return nil
}
