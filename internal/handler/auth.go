package handler

import (
	"net/http"

	"github.com/msomdec/toadoo/internal/service"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"email":"...","username":"...","password":"..."}
// Response: 201 {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err, "register user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"user": toUserDTO(user)})
}

// HandleLogin processes a JSON login request by username or email.
// POST /api/auth/login
// Request:  {"identifier":"...","password":"..."}
// Response: {"accessToken":"...","refreshToken":"...","tokenType":"bearer"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	pair, err := h.auth.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		writeDomainError(w, err, "login user")
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairDTO(pair))
}

// HandleRefresh rotates a refresh token.
// POST /api/auth/refresh
// Request:  {"refreshToken":"..."}
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeDomainError(w, err, "refresh token")
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairDTO(pair))
}

// HandleLogout revokes the presented refresh token.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.Logout(r.Context(), req.RefreshToken); err != nil {
		writeDomainError(w, err, "logout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleVerifyEmail consumes an email verification token.
// POST /api/auth/verify-email
// Request: {"token":"..."}
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		writeDomainError(w, err, "verify email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}

// HandleResendVerification issues a fresh verification token.
// POST /api/auth/resend-verification
func (h *AuthHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := h.auth.ResendVerification(r.Context(), user); err != nil {
		writeDomainError(w, err, "resend verification")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent."})
}

// HandleForgotPassword requests a password reset token. Always responds 200
// so callers cannot probe which emails exist.
// POST /api/auth/forgot-password
// Request: {"email":"..."}
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		writeDomainError(w, err, "forgot password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "If the email exists, a reset link has been sent."})
}

// HandleResetPassword consumes a reset token and sets a new password.
// POST /api/auth/reset-password
// Request: {"token":"...","newPassword":"..."}
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeDomainError(w, err, "reset password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": toUserDTO(user)})
}
