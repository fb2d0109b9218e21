package handler

import (
	"net/http"

	"github.com/msomdec/toadoo/internal/service"
)

// Services bundles everything the route table depends on.
type Services struct {
	Auth        *service.AuthService
	Todos       *service.TodoService
	Harvests    *service.HarvestService
	Leaderboard *service.LeaderboardService
	Users       *service.UserService
	Admin       *service.AdminService
}

// RateLimits holds the per-endpoint-class limiters. A nil limiter disables
// limiting for that class, which the tests rely on.
type RateLimits struct {
	Login    *service.TokenBucket
	Register *service.TokenBucket
	API      *service.TokenBucket
}

// DefaultRateLimits returns the production limiter configuration.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Login:    service.PerMinute(5),
		Register: service.PerMinute(3),
		API:      service.PerMinute(100),
	}
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc Services, limits RateLimits) {
	authH := NewAuthHandler(svc.Auth)
	todoH := NewTodoHandler(svc.Todos, svc.Harvests)
	userH := NewUserHandler(svc.Users, svc.Harvests)
	boardH := NewLeaderboardHandler(svc.Leaderboard)
	adminH := NewAdminHandler(svc.Admin)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Auth; login and register get their own tighter limits.
	mux.Handle("POST /api/auth/register", limited(limits.Register, http.HandlerFunc(authH.HandleRegister)))
	mux.Handle("POST /api/auth/login", limited(limits.Login, http.HandlerFunc(authH.HandleLogin)))
	mux.Handle("POST /api/auth/refresh", limited(limits.API, http.HandlerFunc(authH.HandleRefresh)))
	mux.Handle("POST /api/auth/verify-email", limited(limits.API, http.HandlerFunc(authH.HandleVerifyEmail)))
	mux.Handle("POST /api/auth/forgot-password", limited(limits.API, http.HandlerFunc(authH.HandleForgotPassword)))
	mux.Handle("POST /api/auth/reset-password", limited(limits.API, http.HandlerFunc(authH.HandleResetPassword)))
	mux.Handle("POST /api/auth/logout", protected(svc, limits, authH.HandleLogout))
	mux.Handle("GET /api/auth/me", protected(svc, limits, authH.HandleMe))
	mux.Handle("POST /api/auth/resend-verification", protected(svc, limits, authH.HandleResendVerification))

	// Todos and harvest.
	mux.Handle("POST /api/todos", protected(svc, limits, todoH.HandleCreate))
	mux.Handle("GET /api/todos", protected(svc, limits, todoH.HandleList))
	mux.Handle("POST /api/todos/harvest", protected(svc, limits, todoH.HandleHarvest))
	mux.Handle("GET /api/todos/{id}", protected(svc, limits, todoH.HandleGet))
	mux.Handle("PUT /api/todos/{id}", protected(svc, limits, todoH.HandleUpdate))
	mux.Handle("DELETE /api/todos/{id}", protected(svc, limits, todoH.HandleDelete))

	// Current user.
	mux.Handle("PUT /api/users/me", protected(svc, limits, userH.HandleUpdateProfile))
	mux.Handle("POST /api/users/me/change-password", protected(svc, limits, userH.HandleChangePassword))
	mux.Handle("DELETE /api/users/me", protected(svc, limits, userH.HandleDeleteAccount))
	mux.Handle("GET /api/users/me/rank", protected(svc, limits, userH.HandleRank))
	mux.Handle("GET /api/users/me/harvests", protected(svc, limits, userH.HandleHarvestHistory))

	// Leaderboard.
	mux.Handle("GET /api/leaderboard", protected(svc, limits, boardH.HandleLeaderboard))

	// Admin.
	mux.Handle("GET /api/admin/users", admin(svc, limits, adminH.HandleListUsers))
	mux.Handle("GET /api/admin/users/{id}", admin(svc, limits, adminH.HandleGetUser))
	mux.Handle("PUT /api/admin/users/{id}/role", admin(svc, limits, adminH.HandleUpdateRole))
	mux.Handle("PUT /api/admin/users/{id}/status", admin(svc, limits, adminH.HandleUpdateStatus))
	mux.Handle("DELETE /api/admin/users/{id}", admin(svc, limits, adminH.HandleDeleteUser))
	mux.Handle("GET /api/admin/todos", admin(svc, limits, adminH.HandleListTodos))
	mux.Handle("GET /api/admin/stats", admin(svc, limits, adminH.HandleStats))
}

func limited(limiter *service.TokenBucket, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return RateLimit(limiter, next)
}

func protected(svc Services, limits RateLimits, fn http.HandlerFunc) http.Handler {
	return limited(limits.API, RequireAuth(svc.Auth, fn))
}

func admin(svc Services, limits RateLimits, fn http.HandlerFunc) http.Handler {
	return limited(limits.API, RequireAdmin(svc.Auth, fn))
}
