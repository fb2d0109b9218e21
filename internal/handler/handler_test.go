package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/handler"
	"github.com/msomdec/toadoo/internal/repository/sqlite"
	"github.com/msomdec/toadoo/internal/service"
)

const testJWTSecret = "test-secret-key-at-least-32-bytes-long!"

type testServer struct {
	*httptest.Server
	db *sqlite.DB
}

// discardMailer drops account emails; handler tests that need the tokens
// read them out of the database instead.
type discardMailer struct{}

func (discardMailer) SendVerificationEmail(context.Context, string, string) error { return nil }
func (discardMailer) SendPasswordResetEmail(context.Context, string, string) error {
	return nil
}

// newTestServer spins up the full route table against a temp database.
// Rate limits are left nil so tests are not throttled.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	auth := service.NewAuthService(db.Users(), db.Tokens(), discardMailer{}, testJWTSecret, 4)
	svc := handler.Services{
		Auth:        auth,
		Todos:       service.NewTodoService(db.Todos()),
		Harvests:    service.NewHarvestService(db.Harvests()),
		Leaderboard: service.NewLeaderboardService(db.Users(), db.Leaderboard()),
		Users:       service.NewUserService(db.Users(), db.Tokens(), 4),
		Admin:       service.NewAdminService(db.Users(), db.Todos()),
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, svc, handler.RateLimits{})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, db: db}
}

// do sends a JSON request, optionally authenticated, and decodes the
// response body into out when out is non-nil.
func (ts *testServer) do(t *testing.T, method, path, token string, body, out any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp
}

// register creates an account and returns an access token for it.
func (ts *testServer) register(t *testing.T, email, username, password string) (int64, string) {
	t.Helper()

	var created struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	resp := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}

	var pair struct {
		AccessToken string `json:"accessToken"`
	}
	resp = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"identifier": username,
		"password":   password,
	}, &pair)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}

	return created.User.ID, pair.AccessToken
}

// promote flips a user to the admin role directly in the store.
func (ts *testServer) promote(t *testing.T, userID int64) {
	t.Helper()
	if err := ts.db.Users().UpdateRole(context.Background(), userID, domain.RoleAdmin); err != nil {
		t.Fatalf("promote user %d: %v", userID, err)
	}
}
