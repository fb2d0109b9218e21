package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/repository/sqlite"
)

func createTestTodo(t *testing.T, repo *sqlite.TodoRepository, ownerID int64, title string, status domain.TodoStatus) *domain.Todo {
	t.Helper()
	todo := &domain.Todo{
		OwnerID:  ownerID,
		Title:    title,
		Status:   status,
		Priority: domain.TodoPriorityMedium,
	}
	if err := repo.Create(context.Background(), todo); err != nil {
		t.Fatalf("Create todo %s: %v", title, err)
	}
	return todo
}

func TestTodoRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "todo@example.com", "todouser")
	repo := db.Todos()
	ctx := context.Background()

	due := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	todo := &domain.Todo{
		OwnerID:     user.ID,
		Title:       "water the lilies",
		Description: "front pond",
		Priority:    domain.TodoPriorityHigh,
		DueDate:     &due,
	}
	if err := repo.Create(ctx, todo); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.ID == 0 {
		t.Fatal("expected todo ID to be set")
	}
	if todo.Status != domain.TodoStatusPending {
		t.Fatalf("expected default status pending, got %s", todo.Status)
	}

	got, err := repo.GetByID(ctx, todo.ID, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "water the lilies" {
		t.Fatalf("expected title 'water the lilies', got %q", got.Title)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Fatalf("expected due date %v, got %v", due, got.DueDate)
	}
}

func TestTodoRepository_GetByID_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db.Users(), "owner@example.com", "owner")
	other := createTestUser(t, db.Users(), "other@example.com", "other")
	repo := db.Todos()

	todo := createTestTodo(t, repo, owner.ID, "private", domain.TodoStatusPending)

	_, err := repo.GetByID(context.Background(), todo.ID, other.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign todo, got %v", err)
	}
}

func TestTodoRepository_ListByOwner_Filters(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "list@example.com", "listuser")
	repo := db.Todos()
	ctx := context.Background()

	createTestTodo(t, repo, user.ID, "one", domain.TodoStatusPending)
	createTestTodo(t, repo, user.ID, "two", domain.TodoStatusCompleted)
	high := &domain.Todo{OwnerID: user.ID, Title: "three", Priority: domain.TodoPriorityHigh}
	if err := repo.Create(ctx, high); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.ListByOwner(ctx, user.ID, domain.TodoFilter{})
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(all))
	}

	completed, err := repo.ListByOwner(ctx, user.ID, domain.TodoFilter{Status: domain.TodoStatusCompleted})
	if err != nil {
		t.Fatalf("ListByOwner completed: %v", err)
	}
	if len(completed) != 1 || completed[0].Title != "two" {
		t.Fatalf("expected only 'two', got %+v", completed)
	}

	highs, err := repo.ListByOwner(ctx, user.ID, domain.TodoFilter{Priority: domain.TodoPriorityHigh})
	if err != nil {
		t.Fatalf("ListByOwner high: %v", err)
	}
	if len(highs) != 1 || highs[0].Title != "three" {
		t.Fatalf("expected only 'three', got %+v", highs)
	}
}

func TestTodoRepository_ListByOwner_DueBefore(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "due@example.com", "dueuser")
	repo := db.Todos()
	ctx := context.Background()

	soon := time.Now().UTC().Add(time.Hour)
	later := time.Now().UTC().Add(72 * time.Hour)
	if err := repo.Create(ctx, &domain.Todo{OwnerID: user.ID, Title: "soon", DueDate: &soon}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, &domain.Todo{OwnerID: user.ID, Title: "later", DueDate: &later}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	createTestTodo(t, repo, user.ID, "undated", domain.TodoStatusPending)

	cutoff := time.Now().UTC().Add(24 * time.Hour)
	got, err := repo.ListByOwner(ctx, user.ID, domain.TodoFilter{DueBefore: &cutoff})
	if err != nil {
		t.Fatalf("ListByOwner due_before: %v", err)
	}
	if len(got) != 1 || got[0].Title != "soon" {
		t.Fatalf("expected only 'soon', got %+v", got)
	}
}

func TestTodoRepository_Update(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "upd@example.com", "upduser")
	repo := db.Todos()
	ctx := context.Background()

	todo := createTestTodo(t, repo, user.ID, "before", domain.TodoStatusPending)

	todo.Title = "after"
	todo.Status = domain.TodoStatusCompleted
	if err := repo.Update(ctx, todo); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, todo.ID, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "after" || got.Status != domain.TodoStatusCompleted {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestTodoRepository_Delete_WrongOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db.Users(), "o@example.com", "o")
	other := createTestUser(t, db.Users(), "x@example.com", "x")
	repo := db.Todos()
	ctx := context.Background()

	todo := createTestTodo(t, repo, owner.ID, "keep", domain.TodoStatusPending)

	if err := repo.Delete(ctx, todo.ID, other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting foreign todo, got %v", err)
	}
	if _, err := repo.GetByID(ctx, todo.ID, owner.ID); err != nil {
		t.Fatalf("todo should still exist: %v", err)
	}
}

func TestTodoRepository_Counts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db.Users(), "cnt@example.com", "cntuser")
	repo := db.Todos()
	ctx := context.Background()

	createTestTodo(t, repo, user.ID, "a", domain.TodoStatusPending)
	createTestTodo(t, repo, user.ID, "b", domain.TodoStatusCompleted)
	createTestTodo(t, repo, user.ID, "c", domain.TodoStatusCompleted)

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3, got %d", total)
	}

	done, err := repo.CountByStatus(ctx, domain.TodoStatusCompleted)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if done != 2 {
		t.Fatalf("expected 2 completed, got %d", done)
	}
}
