package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

// TodoRepository implements domain.TodoRepository using SQLite.
type TodoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new SQLite-backed TodoRepository.
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db.SqlDB}
}

const todoColumns = `id, owner_id, title, description, status, priority, due_date, created_at, updated_at`

func scanTodo(row interface{ Scan(...any) error }) (*domain.Todo, error) {
	todo := &domain.Todo{}
	var due sql.NullTime
	err := row.Scan(
		&todo.ID, &todo.OwnerID, &todo.Title, &todo.Description,
		&todo.Status, &todo.Priority, &due, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t := due.Time
		todo.DueDate = &t
	}
	return todo, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	now := time.Now().UTC()
	if todo.Status == "" {
		todo.Status = domain.TodoStatusPending
	}
	if todo.Priority == "" {
		todo.Priority = domain.TodoPriorityMedium
	}

	var due any
	if todo.DueDate != nil {
		due = *todo.DueDate
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (owner_id, title, description, status, priority, due_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.OwnerID, todo.Title, todo.Description, todo.Status, todo.Priority, due, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	todo.ID = id
	todo.CreatedAt = now
	todo.UpdatedAt = now
	return nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id, ownerID int64) (*domain.Todo, error) {
	todo, err := scanTodo(r.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query todo by id: %w", err)
	}
	return todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64, filter domain.TodoFilter) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE owner_id = ?`
	args := []any{ownerID}
	query, args = applyTodoFilter(query, args, filter)
	return r.queryTodos(ctx, query, args)
}

func (r *TodoRepository) ListAll(ctx context.Context, filter domain.TodoFilter) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE 1=1`
	args := []any{}
	query, args = applyTodoFilter(query, args, filter)
	return r.queryTodos(ctx, query, args)
}

func applyTodoFilter(query string, args []any, filter domain.TodoFilter) (string, []any) {
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		query += ` AND priority = ?`
		args = append(args, filter.Priority)
	}
	if filter.DueBefore != nil {
		query += ` AND due_date IS NOT NULL AND due_date <= ?`
		args = append(args, *filter.DueBefore)
	}

	query += ` ORDER BY id LIMIT ? OFFSET ?`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)
	return query, args
}

func (r *TodoRepository) queryTodos(ctx context.Context, query string, args []any) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	now := time.Now().UTC()

	var due any
	if todo.DueDate != nil {
		due = *todo.DueDate
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, status = ?, priority = ?, due_date = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		todo.Title, todo.Description, todo.Status, todo.Priority, due, now, todo.ID, todo.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	if err := requireRowAffected(result); err != nil {
		return err
	}
	todo.UpdatedAt = now
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return requireRowAffected(result)
}

func (r *TodoRepository) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE owner_id = ?`, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count todos by owner: %w", err)
	}
	return n, nil
}

func (r *TodoRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return n, nil
}

func (r *TodoRepository) CountByStatus(ctx context.Context, status domain.TodoStatus) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE status = ?`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count todos by status: %w", err)
	}
	return n, nil
}
