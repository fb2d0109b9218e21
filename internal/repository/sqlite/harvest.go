package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

// HarvestRepository implements domain.HarvestRepository using SQLite.
type HarvestRepository struct {
	db *sql.DB
}

// NewHarvestRepository creates a new SQLite-backed HarvestRepository.
func NewHarvestRepository(db *DB) *HarvestRepository {
	return &HarvestRepository{db: db.SqlDB}
}

// Harvest archives the user's completed todos in a single transaction:
// delete them, add their count to the user's lifetime total, and append one
// harvest_history row. With nothing to harvest it commits no changes and
// returns a zero-count result. The pool is capped at one connection, so two
// concurrent harvests for the same user serialize and the second observes
// zero completed todos.
func (r *HarvestRepository) Harvest(ctx context.Context, userID int64, now time.Time) (*domain.HarvestResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int
	err = tx.QueryRowContext(ctx,
		`SELECT total_completed_count FROM users WHERE id = ?`, userID,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user total: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM todos WHERE owner_id = ? AND status = ?`,
		userID, domain.TodoStatusCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("delete completed todos: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if deleted == 0 {
		// Nothing to harvest; leave all state untouched.
		return &domain.HarvestResult{HarvestedCount: 0, NewTotal: total}, nil
	}

	newTotal := total + int(deleted)
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET total_completed_count = ?, updated_at = ? WHERE id = ?`,
		newTotal, now, userID,
	); err != nil {
		return nil, fmt.Errorf("update user total: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO harvest_history (user_id, count, harvested_at) VALUES (?, ?, ?)`,
		userID, deleted, now,
	); err != nil {
		return nil, fmt.Errorf("insert harvest record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit harvest: %w", err)
	}

	return &domain.HarvestResult{HarvestedCount: int(deleted), NewTotal: newTotal}, nil
}

func (r *HarvestRepository) ListByUser(ctx context.Context, userID int64) ([]domain.HarvestRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, count, harvested_at FROM harvest_history
		 WHERE user_id = ? ORDER BY harvested_at DESC, id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query harvest history: %w", err)
	}
	defer rows.Close()

	var records []domain.HarvestRecord
	for rows.Next() {
		var rec domain.HarvestRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Count, &rec.HarvestedAt); err != nil {
			return nil, fmt.Errorf("scan harvest record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *HarvestRepository) SumByUser(ctx context.Context, userID int64) (int, error) {
	var sum int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(count), 0) FROM harvest_history WHERE user_id = ?`, userID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum harvest history: %w", err)
	}
	return sum, nil
}
