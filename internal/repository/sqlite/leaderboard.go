package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

// LeaderboardRepository implements domain.LeaderboardRepository using SQLite.
type LeaderboardRepository struct {
	db *sql.DB
}

// NewLeaderboardRepository creates a new SQLite-backed LeaderboardRepository.
func NewLeaderboardRepository(db *DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db.SqlDB}
}

// TopAllTime ranks users by lifetime harvested count. Ties are broken by
// earliest account creation, then by id, so the ordering is stable across
// requests regardless of how rows happen to be laid out.
func (r *LeaderboardRepository) TopAllTime(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, total_completed_count FROM users
		 ORDER BY total_completed_count DESC, created_at ASC, id ASC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query all-time leaderboard: %w", err)
	}
	return collectEntries(rows)
}

// TopSince ranks users by harvested count within the window starting at
// since. Users with no qualifying harvests are omitted.
func (r *LeaderboardRepository) TopSince(ctx context.Context, since time.Time, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username, SUM(h.count) AS window_count
		 FROM harvest_history h
		 JOIN users u ON u.id = h.user_id
		 WHERE h.harvested_at >= ?
		 GROUP BY u.id, u.username, u.created_at
		 ORDER BY window_count DESC, u.created_at ASC, u.id ASC
		 LIMIT ?`, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query windowed leaderboard: %w", err)
	}
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]domain.LeaderboardEntry, error) {
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Count); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
