package domain

import (
	"context"
	"fmt"
	"time"
)

// Period selects the leaderboard time window.
type Period string

const (
	PeriodAllTime Period = "all-time"
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
)

// ParsePeriod validates a period selector from a request.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAllTime, PeriodMonthly, PeriodWeekly:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: unknown period %q", ErrInvalidInput, s)
}

// LeaderboardEntry is one ranked row. Rank is the 1-based position after
// deterministic ordering; ties in count never share a rank number.
type LeaderboardEntry struct {
	Rank          int
	UserID        int64
	Username      string
	Count         int
	IsCurrentUser bool
}

// LeaderboardRepository produces ordered leaderboard rows.
//
// Both queries order by count descending, breaking ties by earliest account
// creation and then by user id, so equal scores never flap between requests.
// TopSince counts harvest records with harvested_at >= since and omits users
// with no qualifying harvests; TopAllTime reads the lifetime counter.
type LeaderboardRepository interface {
	TopAllTime(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	TopSince(ctx context.Context, since time.Time, limit int) ([]LeaderboardEntry, error)
}
