package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

const (
	// DefaultLeaderboardLimit applies when the caller omits a limit.
	DefaultLeaderboardLimit = 10
	// MaxLeaderboardLimit caps how many entries one request may ask for.
	MaxLeaderboardLimit = 100

	monthlyWindow = 30 * 24 * time.Hour
	weeklyWindow  = 7 * 24 * time.Hour
)

// LeaderboardService computes ranked completed-todo counts per time window.
type LeaderboardService struct {
	users domain.UserRepository
	board domain.LeaderboardRepository
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(users domain.UserRepository, board domain.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{users: users, board: board}
}

// Leaderboard returns ranked entries for the given period, annotating the
// entry belonging to the requesting user. The requesting user must exist;
// an unknown id is an invalid argument, distinct from an empty result.
func (s *LeaderboardService) Leaderboard(ctx context.Context, requestingUserID int64, period domain.Period, limit int) ([]domain.LeaderboardEntry, error) {
	if _, err := s.users.GetByID(ctx, requestingUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user %d", domain.ErrInvalidInput, requestingUserID)
		}
		return nil, fmt.Errorf("get requesting user: %w", err)
	}

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	var entries []domain.LeaderboardEntry
	var err error
	switch period {
	case domain.PeriodAllTime:
		entries, err = s.board.TopAllTime(ctx, limit)
	case domain.PeriodMonthly:
		entries, err = s.board.TopSince(ctx, time.Now().UTC().Add(-monthlyWindow), limit)
	case domain.PeriodWeekly:
		entries, err = s.board.TopSince(ctx, time.Now().UTC().Add(-weeklyWindow), limit)
	default:
		return nil, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidInput, period)
	}
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}

	// The current-user flag is computed per request, never stored.
	for i := range entries {
		entries[i].IsCurrentUser = entries[i].UserID == requestingUserID
	}
	return entries, nil
}
