package handler

import (
	"net/http"

	"github.com/msomdec/toadoo/internal/domain"
	"github.com/msomdec/toadoo/internal/service"
)

// LeaderboardHandler serves the ranked leaderboard.
type LeaderboardHandler struct {
	board *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(board *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{board: board}
}

// HandleLeaderboard returns ranked entries for a period, with the current
// user's entry flagged.
// GET /api/leaderboard?period=all-time|monthly|weekly&limit=n
func (h *LeaderboardHandler) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	q := r.URL.Query()

	periodStr := q.Get("period")
	if periodStr == "" {
		periodStr = string(domain.PeriodAllTime)
	}
	period, err := domain.ParsePeriod(periodStr)
	if err != nil {
		writeDomainError(w, err, "parse period")
		return
	}

	limit := intQuery(q.Get("limit"), 0)

	entries, err := h.board.Leaderboard(r.Context(), user.ID, period, limit)
	if err != nil {
		writeDomainError(w, err, "leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"period":      string(period),
		"leaderboard": toLeaderboardEntryDTOs(entries),
	})
}
