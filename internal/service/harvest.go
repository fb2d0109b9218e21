package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/toadoo/internal/domain"
)

// HarvestService archives completed todos into the lifetime counter and the
// harvest history log.
type HarvestService struct {
	harvests domain.HarvestRepository
}

// NewHarvestService creates a new HarvestService.
func NewHarvestService(harvests domain.HarvestRepository) *HarvestService {
	return &HarvestService{harvests: harvests}
}

// Harvest moves all of the user's completed todos out of the active list.
// Harvesting with nothing completed is a successful no-op with count 0.
func (s *HarvestService) Harvest(ctx context.Context, userID int64) (*domain.HarvestResult, error) {
	result, err := s.harvests.Harvest(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("harvest: %w", err)
	}

	if result.HarvestedCount > 0 {
		slog.Info("todos harvested", "user_id", userID, "count", result.HarvestedCount, "new_total", result.NewTotal)
	}
	return result, nil
}

// History returns the user's harvest records, newest first.
func (s *HarvestService) History(ctx context.Context, userID int64) ([]domain.HarvestRecord, error) {
	return s.harvests.ListByUser(ctx, userID)
}
