package domain

import (
	"context"
	"time"
)

// HarvestRecord is an append-only audit entry of one harvest event: the
// number of completed todos archived at HarvestedAt. The sum of Count over
// a user's records always equals that user's TotalCompletedCount.
type HarvestRecord struct {
	ID          int64
	UserID      int64
	Count       int
	HarvestedAt time.Time
}

// HarvestResult reports the outcome of a harvest.
type HarvestResult struct {
	HarvestedCount int
	NewTotal       int
}

// HarvestRepository persists harvest events.
//
// Harvest runs the entire operation in one transaction: delete the user's
// completed todos, bump the lifetime counter, append one record. With zero
// completed todos it commits nothing and returns a zero-count result.
type HarvestRepository interface {
	Harvest(ctx context.Context, userID int64, now time.Time) (*HarvestResult, error)
	ListByUser(ctx context.Context, userID int64) ([]HarvestRecord, error)
	SumByUser(ctx context.Context, userID int64) (int, error)
}
