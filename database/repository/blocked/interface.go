package blockedRepo

import (
	"context"
	"time"

	"coachhub/models"
)

// BlockedRepository stores a coach's one-off exclusion intervals.
type BlockedRepository interface {
	// Create inserts a new blocked range.
	Create(ctx context.Context, block *models.BlockedTimeRange) error
	// Delete removes a blocked range by id, scoped to the coach.
	Delete(ctx context.Context, coachID, id string) error
	// ListByCoach retrieves blocked ranges overlapping [from, to).
	ListByCoach(ctx context.Context, coachID string, from, to time.Time) ([]models.BlockedTimeRange, error)
}
