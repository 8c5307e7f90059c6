package availability

import (
	"context"
	"time"

	"coachhub/models"
)

// Service manages a coach's weekly schedule and one-off blocked ranges.
type Service interface {
	// SetWeeklyAvailability replaces the coach's full set of weekly windows.
	// The swap is all-or-nothing; a partially replaced schedule is never
	// observable.
	SetWeeklyAvailability(ctx context.Context, coachID string, actor models.Actor, req models.SetAvailabilityRequest) ([]models.WeeklyAvailabilityWindow, error)
	// GetWeeklyAvailability returns the coach's configured windows.
	GetWeeklyAvailability(ctx context.Context, coachID string, actor models.Actor) ([]models.WeeklyAvailabilityWindow, error)
	// AddBlockedRange blocks out a one-off interval.
	AddBlockedRange(ctx context.Context, coachID string, actor models.Actor, req models.BlockTimeRequest) (*models.BlockedTimeRange, error)
	// RemoveBlockedRange deletes a blocked range.
	RemoveBlockedRange(ctx context.Context, coachID string, actor models.Actor, blockID string) error
	// ListBlockedRanges returns blocked ranges overlapping [from, to).
	ListBlockedRanges(ctx context.Context, coachID string, actor models.Actor, from, to time.Time) ([]models.BlockedTimeRange, error)
}
