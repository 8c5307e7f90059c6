package availabilityRepo

import (
	"context"

	"coachhub/models"
)

// AvailabilityRepository stores a coach's recurring weekly windows.
type AvailabilityRepository interface {
	// GetByCoach retrieves all windows for a coach, active or not.
	GetByCoach(ctx context.Context, coachID string) ([]models.WeeklyAvailabilityWindow, error)
	// GetActiveByCoach retrieves only the active windows for a coach.
	GetActiveByCoach(ctx context.Context, coachID string) ([]models.WeeklyAvailabilityWindow, error)
	// ReplaceForCoach atomically swaps the coach's full set of windows.
	// Callers never observe a partially replaced schedule.
	ReplaceForCoach(ctx context.Context, coachID string, windows []models.WeeklyAvailabilityWindow) error
}
