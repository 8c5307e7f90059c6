package scheduling

import (
	"context"

	"coachhub/models"
)

// AvailabilityQuery describes one availability lookup.
type AvailabilityQuery struct {
	CoachID         string
	StartDate       string // "2006-01-02", inclusive
	EndDate         string // "2006-01-02", inclusive
	DurationMinutes int    // 0 means the default duration
}

// SlotEngine computes bookable slots for a coach over a date range.
type SlotEngine interface {
	// GetCoachAvailability expands the coach's weekly windows over the range
	// and classifies every slot as available or booked/blocked/past.
	GetCoachAvailability(ctx context.Context, query AvailabilityQuery) ([]models.DayAvailability, error)
}
