package sessionRepo

import (
	"context"
	"errors"
	"time"

	"coachhub/models"
)

// ErrSlotTaken is returned when a conflict-checked write finds an overlapping
// scheduled session for the same coach.
var ErrSlotTaken = errors.New("overlapping scheduled session exists")

// SessionRepository stores bookings and answers the overlap queries the
// booking engine depends on.
type SessionRepository interface {
	// GetByID retrieves a session by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// CreateIfNoConflict inserts the session unless the coach already has a
	// scheduled session overlapping its interval. Check and insert run in a
	// single transaction; ErrSlotTaken reports a conflict.
	CreateIfNoConflict(ctx context.Context, session *models.Session) error
	// RescheduleIfNoConflict persists the session's new schedule unless it
	// overlaps another scheduled session of the coach (the session itself is
	// excluded from the check). ErrSlotTaken reports a conflict.
	RescheduleIfNoConflict(ctx context.Context, session *models.Session) error
	// Update persists status and lifecycle fields of an existing session.
	Update(ctx context.Context, session *models.Session) error
	// ListScheduledInRange retrieves the coach's scheduled sessions whose
	// intervals overlap [from, to).
	ListScheduledInRange(ctx context.Context, coachID string, from, to time.Time) ([]models.Session, error)
	// List retrieves a filtered, paginated page of sessions plus the total count.
	List(ctx context.Context, filters models.SessionFilters) ([]models.Session, int64, error)
}
