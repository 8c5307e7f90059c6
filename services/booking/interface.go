package booking

import (
	"context"

	"coachhub/models"
)

// SessionService books sessions and drives their lifecycle.
type SessionService interface {
	// BookSession validates the request and reserves the slot, rejecting time
	// conflicts against the coach's other scheduled sessions.
	BookSession(ctx context.Context, menteeID string, req models.BookSessionRequest) (*models.Session, error)
	// GetSession retrieves a session for a participant or privileged actor.
	GetSession(ctx context.Context, id string, actor models.Actor) (*models.Session, error)
	// ListSessions retrieves a filtered page; non-privileged actors only see
	// sessions they participate in.
	ListSessions(ctx context.Context, actor models.Actor, filters models.SessionFilters) (*models.PaginatedSessions, error)
	// UpdateSession applies a lifecycle action: reschedule, cancel, or complete.
	UpdateSession(ctx context.Context, id string, actor models.Actor, req models.UpdateSessionRequest) (*models.Session, error)
}
