package feedbackRepo

import (
	"context"
	"errors"

	"coachhub/models"
)

// ErrDuplicateFeedback is returned when feedback already exists for a session.
var ErrDuplicateFeedback = errors.New("feedback already exists for session")

// FeedbackRepository stores session feedback. Records are write-once: there is
// no update or delete.
type FeedbackRepository interface {
	// Create inserts the feedback record. The unique session index makes a
	// second submission fail with ErrDuplicateFeedback.
	Create(ctx context.Context, feedback *models.SessionFeedback) error
	// GetBySessionID retrieves the feedback for a session, if any.
	GetBySessionID(ctx context.Context, sessionID string) (*models.SessionFeedback, error)
}
