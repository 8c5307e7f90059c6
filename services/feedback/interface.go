package feedback

import (
	"context"

	"coachhub/models"
)

// Gate accepts exactly one feedback record per completed session.
type Gate interface {
	// SubmitFeedback creates the session's single feedback record. The mentee
	// (or a privileged actor) may submit, and only after completion.
	SubmitFeedback(ctx context.Context, sessionID string, actor models.Actor, req models.SubmitFeedbackRequest) (*models.SessionFeedback, error)
	// GetFeedback returns the feedback for a session, if any.
	GetFeedback(ctx context.Context, sessionID string, actor models.Actor) (*models.SessionFeedback, error)
}
