package feedback

import (
	"context"
	"errors"
	"fmt"

	feedbackRepo "coachhub/database/repository/feedback"
	sessionRepo "coachhub/database/repository/session"
	"coachhub/models"
	"coachhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultGate is the production feedback gate.
type DefaultGate struct {
	Feedback feedbackRepo.FeedbackRepository
	Sessions sessionRepo.SessionRepository
	Clock    utils.Clock
}

func (g *DefaultGate) SubmitFeedback(ctx context.Context, sessionID string, actor models.Actor, req models.SubmitFeedbackRequest) (*models.SessionFeedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}

	session, err := g.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, utils.NewNotFoundError("session not found")
	}
	if actor.ID != session.MenteeID && !actor.IsPrivileged() {
		return nil, utils.NewForbiddenError("only the mentee can submit feedback")
	}
	if session.Status != models.SessionCompleted {
		return nil, utils.NewValidationError("feedback only after completion")
	}

	record := &models.SessionFeedback{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		CoachID:   session.CoachID,
		MenteeID:  session.MenteeID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: g.Clock.Now(),
	}
	if req.WouldRecommend != nil {
		record.WouldRecommend = *req.WouldRecommend
	}
	if req.IsPublic != nil {
		record.IsPublic = *req.IsPublic
	}
	if len(req.Highlights) > 0 {
		record.Highlights = req.Highlights
	}

	if err := g.Feedback.Create(ctx, record); err != nil {
		if errors.Is(err, feedbackRepo.ErrDuplicateFeedback) {
			return nil, utils.NewConflictError("feedback already submitted")
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	utils.GetLogger().Info("feedback submitted",
		zap.String("sessionID", session.ID), zap.Int("rating", record.Rating))
	return record, nil
}

func (g *DefaultGate) GetFeedback(ctx context.Context, sessionID string, actor models.Actor) (*models.SessionFeedback, error) {
	session, err := g.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, utils.NewNotFoundError("session not found")
	}
	if !session.IsParticipant(actor.ID) && !actor.IsPrivileged() {
		return nil, utils.NewForbiddenError("access to this session is restricted to its participants")
	}
	record, err := g.Feedback.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, utils.NewNotFoundError("no feedback for this session")
	}
	return record, nil
}
