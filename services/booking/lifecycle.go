package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sessionRepo "coachhub/database/repository/session"
	"coachhub/models"
	"coachhub/services/scheduling"
	"coachhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func (s *DefaultSessionService) GetSession(ctx context.Context, id string, actor models.Actor) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewNotFoundError("session not found")
	}
	if !session.IsParticipant(actor.ID) && !actor.IsPrivileged() {
		return nil, utils.NewForbiddenError("access to this session is restricted to its participants")
	}
	return session, nil
}

func (s *DefaultSessionService) ListSessions(ctx context.Context, actor models.Actor, filters models.SessionFilters) (*models.PaginatedSessions, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}

	// Non-privileged actors are pinned to their own side of the relationship.
	if !actor.IsPrivileged() {
		if actor.Role == models.RoleCoach {
			filters.CoachID = actor.ID
		} else {
			filters.MenteeID = actor.ID
		}
	}

	sessions, total, err := s.Sessions.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	return &models.PaginatedSessions{
		Sessions: sessions,
		Total:    total,
		Page:     filters.Page,
		Limit:    filters.Limit,
	}, nil
}

func (s *DefaultSessionService) UpdateSession(ctx context.Context, id string, actor models.Actor, req models.UpdateSessionRequest) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewNotFoundError("session not found")
	}
	if !session.IsParticipant(actor.ID) && !actor.IsPrivileged() {
		return nil, utils.NewForbiddenError("access to this session is restricted to its participants")
	}

	switch req.Action {
	case models.ActionReschedule:
		return s.reschedule(ctx, session, req)
	case models.ActionCancel:
		return s.cancel(ctx, session, req)
	case models.ActionComplete:
		return s.complete(ctx, session, actor)
	default:
		return nil, utils.NewValidationError("action must be reschedule, cancel, or complete")
	}
}

func (s *DefaultSessionService) reschedule(ctx context.Context, session *models.Session, req models.UpdateSessionRequest) (*models.Session, error) {
	if session.Status != models.SessionScheduled {
		return nil, utils.NewInvalidStateError("only scheduled sessions can be modified")
	}
	if req.ScheduledAt == "" {
		return nil, utils.NewValidationError("reschedule requires a new scheduledAt")
	}
	newStart, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, utils.NewValidationError("scheduledAt must be a valid RFC 3339 timestamp")
	}
	newStart = newStart.UTC()
	if !newStart.After(s.Clock.Now()) {
		return nil, utils.NewValidationError("scheduledAt must be in the future")
	}

	duration := session.DurationMinutes
	if req.DurationMinutes != 0 {
		duration = req.DurationMinutes
	}
	if duration < models.MinSessionDuration || duration > models.MaxSessionDuration {
		return nil, utils.NewValidationError(fmt.Sprintf("duration must be between %d and %d minutes", models.MinSessionDuration, models.MaxSessionDuration))
	}

	session.ScheduledAt = newStart
	session.DurationMinutes = duration
	session.ComputeEndsAt()
	session.UpdatedAt = s.Clock.Now()

	mu := s.lockCoach(session.CoachID)
	mu.Lock()
	err = s.Sessions.RescheduleIfNoConflict(ctx, session)
	mu.Unlock()
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSlotTaken) {
			return nil, utils.NewConflictError("slot no longer available")
		}
		return nil, fmt.Errorf("failed to reschedule session: %w", err)
	}

	scheduling.InvalidateCoachAvailability(ctx, s.Cache, session.CoachID)
	utils.GetLogger().Info("session rescheduled",
		zap.String("sessionID", session.ID),
		zap.Time("scheduledAt", session.ScheduledAt))
	return session, nil
}

func (s *DefaultSessionService) cancel(ctx context.Context, session *models.Session, req models.UpdateSessionRequest) (*models.Session, error) {
	if session.Status != models.SessionScheduled {
		return nil, utils.NewInvalidStateError("only scheduled sessions can be modified")
	}

	now := s.Clock.Now()
	session.Status = models.SessionCancelled
	session.CancelledAt = &now
	session.CancellationReason = req.Reason
	session.UpdatedAt = now

	if err := s.Sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to cancel session: %w", err)
	}

	scheduling.InvalidateCoachAvailability(ctx, s.Cache, session.CoachID)
	utils.GetLogger().Info("session cancelled",
		zap.String("sessionID", session.ID),
		zap.String("reason", req.Reason))
	return session, nil
}

func (s *DefaultSessionService) complete(ctx context.Context, session *models.Session, actor models.Actor) (*models.Session, error) {
	if actor.ID != session.CoachID && !actor.IsPrivileged() {
		return nil, utils.NewForbiddenError("only the coach can complete a session")
	}
	if session.Status != models.SessionScheduled {
		return nil, utils.NewInvalidStateError("only scheduled sessions can be modified")
	}

	now := s.Clock.Now()
	session.Status = models.SessionCompleted
	session.CompletedAt = &now
	session.UpdatedAt = now

	if err := s.Sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	s.enqueueCompletion(session)
	utils.GetLogger().Info("session completed", zap.String("sessionID", session.ID))
	return session, nil
}

// enqueueCompletion hands downstream effects to the async worker. A queue
// failure is logged, not surfaced; the completion itself already committed.
func (s *DefaultSessionService) enqueueCompletion(session *models.Session) {
	if s.Tasks == nil {
		return
	}
	payload, err := json.Marshal(SessionCompletedPayload{
		SessionID:   session.ID,
		CoachID:     session.CoachID,
		MenteeID:    session.MenteeID,
		CompletedAt: session.CompletedAt.Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	if _, err := s.Tasks.Enqueue(asynq.NewTask(TypeSessionCompleted, payload)); err != nil {
		utils.GetLogger().Warn("failed to enqueue completion task",
			zap.String("sessionID", session.ID), zap.Error(err))
	}
}
