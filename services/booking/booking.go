package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionRepo "coachhub/database/repository/session"
	userRepo "coachhub/database/repository/user"
	"coachhub/models"
	"coachhub/services/scheduling"
	"coachhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultSessionService is the production booking engine and lifecycle manager.
type DefaultSessionService struct {
	Sessions sessionRepo.SessionRepository
	Users    userRepo.UserRepository
	Clock    utils.Clock
	Tasks    *asynq.Client // optional; completion tasks are skipped when nil
	Cache    *redis.Client // optional; availability cache to invalidate

	// coachLocks serializes conflict-checked writes per coach so two
	// concurrent requests for the same open slot cannot both pass the check.
	coachLocks sync.Map
}

func (s *DefaultSessionService) lockCoach(coachID string) *sync.Mutex {
	mu, _ := s.coachLocks.LoadOrStore(coachID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *DefaultSessionService) BookSession(ctx context.Context, menteeID string, req models.BookSessionRequest) (*models.Session, error) {
	coach, err := s.Users.GetByID(ctx, req.CoachID)
	if err != nil || coach.Role != models.RoleCoach {
		return nil, utils.NewNotFoundError("coach not found")
	}
	if req.CoachID == menteeID {
		return nil, utils.NewValidationError("cannot book yourself")
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, utils.NewValidationError("scheduledAt must be a valid RFC 3339 timestamp")
	}
	scheduledAt = scheduledAt.UTC()
	now := s.Clock.Now()
	if !scheduledAt.After(now) {
		return nil, utils.NewValidationError("scheduledAt must be in the future")
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = models.DefaultSessionDuration
	}
	if duration < models.MinSessionDuration || duration > models.MaxSessionDuration {
		return nil, utils.NewValidationError(fmt.Sprintf("duration must be between %d and %d minutes", models.MinSessionDuration, models.MaxSessionDuration))
	}

	sessionType, err := parseSessionType(req.SessionType)
	if err != nil {
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		// Default to the mentee's directory timezone when none is supplied.
		if mentee, err := s.Users.GetByID(ctx, menteeID); err == nil {
			timezone = mentee.Timezone
		}
	}

	session := &models.Session{
		ID:              uuid.New().String(),
		CoachID:         req.CoachID,
		MenteeID:        menteeID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: duration,
		SessionType:     sessionType,
		Topic:           req.Topic,
		Notes:           req.Notes,
		Timezone:        timezone,
		Status:          models.SessionScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	session.ComputeEndsAt()

	mu := s.lockCoach(req.CoachID)
	mu.Lock()
	err = s.Sessions.CreateIfNoConflict(ctx, session)
	mu.Unlock()
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSlotTaken) {
			return nil, utils.NewConflictError("slot no longer available")
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	scheduling.InvalidateCoachAvailability(ctx, s.Cache, req.CoachID)
	utils.GetLogger().Info("session booked",
		zap.String("sessionID", session.ID),
		zap.String("coachID", session.CoachID),
		zap.String("menteeID", session.MenteeID),
		zap.Time("scheduledAt", session.ScheduledAt))
	return session, nil
}

func parseSessionType(raw string) (models.SessionType, error) {
	switch models.SessionType(raw) {
	case "":
		return models.SessionOneOnOne, nil
	case models.SessionOneOnOne, models.SessionGroup, models.SessionDiscovery:
		return models.SessionType(raw), nil
	default:
		return "", utils.NewValidationError("sessionType must be one-on-one, group, or discovery")
	}
}
