package availability

import (
	"context"
	"fmt"
	"time"

	availabilityRepo "coachhub/database/repository/availability"
	blockedRepo "coachhub/database/repository/blocked"
	userRepo "coachhub/database/repository/user"
	"coachhub/models"
	"coachhub/services/scheduling"
	"coachhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minutesPerDay = 24 * 60

// DefaultService is the production availability manager.
type DefaultService struct {
	Availability availabilityRepo.AvailabilityRepository
	Blocked      blockedRepo.BlockedRepository
	Users        userRepo.UserRepository
	Clock        utils.Clock
	Cache        *redis.Client // optional; availability cache to invalidate
}

// authorize allows the coach themselves or a privileged actor.
func authorize(coachID string, actor models.Actor) error {
	if actor.ID == coachID || actor.IsPrivileged() {
		return nil
	}
	return utils.NewForbiddenError("cannot manage another coach's schedule")
}

func (s *DefaultService) SetWeeklyAvailability(ctx context.Context, coachID string, actor models.Actor, req models.SetAvailabilityRequest) ([]models.WeeklyAvailabilityWindow, error) {
	if err := authorize(coachID, actor); err != nil {
		return nil, err
	}
	coach, err := s.Users.GetByID(ctx, coachID)
	if err != nil || coach.Role != models.RoleCoach {
		return nil, utils.NewNotFoundError("coach not found")
	}

	windows := make([]models.WeeklyAvailabilityWindow, 0, len(req.Windows))
	for i, in := range req.Windows {
		if in.DayOfWeek < 0 || in.DayOfWeek > 6 {
			return nil, utils.NewValidationError(fmt.Sprintf("window %d: dayOfWeek must be between 0 and 6", i))
		}
		if in.StartMinute < 0 || in.EndMinute > minutesPerDay || in.EndMinute <= in.StartMinute {
			return nil, utils.NewValidationError(fmt.Sprintf("window %d: end time must be after start time", i))
		}
		if in.Timezone != "" {
			if _, err := time.LoadLocation(in.Timezone); err != nil {
				return nil, utils.NewValidationError(fmt.Sprintf("window %d: unknown timezone %q", i, in.Timezone))
			}
		}
		// Windows on the same day must not overlap, or slot expansion would
		// emit the shared interval twice.
		for j := 0; j < i; j++ {
			other := req.Windows[j]
			if other.DayOfWeek == in.DayOfWeek && in.StartMinute < other.EndMinute && in.EndMinute > other.StartMinute {
				return nil, utils.NewValidationError(fmt.Sprintf("window %d: overlaps window %d on day %d", i, j, in.DayOfWeek))
			}
		}
		active := true
		if in.IsActive != nil {
			active = *in.IsActive
		}
		windows = append(windows, models.WeeklyAvailabilityWindow{
			ID:          uuid.New().String(),
			CoachID:     coachID,
			DayOfWeek:   in.DayOfWeek,
			StartMinute: in.StartMinute,
			EndMinute:   in.EndMinute,
			Timezone:    in.Timezone,
			IsActive:    active,
		})
	}

	if err := s.Availability.ReplaceForCoach(ctx, coachID, windows); err != nil {
		return nil, fmt.Errorf("failed to replace availability: %w", err)
	}

	scheduling.InvalidateCoachAvailability(ctx, s.Cache, coachID)
	utils.GetLogger().Info("weekly availability replaced",
		zap.String("coachID", coachID), zap.Int("windows", len(windows)))
	return windows, nil
}

func (s *DefaultService) GetWeeklyAvailability(ctx context.Context, coachID string, actor models.Actor) ([]models.WeeklyAvailabilityWindow, error) {
	if err := authorize(coachID, actor); err != nil {
		return nil, err
	}
	windows, err := s.Availability.GetByCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	if windows == nil {
		windows = []models.WeeklyAvailabilityWindow{}
	}
	return windows, nil
}

func (s *DefaultService) AddBlockedRange(ctx context.Context, coachID string, actor models.Actor, req models.BlockTimeRequest) (*models.BlockedTimeRange, error) {
	if err := authorize(coachID, actor); err != nil {
		return nil, err
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, utils.NewValidationError("startAt must be a valid RFC 3339 timestamp")
	}
	endAt, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, utils.NewValidationError("endAt must be a valid RFC 3339 timestamp")
	}
	if !endAt.After(startAt) {
		return nil, utils.NewValidationError("endAt must be after startAt")
	}

	block := &models.BlockedTimeRange{
		ID:        uuid.New().String(),
		CoachID:   coachID,
		StartAt:   startAt.UTC(),
		EndAt:     endAt.UTC(),
		Reason:    req.Reason,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Blocked.Create(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to create blocked range: %w", err)
	}

	scheduling.InvalidateCoachAvailability(ctx, s.Cache, coachID)
	return block, nil
}

func (s *DefaultService) RemoveBlockedRange(ctx context.Context, coachID string, actor models.Actor, blockID string) error {
	if err := authorize(coachID, actor); err != nil {
		return err
	}
	if err := s.Blocked.Delete(ctx, coachID, blockID); err != nil {
		return utils.NewNotFoundError("blocked range not found")
	}
	scheduling.InvalidateCoachAvailability(ctx, s.Cache, coachID)
	return nil
}

func (s *DefaultService) ListBlockedRanges(ctx context.Context, coachID string, actor models.Actor, from, to time.Time) ([]models.BlockedTimeRange, error) {
	if err := authorize(coachID, actor); err != nil {
		return nil, err
	}
	if from.IsZero() {
		from = s.Clock.Now()
	}
	if to.IsZero() {
		to = from.AddDate(0, 3, 0)
	}
	blocks, err := s.Blocked.ListByCoach(ctx, coachID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked ranges: %w", err)
	}
	if blocks == nil {
		blocks = []models.BlockedTimeRange{}
	}
	return blocks, nil
}
