package scheduling

import (
	"context"
	"fmt"
	"time"

	availabilityRepo "coachhub/database/repository/availability"
	blockedRepo "coachhub/database/repository/blocked"
	sessionRepo "coachhub/database/repository/session"
	userRepo "coachhub/database/repository/user"
	"coachhub/models"
	"coachhub/utils"

	"github.com/go-redis/redis/v8"
)

const (
	dateLayout   = "2006-01-02"
	maxRangeDays = 30
)

// DefaultSlotEngine is the production slot expansion engine. It is read-only:
// classification never mutates any store.
type DefaultSlotEngine struct {
	Availability availabilityRepo.AvailabilityRepository
	Blocked      blockedRepo.BlockedRepository
	Sessions     sessionRepo.SessionRepository
	Users        userRepo.UserRepository
	Clock        utils.Clock
	Cache        *redis.Client // optional; nil disables the availability cache
}

func (e *DefaultSlotEngine) GetCoachAvailability(ctx context.Context, query AvailabilityQuery) ([]models.DayAvailability, error) {
	duration := query.DurationMinutes
	if duration == 0 {
		duration = models.DefaultSessionDuration
	}
	if duration < models.MinSessionDuration || duration > models.MaxSessionDuration {
		return nil, utils.NewValidationError(fmt.Sprintf("duration must be between %d and %d minutes", models.MinSessionDuration, models.MaxSessionDuration))
	}

	startDate, err := time.Parse(dateLayout, query.StartDate)
	if err != nil {
		return nil, utils.NewValidationError("startDate must be formatted as YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, query.EndDate)
	if err != nil {
		return nil, utils.NewValidationError("endDate must be formatted as YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return nil, utils.NewValidationError("endDate must not be before startDate")
	}
	if int(endDate.Sub(startDate).Hours()/24)+1 > maxRangeDays {
		return nil, utils.NewValidationError(fmt.Sprintf("date range must not exceed %d days", maxRangeDays))
	}

	coach, err := e.Users.GetByID(ctx, query.CoachID)
	if err != nil || coach.Role != models.RoleCoach {
		return nil, utils.NewNotFoundError("coach not found")
	}

	if cached, ok := e.cachedAvailability(ctx, query, duration); ok {
		return cached, nil
	}

	windows, err := e.Availability.GetActiveByCoach(ctx, query.CoachID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability windows: %w", err)
	}

	// First pass: expand every matching window into raw slots per day.
	days := make([]models.DayAvailability, 0, int(endDate.Sub(startDate).Hours()/24)+1)
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		day := models.DayAvailability{Date: date.Format(dateLayout)}
		for _, w := range windows {
			if w.DayOfWeek != int(date.Weekday()) {
				continue
			}
			day.Slots = append(day.Slots, expandWindow(date, w, duration)...)
		}
		day.Slots = normalizeDaySlots(day.Slots)
		days = append(days, day)
	}

	// Second pass: classify against sessions and blocks covering the full span.
	from, to, hasSlots := slotBounds(days)
	if hasSlots {
		sessions, err := e.Sessions.ListScheduledInRange(ctx, query.CoachID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load sessions: %w", err)
		}
		blocks, err := e.Blocked.ListByCoach(ctx, query.CoachID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load blocked ranges: %w", err)
		}
		now := e.Clock.Now()
		for di := range days {
			for si := range days[di].Slots {
				classifySlot(&days[di].Slots[si], sessions, blocks, now)
			}
		}
	}

	e.storeAvailability(ctx, query, duration, days)
	return days, nil
}

// slotBounds returns the span covered by all expanded slots.
func slotBounds(days []models.DayAvailability) (from, to time.Time, ok bool) {
	for _, day := range days {
		for _, slot := range day.Slots {
			if !ok || slot.StartAt.Before(from) {
				from = slot.StartAt
			}
			if !ok || slot.EndAt.After(to) {
				to = slot.EndAt
			}
			ok = true
		}
	}
	return from, to, ok
}
