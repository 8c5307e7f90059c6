package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coachhub/models"
	"coachhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Availability views change whenever a booking or schedule mutation lands, so
// the cache is short-lived and mutations flush a coach's keys eagerly.
const availabilityCacheTTL = 60 * time.Second

func availabilityCacheKey(query AvailabilityQuery, duration int) string {
	return fmt.Sprintf("availability:%s:%s:%s:%d", query.CoachID, query.StartDate, query.EndDate, duration)
}

func (e *DefaultSlotEngine) cachedAvailability(ctx context.Context, query AvailabilityQuery, duration int) ([]models.DayAvailability, bool) {
	if e.Cache == nil {
		return nil, false
	}
	data, err := e.Cache.Get(ctx, availabilityCacheKey(query, duration)).Result()
	if err != nil {
		return nil, false
	}
	var days []models.DayAvailability
	if err := json.Unmarshal([]byte(data), &days); err != nil {
		return nil, false
	}
	return days, true
}

func (e *DefaultSlotEngine) storeAvailability(ctx context.Context, query AvailabilityQuery, duration int, days []models.DayAvailability) {
	if e.Cache == nil {
		return
	}
	data, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := e.Cache.Set(ctx, availabilityCacheKey(query, duration), data, availabilityCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache availability", zap.String("coachID", query.CoachID), zap.Error(err))
	}
}

// InvalidateCoachAvailability drops every cached availability view for a
// coach. Called after bookings, reschedules, cancellations, and schedule or
// blocked-range changes.
func InvalidateCoachAvailability(ctx context.Context, client *redis.Client, coachID string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, fmt.Sprintf("availability:%s:*", coachID), 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			utils.GetLogger().Warn("failed to invalidate availability cache", zap.String("coachID", coachID), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		utils.GetLogger().Warn("availability cache scan failed", zap.String("coachID", coachID), zap.Error(err))
	}
}
