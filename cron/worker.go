package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"coachhub/config"
	"coachhub/services/booking"
	"coachhub/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// How long the pending-feedback marker stays visible to clients.
const feedbackWindow = 7 * 24 * time.Hour

// InitCompletionWorker runs the async worker that handles post-completion
// effects off the request path.
func InitCompletionWorker(cache *redis.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(booking.TypeSessionCompleted, handleSessionCompleted(cache))

	go func() {
		log.Println("[CompletionWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[CompletionWorker] failed to start worker: %v", err)
		}
	}()
}

// handleSessionCompleted records a pending-feedback marker for the mentee and
// logs the completion for analytics consumers. Certificate issuance and
// notification delivery live in separate services that consume the same task.
func handleSessionCompleted(cache *redis.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p booking.SessionCompletedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid completion payload", zap.Error(err))
			return err
		}

		if cache != nil {
			key := "feedback:pending:" + p.MenteeID + ":" + p.SessionID
			if err := cache.Set(ctx, key, p.CompletedAt, feedbackWindow).Err(); err != nil {
				utils.GetLogger().Warn("failed to record pending-feedback marker",
					zap.String("sessionID", p.SessionID), zap.Error(err))
				return err
			}
		}

		utils.GetLogger().Info("session completion processed",
			zap.String("sessionID", p.SessionID),
			zap.String("coachID", p.CoachID),
			zap.String("menteeID", p.MenteeID))
		return nil
	}
}
