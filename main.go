// File: coachhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coachhub/config"
	"coachhub/cron"
	"coachhub/database"
	availabilityRepo "coachhub/database/repository/availability"
	blockedRepo "coachhub/database/repository/blocked"
	feedbackRepo "coachhub/database/repository/feedback"
	sessionRepo "coachhub/database/repository/session"
	userRepoPkg "coachhub/database/repository/user"
	"coachhub/handlers"
	"coachhub/middleware"
	"coachhub/routes"
	availabilitySvc "coachhub/services/availability"
	"coachhub/services/booking"
	"coachhub/services/feedback"
	"coachhub/services/scheduling"
	"coachhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	blockRepo := blockedRepo.NewMongoBlockedRepo()
	sessRepo := sessionRepo.NewMongoSessionRepo()
	fbRepo := feedbackRepo.NewMongoFeedbackRepo()

	cacheClient := utils.GetCacheClient()
	clock := utils.SystemClock{}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer taskClient.Close()

	// services.
	slotEngine := &scheduling.DefaultSlotEngine{
		Availability: availRepo,
		Blocked:      blockRepo,
		Sessions:     sessRepo,
		Users:        userRepo,
		Clock:        clock,
		Cache:        cacheClient,
	}

	sessionService := &booking.DefaultSessionService{
		Sessions: sessRepo,
		Users:    userRepo,
		Clock:    clock,
		Tasks:    taskClient,
		Cache:    cacheClient,
	}

	availabilityService := &availabilitySvc.DefaultService{
		Availability: availRepo,
		Blocked:      blockRepo,
		Users:        userRepo,
		Clock:        clock,
		Cache:        cacheClient,
	}

	feedbackGate := &feedback.DefaultGate{
		Feedback: fbRepo,
		Sessions: sessRepo,
		Clock:    clock,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService, slotEngine),
		Sessions:     handlers.NewSessionHandler(sessionService),
		Feedback:     handlers.NewFeedbackHandler(feedbackGate),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the async completion worker.
	cron.InitCompletionWorker(cacheClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
