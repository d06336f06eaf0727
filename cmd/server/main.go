package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kidnest/kidnest-backend/internal/config"
	"github.com/kidnest/kidnest-backend/internal/database"
	"github.com/kidnest/kidnest-backend/internal/handler"
	"github.com/kidnest/kidnest-backend/internal/logger"
	"github.com/kidnest/kidnest-backend/internal/repository"
	"github.com/kidnest/kidnest-backend/internal/router"
	"github.com/kidnest/kidnest-backend/internal/service"
	"github.com/kidnest/kidnest-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Kidnest Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	db, err := database.NewMongoDatabase(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		if err := database.Disconnect(context.Background(), db); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect error")
		}
	}()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	parentRepo := repository.NewParentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	childRepo := repository.NewChildRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	userService := service.NewUserService(userRepo)
	identityService := service.NewIdentityService(userRepo)
	rosterService := service.NewRosterService(parentRepo, teacherRepo, childRepo, log)
	eventService := service.NewEventService(rosterService, eventRepo, classroomRepo, log)
	feedbackService := service.NewFeedbackService(eventRepo, childRepo, log)

	var pushSender service.PushSender
	if sender := service.NewFCMSender(cfg.FCMEndpoint, cfg.FCMServerKey); sender != nil {
		pushSender = sender
	} else {
		log.Warn().Msg("FCM server key not set; push dispatch disabled")
	}
	notificationService := service.NewNotificationService(pushSender, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, userService, identityService),
		User:         handler.NewUserHandler(userService, identityService),
		Event:        handler.NewEventHandler(identityService, eventService),
		Feedback:     handler.NewFeedbackHandler(identityService, feedbackService),
		Notification: handler.NewNotificationHandler(identityService, notificationService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
