package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sirwalterjones/sessionremind/internal/config"
	"github.com/sirwalterjones/sessionremind/internal/dispatch"
	"github.com/sirwalterjones/sessionremind/internal/email"
	authHandler "github.com/sirwalterjones/sessionremind/internal/handler/auth"
	dispatchHandler "github.com/sirwalterjones/sessionremind/internal/handler/dispatch"
	extractHandler "github.com/sirwalterjones/sessionremind/internal/handler/extract"
	healthHandler "github.com/sirwalterjones/sessionremind/internal/handler/health"
	messageHandler "github.com/sirwalterjones/sessionremind/internal/handler/message"
	usageHandler "github.com/sirwalterjones/sessionremind/internal/handler/usage"
	"github.com/sirwalterjones/sessionremind/internal/middleware"
	"github.com/sirwalterjones/sessionremind/internal/repository/postgres"
	"github.com/sirwalterjones/sessionremind/internal/router"
	authService "github.com/sirwalterjones/sessionremind/internal/service/auth"
	messageService "github.com/sirwalterjones/sessionremind/internal/service/message"
	usageService "github.com/sirwalterjones/sessionremind/internal/service/usage"
	"github.com/sirwalterjones/sessionremind/internal/sms"
	"github.com/sirwalterjones/sessionremind/internal/worker"
	"github.com/sirwalterjones/sessionremind/pkg/logger"
	"github.com/sirwalterjones/sessionremind/pkg/metrics"
	"github.com/sirwalterjones/sessionremind/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lgr := logger.NewLogger(nil)

	if err := validator.Register(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validators")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	messageRepo := postgres.NewMessageRepository(db)
	usageRepo := postgres.NewUsageRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Delivery gate: fixed reference zone, civil-hour threshold
	gate, err := dispatch.NewGate(cfg.Dispatch.Zone, cfg.Dispatch.ThresholdHour)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build delivery gate")
	}

	// Initialize services
	messageSvc := messageService.NewService(messageRepo)
	usageSvc := usageService.NewService(usageRepo, gate.Location())
	authSvc := authService.NewService(userRepo, cfg.JWT)
	emailSvc := email.NewService(cfg.Email, userRepo, lgr)

	m := metrics.NewMetrics("sessionremind", "api")

	smsClient := sms.NewClient(sms.Config{
		BaseURL:  cfg.SMS.BaseURL,
		Username: cfg.SMS.Username,
		APIKey:   cfg.SMS.APIKey,
		Timeout:  cfg.SMS.Timeout,
	}).WithMetrics(m.GatewayRequests)

	cycle := dispatch.NewCycle(messageRepo, gate, smsClient, usageSvc, lgr).
		WithFailureNotifier(emailSvc)

	// Redis lease keeps overlapping cycle invocations from double-sending
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse Redis URL")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	lease := worker.NewLease(redisClient, "sessionremind:dispatch:lease", cfg.Dispatch.LeaseTTL)

	dispatcher := worker.NewDispatcher(cycle, lease, worker.DispatcherConfig{
		PollInterval: cfg.Dispatch.PollInterval,
	}, lgr, m)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		healthHandler.NewHandler(db),
		authHandler.NewHandler(authSvc),
		messageHandler.NewHandler(messageSvc),
		usageHandler.NewHandler(usageSvc),
		extractHandler.NewHandler(),
		dispatchHandler.NewHandler(dispatcher),
		router.Config{
			RateLimitRPS:   50,
			RateLimitBurst: 100,
			CronSecret:     cfg.Server.CronSecret,
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start in-process dispatcher loop
	dispatchCtx, stopDispatcher := context.WithCancel(context.Background())
	go dispatcher.Start(dispatchCtx)

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopDispatcher()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
