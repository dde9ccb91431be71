package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/sirwalterjones/sessionremind/internal/config"
	"github.com/sirwalterjones/sessionremind/internal/dispatch"
	"github.com/sirwalterjones/sessionremind/internal/email"
	"github.com/sirwalterjones/sessionremind/internal/repository/postgres"
	usageService "github.com/sirwalterjones/sessionremind/internal/service/usage"
	"github.com/sirwalterjones/sessionremind/internal/sms"
	"github.com/sirwalterjones/sessionremind/internal/worker"
	"github.com/sirwalterjones/sessionremind/pkg/logger"
	"github.com/sirwalterjones/sessionremind/pkg/metrics"
)

// workerEnv holds worker-tier overrides that do not belong in the shared
// config file.
type workerEnv struct {
	MetricsPort  int           `envconfig:"METRICS_PORT" default:"9091"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var env workerEnv
	if err := envconfig.Process("SESSIONREMIND", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to read worker environment")
	}
	pollInterval := cfg.Dispatch.PollInterval
	if env.PollInterval > 0 {
		pollInterval = env.PollInterval
	}

	lgr := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	messageRepo := postgres.NewMessageRepository(db)
	usageRepo := postgres.NewUsageRepository(db)
	userRepo := postgres.NewUserRepository(db)

	gate, err := dispatch.NewGate(cfg.Dispatch.Zone, cfg.Dispatch.ThresholdHour)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build delivery gate")
	}

	usageSvc := usageService.NewService(usageRepo, gate.Location())
	emailSvc := email.NewService(cfg.Email, userRepo, lgr)
	m := metrics.NewMetrics("sessionremind", "worker")

	smsClient := sms.NewClient(sms.Config{
		BaseURL:  cfg.SMS.BaseURL,
		Username: cfg.SMS.Username,
		APIKey:   cfg.SMS.APIKey,
		Timeout:  cfg.SMS.Timeout,
	}).WithMetrics(m.GatewayRequests)

	cycle := dispatch.NewCycle(messageRepo, gate, smsClient, usageSvc, lgr).
		WithFailureNotifier(emailSvc)

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
		PollInterval: pollInterval,
	}, lgr, m)

	// Metrics endpoint for the worker tier
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", env.MetricsPort)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go dispatcher.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")
	cancel()
}
