package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/spyfall/internal/catalog"
	"github.com/KirkDiggler/spyfall/internal/common/clock"
	"github.com/KirkDiggler/spyfall/internal/common/logger"
	"github.com/KirkDiggler/spyfall/internal/common/random"
	"github.com/KirkDiggler/spyfall/internal/common/uuid"
	"github.com/KirkDiggler/spyfall/internal/config"
	"github.com/KirkDiggler/spyfall/internal/handlers/realtime"
	"github.com/KirkDiggler/spyfall/internal/lifecycle"
	sessionRepo "github.com/KirkDiggler/spyfall/internal/repositories/session"
	gameService "github.com/KirkDiggler/spyfall/internal/services/game"
	"github.com/KirkDiggler/spyfall/internal/services/messaging"
	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr, err := logger.New(&logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() {
		_ = logr.Sync()
	}()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection, giving a container started alongside us time to come up
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer pingCancel()

	_, err = backoff.Retry(pingCtx, func() (string, error) {
		return redisClient.Ping(pingCtx).Result()
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithNotify(func(err error, wait time.Duration) {
		logr.Warn("Redis not reachable yet", zap.String("addr", cfg.RedisAddr), zap.Duration("retry_in", wait), zap.Error(err))
	}))
	if err != nil {
		logr.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	rnd := random.New(&random.Config{Seed: cfg.RandomSeed})
	systemClock := clock.New()

	locations := catalog.Default()
	if len(cfg.Locations) > 0 {
		locations, err = catalog.New(cfg.Locations)
		if err != nil {
			logr.Fatal("Invalid location list", zap.Error(err))
		}
	}

	// Initialize the session registry
	registryCfg := &sessionRepo.Config{
		Clock:       systemClock,
		Random:      rnd,
		RedisClient: redisClient,
		KeyPrefix:   cfg.ChannelPrefix,
	}

	var sessions sessionRepo.Repository
	switch cfg.Registry {
	case config.RegistryRedis:
		sessions, err = sessionRepo.NewRedis(registryCfg)
	default:
		sessions, err = sessionRepo.NewMemory(registryCfg)
	}
	if err != nil {
		logr.Fatal("Failed to create session registry", zap.String("registry", cfg.Registry), zap.Error(err))
	}

	// Initialize services
	gameSvc, err := gameService.New(&gameService.Config{
		MaxPlayers:    cfg.MaxPlayers,
		MinPlayers:    cfg.MinPlayers,
		SessionRepo:   sessions,
		Catalog:       locations,
		Random:        rnd,
		Clock:         systemClock,
		UUIDGenerator: uuid.New(),
		Logger:        logr.Named("game"),
	})
	if err != nil {
		logr.Fatal("Failed to create game service", zap.Error(err))
	}

	messagingSvc, err := messaging.NewService(&messaging.Config{
		Random: rnd,
	})
	if err != nil {
		logr.Fatal("Failed to create messaging service", zap.Error(err))
	}

	// Initialize the realtime adapter
	publisher, err := realtime.NewPublisher(&realtime.PublisherConfig{
		Client:           redisClient,
		ChannelPrefix:    cfg.ChannelPrefix,
		MessagingService: messagingSvc,
		Logger:           logr.Named("publisher"),
	})
	if err != nil {
		logr.Fatal("Failed to create publisher", zap.Error(err))
	}

	continuer, err := lifecycle.NewAutoContinuer(&lifecycle.ContinuerConfig{
		GameService: gameSvc,
		Publisher:   publisher,
		Delay:       cfg.SummaryDelay,
		Logger:      logr.Named("continuer"),
	})
	if err != nil {
		logr.Fatal("Failed to create auto continuer", zap.Error(err))
	}

	dispatcher, err := realtime.NewDispatcher(&realtime.DispatcherConfig{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Publisher:        publisher,
		Scheduler:        continuer,
		Logger:           logr.Named("dispatcher"),
	})
	if err != nil {
		logr.Fatal("Failed to create dispatcher", zap.Error(err))
	}

	listener, err := realtime.NewListener(&realtime.ListenerConfig{
		Client:        redisClient,
		ChannelPrefix: cfg.ChannelPrefix,
		Handler:       dispatcher,
		Logger:        logr.Named("listener"),
	})
	if err != nil {
		logr.Fatal("Failed to create listener", zap.Error(err))
	}

	sweeper, err := lifecycle.NewSweeper(&lifecycle.SweeperConfig{
		GameService:         gameSvc,
		Interval:            cfg.SweepInterval,
		InactivityThreshold: cfg.InactivityThreshold,
		Logger:              logr.Named("sweeper"),
	})
	if err != nil {
		logr.Fatal("Failed to create sweeper", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := listener.Start(ctx); err != nil {
		logr.Fatal("Failed to start listener", zap.Error(err))
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		sweeper.Run(groupCtx)
		return nil
	})

	logr.Info("Spyfall server is running. Press CTRL-C to exit.",
		zap.String("commands", realtime.CommandChannel(cfg.ChannelPrefix)))

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := listener.Stop(); err != nil {
		logr.Warn("Error stopping listener", zap.Error(err))
	}
	continuer.Stop()
	cancel()
	if err := group.Wait(); err != nil {
		logr.Warn("Background task failed", zap.Error(err))
	}

	live, err := sessions.CountSessions(context.Background())
	if err != nil {
		logr.Warn("Failed to count sessions", zap.Error(err))
	}
	logr.Info("Spyfall server has been shut down", zap.Int("live_sessions", live))
}
