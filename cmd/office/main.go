package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/skischool_office/internal/app"
	"github.com/Freeeeeet/skischool_office/internal/config"
	httpapi "github.com/Freeeeeet/skischool_office/internal/controller/http"
	"github.com/Freeeeeet/skischool_office/internal/controller/state"
	"github.com/Freeeeeet/skischool_office/internal/notify"
	"github.com/Freeeeeet/skischool_office/internal/repository"
	"github.com/Freeeeeet/skischool_office/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("Service stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting ski school office",
		zap.String("environment", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Bool("notifications", cfg.NotificationsEnabled()))

	pool, err := app.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	// Хранилище сессий выбора слотов
	var store state.Store
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		store = state.NewRedisStore(client, cfg.SessionTTL, logger)
	default:
		manager := state.NewManager()
		sweeper := app.NewScheduler(manager, cfg.SessionSweepInterval, cfg.SessionTTL, logger)
		sweeper.Start(ctx)
		defer sweeper.Stop()
		store = manager
	}

	var notifier service.Notifier = notify.NopNotifier{}
	if cfg.NotificationsEnabled() {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, logger)
		if err != nil {
			return err
		}
		notifier = tg
	}

	instructorRepo := repository.NewInstructorRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	absenceRepo := repository.NewAbsenceRepository(pool)

	schedulerService := service.NewSchedulerService(bookingRepo, absenceRepo, instructorRepo, store, logger)
	bookingService := service.NewBookingService(repository.NewTxManager(pool), instructorRepo, store, notifier, logger)

	router, err := httpapi.NewRouter(schedulerService, bookingService, httpapi.RouterConfig{
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitRPS: cfg.RateLimitRPS,
		Production:   cfg.IsProduction(),
	}, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
