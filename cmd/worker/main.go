package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/delivery-zones/internal/app"
	"github.com/delivery-zones/internal/config"
	"github.com/delivery-zones/internal/pkg/logger"
	"github.com/delivery-zones/internal/repository/cache"
	redisRepo "github.com/delivery-zones/internal/repository/redis"
	"github.com/delivery-zones/internal/usecase"
	"github.com/delivery-zones/internal/worker"
	"github.com/delivery-zones/internal/worker/zone"
)

const serviceName = "zone-worker"

// catalogRefreshInterval - как часто воркер перечитывает каталог зон
const catalogRefreshInterval = 5 * time.Minute

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, serviceName)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Zone Resolution Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("process_timeout", cfg.Worker.ProcessTimeout),
		zap.String("zones_source", cfg.Zones.Source))

	// 3. Open zone source
	zoneRepo, zoneCloser, err := app.NewZoneRepository(cfg, log)
	if err != nil {
		log.Fatal("Failed to open delivery zone source", zap.Error(err))
	}
	defer func() {
		if err := zoneCloser.Close(); err != nil {
			log.Error("Failed to close delivery zone source", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 5. Use cases
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	geocodeUC := app.NewGeocodeUseCase(cfg, cacheRepo, log)
	zoneUC := usecase.NewZoneUseCase(zoneRepo, geocodeUC, app.CityCenter(cfg), log)

	if _, err := zoneUC.LoadCatalog(ctx); err != nil {
		log.Fatal("Failed to load delivery zone catalog", zap.Error(err))
	}

	// Периодическое обновление каталога; при ошибке остается прежний
	go func() {
		ticker := time.NewTicker(catalogRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := zoneUC.LoadCatalog(ctx); err != nil {
					log.Warn("Catalog refresh failed, keeping previous catalog", zap.Error(err))
				}
			}
		}
	}()

	// 6. Workers
	manager := worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
	manager.Register(zone.NewResolutionWorker(
		streamRepo,
		zoneUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		cfg.Worker.ProcessTimeout,
		log,
	))

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Worker started successfully")

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker gracefully...")

	if err := manager.Stop(); err != nil {
		log.Error("Worker shutdown error", zap.Error(err))
	}
	cancel()

	log.Info("Worker stopped successfully")
}
