package main

// @title Delivery Zones API
// @version 1.0.0
// @description Сервис определения зоны доставки по координатам или адресу.
// @description
// @description Основные возможности:
// @description - Определение зоны доставки по точке (приоритетный перебор зон, учет дырок)
// @description - Геокодирование адреса через Mapbox с кешем в Redis
// @description - Проверка минимальной суммы заказа для зоны
// @description - Список зон для статической карты и перезагрузка каталога

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/delivery-zones/docs/swagger"
	"github.com/delivery-zones/internal/app"
	"github.com/delivery-zones/internal/config"
	httpDelivery "github.com/delivery-zones/internal/delivery/http"
	"github.com/delivery-zones/internal/delivery/http/handler"
	"github.com/delivery-zones/internal/pkg/logger"
	"github.com/delivery-zones/internal/repository/cache"
	"github.com/delivery-zones/internal/usecase"
)

const serviceName = "zone-api"

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, serviceName)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Delivery Zones API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("zones_source", cfg.Zones.Source),
	)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Initialize Use Cases
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocodeUC := app.NewGeocodeUseCase(cfg, cacheRepo, log)
	zoneUC := usecase.NewZoneUseCase(zoneRepo, geocodeUC, app.CityCenter(cfg), log)

	// 6. Load catalog; без валидного каталога сервис не стартует
	if _, err := zoneUC.LoadCatalog(ctx); err != nil {
		log.Fatal("Failed to load delivery zone catalog", zap.Error(err))
	}

	// 7. Initialize HTTP Server
	zoneHandler := handler.NewZoneHandler(zoneUC, log)
	server := httpDelivery.NewServer(cfg, log, zoneHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
