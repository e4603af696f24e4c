// Package app собирает зависимости, общие для cmd/api и cmd/worker
package app

import (
	"io"

	"go.uber.org/zap"

	"github.com/delivery-zones/internal/config"
	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/infrastructure/mapbox"
	"github.com/delivery-zones/internal/repository/geojson"
	"github.com/delivery-zones/internal/repository/postgres"
	"github.com/delivery-zones/internal/usecase"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewZoneRepository открывает источник зон по ZONES_SOURCE.
// Closer нужно закрыть при остановке (для файла это no-op).
func NewZoneRepository(cfg *config.Config, log *zap.Logger) (repository.ZoneRepository, io.Closer, error) {
	if cfg.Zones.Source == config.ZonesSourceFile {
		log.Info("Delivery zones source: file", zap.String("path", cfg.Zones.File))
		return geojson.NewZoneRepository(cfg.Zones.File, log), nopCloser{}, nil
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Delivery zones source: postgres")
	return postgres.NewZoneRepository(db), db, nil
}

// CityCenter - центр города из конфигурации
func CityCenter(cfg *config.Config) domain.Point {
	return domain.Point{Lat: cfg.Delivery.CityCenterLat, Lon: cfg.Delivery.CityCenterLon}
}

// NewGeocodeUseCase собирает геокодирование: Mapbox (если задан токен), кеш и политику подстановки
func NewGeocodeUseCase(cfg *config.Config, cacheRepo repository.CacheRepository, log *zap.Logger) *usecase.GeocodeUseCase {
	center := CityCenter(cfg)

	var geocoder repository.GeocoderRepository
	if cfg.Mapbox.AccessToken != "" {
		var proximity *domain.Point
		if !center.IsZero() {
			proximity = &center
		}
		geocoder = mapbox.NewMapboxClient(&cfg.Mapbox, proximity, log)
	} else {
		log.Warn("MAPBOX_ACCESS_TOKEN is not set, address geocoding is disabled")
	}

	fallback := usecase.NewFallbackPolicy(cfg.Delivery.DemoFallback, center, cfg.Delivery.FallbackSpread)
	if cfg.Delivery.DemoFallback {
		log.Warn("Demo geocoding fallback is enabled, unresolved addresses get pseudo-coordinates",
			zap.Float64("spread", cfg.Delivery.FallbackSpread))
	}

	return usecase.NewGeocodeUseCase(geocoder, cacheRepo, fallback, log, cfg.Cache.GeocodeCacheTTL)
}
