package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/pkg/metrics"
	"github.com/delivery-zones/internal/pkg/utils"
)

// GeocodeUseCase - адрес в координату: кеш, затем провайдер, затем политика подстановки
type GeocodeUseCase struct {
	geocoder  repository.GeocoderRepository
	cacheRepo repository.CacheRepository
	fallback  FallbackPolicy
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewGeocodeUseCase - создание нового GeocodeUseCase.
// geocoder может быть nil, если токен провайдера не настроен; cacheRepo тоже опционален.
func NewGeocodeUseCase(
	geocoder repository.GeocoderRepository,
	cacheRepo repository.CacheRepository,
	fallback FallbackPolicy,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *GeocodeUseCase {
	if fallback == nil {
		fallback = NoFallback{}
	}
	return &GeocodeUseCase{
		geocoder:  geocoder,
		cacheRepo: cacheRepo,
		fallback:  fallback,
		logger:    logger,
		cacheTTL:  cacheTTL,
	}
}

// Geocode возвращает первую найденную координату адреса.
// Ошибки: ErrInvalidRequest (пустой адрес), ErrAddressNotFound, ErrGeocoderUnavailable.
func (uc *GeocodeUseCase) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	if utils.NormalizeAddress(address) == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"address": "required",
		})
	}

	if cached := uc.fromCache(ctx, address); cached != nil {
		return cached, nil
	}

	result, err := uc.fromProvider(ctx, address)
	if err == nil {
		uc.toCache(ctx, address, result)
		return result, nil
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if point, ok := uc.fallback.Fallback(address, err); ok {
		metrics.GeocodeRequestsTotal.WithLabelValues("fallback").Inc()
		uc.logger.Warn("Using fallback coordinate for address",
			zap.String("address", address),
			zap.String("policy", uc.fallback.Name()),
			zap.Error(err))
		return &domain.GeocodeResult{
			Point:  point,
			Source: domain.GeocodeSourceFallback,
		}, nil
	}

	return nil, err
}

func (uc *GeocodeUseCase) fromCache(ctx context.Context, address string) *domain.GeocodeResult {
	if uc.cacheRepo == nil {
		return nil
	}

	cached, err := uc.cacheRepo.GetGeocode(ctx, address)
	if err != nil {
		// Кеш недоступен - идем к провайдеру
		uc.logger.Warn("Failed to read geocode cache", zap.Error(err))
		return nil
	}
	if cached == nil {
		metrics.GeocodeCacheMissesTotal.Inc()
		return nil
	}

	metrics.GeocodeCacheHitsTotal.Inc()
	cached.Source = domain.GeocodeSourceCache
	return cached
}

func (uc *GeocodeUseCase) toCache(ctx context.Context, address string, result *domain.GeocodeResult) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.SetGeocode(ctx, address, result, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache geocode result", zap.Error(err))
	}
}

func (uc *GeocodeUseCase) fromProvider(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	if uc.geocoder == nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("disabled").Inc()
		return nil, errors.ErrGeocoderUnavailable
	}

	result, err := uc.geocoder.Geocode(ctx, address)
	switch {
	case err == nil:
		metrics.GeocodeRequestsTotal.WithLabelValues("ok").Inc()
		return result, nil
	case stderrors.Is(err, errors.ErrAddressNotFound):
		metrics.GeocodeRequestsTotal.WithLabelValues("not_found").Inc()
		return nil, errors.ErrAddressNotFound
	default:
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		uc.logger.Error("Geocoder request failed", zap.String("address", address), zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.ErrGeocoderUnavailable
	}
}
