package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const geocodeKeyPrefix = "geocode:"

type cacheRepository struct {
	client redis.Cmdable
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// NewCacheRepositoryWithClient создает репозиторий поверх произвольного клиента (тесты, кластер)
func NewCacheRepositoryWithClient(client redis.Cmdable, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// GetGeocode получает результат геокодирования из кеша
func (r *cacheRepository) GetGeocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	data, err := r.Get(ctx, GeocodeKey(address))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var result domain.GeocodeResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Error("Failed to unmarshal geocode result from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal geocode result: %w", err)
	}

	return &result, nil
}

// SetGeocode сохраняет результат геокодирования в кеше
func (r *cacheRepository) SetGeocode(ctx context.Context, address string, result *domain.GeocodeResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		r.logger.Error("Failed to marshal geocode result", zap.Error(err))
		return fmt.Errorf("marshal geocode result: %w", err)
	}

	return r.Set(ctx, GeocodeKey(address), data, ttl)
}

// GeocodeKey строит ключ кеша для адреса
func GeocodeKey(address string) string {
	return geocodeKeyPrefix + utils.NormalizeAddress(address)
}
