package repository

import (
	"context"
	"time"

	"github.com/delivery-zones/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetGeocode получает результат геокодирования по нормализованному адресу.
	// При промахе возвращает nil, nil
	GetGeocode(ctx context.Context, address string) (*domain.GeocodeResult, error)

	// SetGeocode сохраняет результат геокодирования
	SetGeocode(ctx context.Context, address string, result *domain.GeocodeResult, ttl time.Duration) error
}
