package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/delivery-zones/internal/domain"
)

// MockZoneRepository is a mock of ZoneRepository
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) ListActive(ctx context.Context) ([]*domain.DeliveryZone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DeliveryZone), args.Error(1)
}

// MockZoneStore is a mock of ZoneStore
type MockZoneStore struct {
	MockZoneRepository
}

func (m *MockZoneStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryZone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryZone), args.Error(1)
}

func (m *MockZoneStore) Save(ctx context.Context, zone *domain.DeliveryZone) error {
	args := m.Called(ctx, zone)
	return args.Error(0)
}

func (m *MockZoneStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGeocoder is a mock of GeocoderRepository
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetGeocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeocodeResult), args.Error(1)
}

func (m *MockCacheRepository) SetGeocode(ctx context.Context, address string, result *domain.GeocodeResult, ttl time.Duration) error {
	args := m.Called(ctx, address, result, ttl)
	return args.Error(0)
}

func square(minLat, minLon, maxLat, maxLon float64) []domain.Point {
	return []domain.Point{
		{Lat: minLat, Lon: minLon},
		{Lat: minLat, Lon: maxLon},
		{Lat: maxLat, Lon: maxLon},
		{Lat: maxLat, Lon: minLon},
	}
}

// testZones - центр внутри города, в городе дырка (промзона)
func testZones() []*domain.DeliveryZone {
	return []*domain.DeliveryZone{
		{
			Name:         "Центр",
			Priority:     10,
			OuterRing:    square(55.78, 49.10, 55.82, 49.16),
			MinOrder:     1000,
			DeliveryTime: "30-45 мин",
			IsActive:     true,
		},
		{
			Name:         "Город",
			Priority:     20,
			OuterRing:    square(55.70, 49.00, 55.90, 49.30),
			HoleRings:    [][]domain.Point{square(55.75, 49.05, 55.78, 49.08)},
			MinOrder:     1500,
			DeliveryTime: "60-90 мин",
			IsActive:     true,
		},
	}
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt64(v int64) *int64       { return &v }
func ptrString(v string) *string    { return &v }
