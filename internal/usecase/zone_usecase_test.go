package usecase_test

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/usecase"
	"github.com/delivery-zones/internal/usecase/dto"
)

var cityCenter = domain.Point{Lat: 55.7963, Lon: 49.1088}

func newLoadedUseCase(t *testing.T, geocoder usecase.AddressGeocoder) *usecase.ZoneUseCase {
	t.Helper()

	repo := &MockZoneRepository{}
	repo.On("ListActive", mock.Anything).Return(testZones(), nil)

	uc := usecase.NewZoneUseCase(repo, geocoder, cityCenter, zap.NewNop())
	_, err := uc.LoadCatalog(context.Background())
	require.NoError(t, err)
	return uc
}

func TestZoneUseCase_LoadCatalog(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("success", func(t *testing.T) {
		repo := &MockZoneRepository{}
		repo.On("ListActive", ctx).Return(testZones(), nil)

		uc := usecase.NewZoneUseCase(repo, nil, cityCenter, logger)
		resp, err := uc.LoadCatalog(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Zones)
		assert.Empty(t, resp.Warnings)
		assert.False(t, resp.LoadedAt.IsZero())
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &MockZoneRepository{}
		repo.On("ListActive", ctx).Return(nil, stderrors.New("connection refused"))

		uc := usecase.NewZoneUseCase(repo, nil, cityCenter, logger)
		_, err := uc.LoadCatalog(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("invalid zone keeps previous catalog", func(t *testing.T) {
		repo := &MockZoneRepository{}
		repo.On("ListActive", ctx).Return(testZones(), nil).Once()

		broken := testZones()
		broken[1].OuterRing = broken[1].OuterRing[:2]
		repo.On("ListActive", ctx).Return(broken, nil).Once()

		uc := usecase.NewZoneUseCase(repo, nil, cityCenter, logger)
		_, err := uc.LoadCatalog(ctx)
		require.NoError(t, err)

		_, err = uc.LoadCatalog(ctx)
		require.ErrorIs(t, err, errors.ErrInvalidZoneConfig)

		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		assert.Contains(t, appErr.Details["reason"], "Город")

		zones, err := uc.ListZones(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, zones.Total)
	})

	t.Run("shadowed zone produces warning", func(t *testing.T) {
		zones := testZones()
		zones[0], zones[1] = zones[1], zones[0]

		repo := &MockZoneRepository{}
		repo.On("ListActive", ctx).Return(zones, nil)

		uc := usecase.NewZoneUseCase(repo, nil, cityCenter, logger)
		resp, err := uc.LoadCatalog(ctx)

		require.NoError(t, err)
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "Центр")
	})
}

func TestZoneUseCase_CatalogNotLoaded(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewZoneUseCase(&MockZoneRepository{}, nil, cityCenter, zap.NewNop())

	_, err := uc.ListZones(ctx)
	assert.ErrorIs(t, err, errors.ErrCatalogNotLoaded)

	_, err = uc.ResolvePoint(ctx, dto.ResolvePointRequest{Lat: ptrFloat64(55.8), Lon: ptrFloat64(49.13)})
	assert.ErrorIs(t, err, errors.ErrCatalogNotLoaded)
}

func TestZoneUseCase_ListZones(t *testing.T) {
	uc := newLoadedUseCase(t, nil)

	resp, err := uc.ListZones(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Zones, 2)

	center := resp.Zones[0]
	assert.Equal(t, "Центр", center.Name)
	assert.Equal(t, 10, center.Priority)
	assert.Len(t, center.OuterRing, 4)
	assert.Equal(t, 55.78, center.BoundingBox.MinLat)
	assert.Equal(t, 49.16, center.BoundingBox.MaxLon)

	city := resp.Zones[1]
	assert.Equal(t, "Город", city.Name)
	require.Len(t, city.HoleRings, 1)
}

func TestZoneUseCase_ResolvePoint(t *testing.T) {
	ctx := context.Background()
	uc := newLoadedUseCase(t, nil)

	tests := []struct {
		name     string
		lat, lon float64
		matched  bool
		zone     string
	}{
		{name: "center wins over city", lat: 55.80, lon: 49.13, matched: true, zone: "Центр"},
		{name: "city", lat: 55.72, lon: 49.25, matched: true, zone: "Город"},
		{name: "inside hole", lat: 55.76, lon: 49.06, matched: false},
		{name: "outside", lat: 56.50, lon: 50.00, matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.ResolvePoint(ctx, dto.ResolvePointRequest{Lat: ptrFloat64(tt.lat), Lon: ptrFloat64(tt.lon)})
			require.NoError(t, err)
			assert.Equal(t, tt.matched, resp.Matched)
			assert.Equal(t, domain.Point{Lat: tt.lat, Lon: tt.lon}, resp.Point)
			if tt.matched {
				require.NotNil(t, resp.Zone)
				assert.Equal(t, tt.zone, resp.Zone.Name)
			} else {
				assert.Nil(t, resp.Zone)
			}
		})
	}

	t.Run("invalid coordinates", func(t *testing.T) {
		_, err := uc.ResolvePoint(ctx, dto.ResolvePointRequest{Lat: ptrFloat64(91), Lon: ptrFloat64(49)})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)

		_, err = uc.ResolvePoint(ctx, dto.ResolvePointRequest{Lat: ptrFloat64(55)})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}

func TestZoneUseCase_ResolveAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("geocoded address", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "Кремлевская 1").Return(&domain.GeocodeResult{
			Point:     domain.Point{Lat: 55.80, Lon: 49.13},
			PlaceName: "Кремлевская улица, 1",
			Source:    domain.GeocodeSourceProvider,
		}, nil)

		uc := newLoadedUseCase(t, geocoder)
		resp, err := uc.ResolveAddress(ctx, dto.ResolveAddressRequest{Address: "Кремлевская 1"})

		require.NoError(t, err)
		assert.True(t, resp.Matched)
		assert.Equal(t, "Центр", resp.Zone.Name)
		require.NotNil(t, resp.Geocode)
		assert.False(t, resp.Geocode.Fallback)
		assert.Equal(t, "Кремлевская улица, 1", resp.Geocode.PlaceName)
	})

	t.Run("fallback coordinate is flagged", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "где-то").Return(&domain.GeocodeResult{
			Point:  domain.Point{Lat: 55.72, Lon: 49.25},
			Source: domain.GeocodeSourceFallback,
		}, nil)

		uc := newLoadedUseCase(t, geocoder)
		resp, err := uc.ResolveAddress(ctx, dto.ResolveAddressRequest{Address: "где-то"})

		require.NoError(t, err)
		assert.True(t, resp.Geocode.Fallback)
	})

	t.Run("address not found", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "нет такого").Return(nil, errors.ErrAddressNotFound)

		uc := newLoadedUseCase(t, geocoder)
		_, err := uc.ResolveAddress(ctx, dto.ResolveAddressRequest{Address: "нет такого"})

		assert.ErrorIs(t, err, errors.ErrAddressNotFound)
	})

	t.Run("no geocoder", func(t *testing.T) {
		uc := newLoadedUseCase(t, nil)
		_, err := uc.ResolveAddress(ctx, dto.ResolveAddressRequest{Address: "Кремлевская 1"})

		assert.ErrorIs(t, err, errors.ErrGeocoderUnavailable)
	})
}

func TestZoneUseCase_CheckDelivery(t *testing.T) {
	ctx := context.Background()
	uc := newLoadedUseCase(t, nil)

	t.Run("available", func(t *testing.T) {
		resp, err := uc.CheckDelivery(ctx, dto.CheckDeliveryRequest{
			Lat: ptrFloat64(55.80), Lon: ptrFloat64(49.13), CartTotal: 1000,
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Equal(t, int64(0), resp.Shortfall)
		assert.Equal(t, dto.MessageDeliveryAvailable, resp.Message)
		assert.Greater(t, resp.DistanceKm, 0.0)
	})

	t.Run("minimum order not reached", func(t *testing.T) {
		resp, err := uc.CheckDelivery(ctx, dto.CheckDeliveryRequest{
			Lat: ptrFloat64(55.72), Lon: ptrFloat64(49.25), CartTotal: 1200,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.True(t, resp.Matched)
		assert.Equal(t, int64(300), resp.Shortfall)
		assert.Equal(t, dto.MessageMinOrderNotMet, resp.Message)
	})

	t.Run("outside delivery area", func(t *testing.T) {
		resp, err := uc.CheckDelivery(ctx, dto.CheckDeliveryRequest{
			Lat: ptrFloat64(55.76), Lon: ptrFloat64(49.06), CartTotal: 5000,
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.False(t, resp.Matched)
		assert.Equal(t, dto.MessageOutsideArea, resp.Message)
	})

	t.Run("location required", func(t *testing.T) {
		_, err := uc.CheckDelivery(ctx, dto.CheckDeliveryRequest{CartTotal: 100})
		assert.ErrorIs(t, err, errors.ErrInvalidRequest)
	})

	t.Run("negative cart total", func(t *testing.T) {
		_, err := uc.CheckDelivery(ctx, dto.CheckDeliveryRequest{
			Lat: ptrFloat64(55.80), Lon: ptrFloat64(49.13), CartTotal: -1,
		})
		assert.ErrorIs(t, err, errors.ErrInvalidRequest)
	})
}

func TestZoneUseCase_ResolveOrder(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("coordinates with cart total", func(t *testing.T) {
		uc := newLoadedUseCase(t, nil)
		out, err := uc.ResolveOrder(ctx, &domain.ZoneResolveEvent{
			OrderID:   orderID,
			Latitude:  ptrFloat64(55.72),
			Longitude: ptrFloat64(49.25),
			CartTotal: ptrInt64(2000),
		})

		require.NoError(t, err)
		assert.Equal(t, orderID, out.OrderID)
		assert.True(t, out.Matched)
		assert.Equal(t, "Город", out.Zone.Name)
		assert.Equal(t, 20, out.Zone.Priority)
		require.NotNil(t, out.DeliveryAvailable)
		assert.True(t, *out.DeliveryAvailable)
		assert.Equal(t, int64(0), *out.Shortfall)
	})

	t.Run("address without cart total", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "Баумана 10").Return(&domain.GeocodeResult{
			Point:  domain.Point{Lat: 55.80, Lon: 49.13},
			Source: domain.GeocodeSourceCache,
		}, nil)

		uc := newLoadedUseCase(t, geocoder)
		out, err := uc.ResolveOrder(ctx, &domain.ZoneResolveEvent{
			OrderID: orderID,
			Address: ptrString("Баумана 10"),
		})

		require.NoError(t, err)
		assert.True(t, out.Matched)
		assert.Equal(t, "Центр", out.Zone.Name)
		assert.Nil(t, out.DeliveryAvailable)
		assert.Nil(t, out.Shortfall)
	})

	t.Run("address not found is reported in event", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "нет такого").Return(nil, errors.ErrAddressNotFound)

		uc := newLoadedUseCase(t, geocoder)
		out, err := uc.ResolveOrder(ctx, &domain.ZoneResolveEvent{
			OrderID: orderID,
			Address: ptrString("нет такого"),
		})

		require.NoError(t, err)
		assert.False(t, out.Matched)
		assert.Equal(t, errors.ErrAddressNotFound.Code, out.Error)
	})

	t.Run("geocoder outage is returned for retry", func(t *testing.T) {
		geocoder := &MockGeocoder{}
		geocoder.On("Geocode", ctx, "Баумана 10").Return(nil, errors.ErrGeocoderUnavailable)

		uc := newLoadedUseCase(t, geocoder)
		_, err := uc.ResolveOrder(ctx, &domain.ZoneResolveEvent{
			OrderID: orderID,
			Address: ptrString("Баумана 10"),
		})

		assert.ErrorIs(t, err, errors.ErrGeocoderUnavailable)
	})
}

func TestZoneUseCase_ConcurrentResolveAndReload(t *testing.T) {
	ctx := context.Background()
	uc := newLoadedUseCase(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				resp, err := uc.ResolvePoint(ctx, dto.ResolvePointRequest{Lat: ptrFloat64(55.80), Lon: ptrFloat64(49.13)})
				if assert.NoError(t, err) {
					assert.Equal(t, "Центр", resp.Zone.Name)
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			_, err := uc.LoadCatalog(ctx)
			assert.NoError(t, err)
		}
	}()

	wg.Wait()
}
