package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/pkg/geofence"
	"github.com/delivery-zones/internal/pkg/metrics"
	"github.com/delivery-zones/internal/pkg/utils"
	"github.com/delivery-zones/internal/usecase/dto"
)

// AddressGeocoder - то, что нужно ZoneUseCase от геокодирования
type AddressGeocoder interface {
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)
}

// catalogState - неизменяемый снимок каталога, подменяется целиком
type catalogState struct {
	catalog *geofence.Catalog
	// priorities[i] - сохраненный приоритет i-й зоны каталога
	priorities []int
	warnings   []string
	loadedAt   time.Time
}

// located - точка заказа и способ, которым она получена
type located struct {
	point   domain.Point
	geocode *dto.GeocodeDTO
}

// ZoneUseCase - определение зоны доставки по координатам или адресу
type ZoneUseCase struct {
	zoneRepo   repository.ZoneRepository
	geocoder   AddressGeocoder
	cityCenter domain.Point
	logger     *zap.Logger

	state atomic.Pointer[catalogState]
}

// NewZoneUseCase - создание нового ZoneUseCase. Каталог пуст до первого LoadCatalog.
func NewZoneUseCase(
	zoneRepo repository.ZoneRepository,
	geocoder AddressGeocoder,
	cityCenter domain.Point,
	logger *zap.Logger,
) *ZoneUseCase {
	return &ZoneUseCase{
		zoneRepo:   zoneRepo,
		geocoder:   geocoder,
		cityCenter: cityCenter,
		logger:     logger,
	}
}

// LoadCatalog читает зоны из источника, строит каталог и атомарно подменяет текущий.
// При ошибке валидации текущий каталог остается прежним.
func (uc *ZoneUseCase) LoadCatalog(ctx context.Context) (*dto.ReloadResponse, error) {
	zones, err := uc.zoneRepo.ListActive(ctx)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("error").Inc()
		uc.logger.Error("Failed to load delivery zones", zap.Error(err))
		return nil, fmt.Errorf("load zones: %w", err)
	}

	state, err := buildState(zones)
	if err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues("invalid").Inc()
		uc.logger.Error("Delivery zone configuration is invalid", zap.Error(err))
		return nil, errors.ErrInvalidZoneConfig.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	for _, w := range state.warnings {
		uc.logger.Warn("Delivery zone is shadowed", zap.String("issue", w))
	}

	uc.state.Store(state)
	metrics.CatalogReloadsTotal.WithLabelValues("ok").Inc()
	metrics.CatalogZones.Set(float64(state.catalog.Len()))

	uc.logger.Info("Delivery zone catalog loaded",
		zap.Int("zones", state.catalog.Len()),
		zap.Int("warnings", len(state.warnings)))

	return &dto.ReloadResponse{
		Zones:    state.catalog.Len(),
		Warnings: state.warnings,
		LoadedAt: state.loadedAt,
	}, nil
}

// BuildDefinitions переводит сохраненные зоны в определения каталога, сохраняя порядок
func BuildDefinitions(zones []*domain.DeliveryZone) []geofence.ZoneDefinition {
	defs := make([]geofence.ZoneDefinition, 0, len(zones))
	for _, z := range zones {
		def := geofence.ZoneDefinition{
			Name:         z.Name,
			Color:        z.Color,
			OuterRing:    toRing(z.OuterRing),
			MinOrder:     z.MinOrder,
			DeliveryTime: z.DeliveryTime,
		}
		if z.ID != uuid.Nil {
			def.ID = z.ID.String()
		}
		for _, hole := range z.HoleRings {
			def.HoleRings = append(def.HoleRings, toRing(hole))
		}
		defs = append(defs, def)
	}
	return defs
}

func buildState(zones []*domain.DeliveryZone) (*catalogState, error) {
	catalog, err := geofence.BuildCatalog(BuildDefinitions(zones))
	if err != nil {
		return nil, err
	}

	priorities := make([]int, len(zones))
	for i, z := range zones {
		priorities[i] = z.Priority
	}

	var warnings []string
	for _, issue := range geofence.CheckNesting(catalog) {
		warnings = append(warnings, issue.String())
	}

	return &catalogState{
		catalog:    catalog,
		priorities: priorities,
		warnings:   warnings,
		loadedAt:   time.Now().UTC(),
	}, nil
}

// ListZones возвращает зоны текущего каталога в порядке приоритета
func (uc *ZoneUseCase) ListZones(ctx context.Context) (*dto.ListZonesResponse, error) {
	state, err := uc.current()
	if err != nil {
		return nil, err
	}

	zones := state.catalog.Zones()
	result := make([]dto.ZoneDTO, 0, len(zones))
	for i, z := range zones {
		b := z.Bound()
		item := dto.ZoneDTO{
			ID:           z.ID,
			Name:         z.Name,
			Color:        z.Color,
			Priority:     state.priorities[i],
			MinOrder:     z.MinOrder,
			DeliveryTime: z.DeliveryTime,
			OuterRing:    fromRing(z.Polygon.Outer),
			BoundingBox: domain.BoundingBox{
				MinLat: b.Min.Lat(), MinLon: b.Min.Lon(),
				MaxLat: b.Max.Lat(), MaxLon: b.Max.Lon(),
			},
		}
		for _, hole := range z.Polygon.Holes {
			item.HoleRings = append(item.HoleRings, fromRing(hole))
		}
		result = append(result, item)
	}

	return &dto.ListZonesResponse{
		Zones:    result,
		Total:    len(result),
		LoadedAt: state.loadedAt,
	}, nil
}

// ResolvePoint определяет зону по координатам
func (uc *ZoneUseCase) ResolvePoint(ctx context.Context, req dto.ResolvePointRequest) (*dto.ResolveResponse, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, errors.ErrInvalidCoordinates
	}

	state, err := uc.current()
	if err != nil {
		return nil, err
	}

	loc, err := uc.fromCoordinates(*req.Lat, *req.Lon)
	if err != nil {
		return nil, err
	}

	return uc.resolveResponse(state, loc, metrics.SourceCoordinate), nil
}

// ResolveAddress геокодирует адрес и определяет зону
func (uc *ZoneUseCase) ResolveAddress(ctx context.Context, req dto.ResolveAddressRequest) (*dto.ResolveResponse, error) {
	state, err := uc.current()
	if err != nil {
		return nil, err
	}

	loc, err := uc.fromAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}

	return uc.resolveResponse(state, loc, metrics.SourceAddress), nil
}

// CheckDelivery определяет зону и сравнивает сумму корзины с минимальным заказом зоны
func (uc *ZoneUseCase) CheckDelivery(ctx context.Context, req dto.CheckDeliveryRequest) (*dto.CheckDeliveryResponse, error) {
	return uc.checkDelivery(ctx, req, metrics.SourceCoordinate)
}

func (uc *ZoneUseCase) checkDelivery(ctx context.Context, req dto.CheckDeliveryRequest, source string) (*dto.CheckDeliveryResponse, error) {
	if req.CartTotal < 0 {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"cart_total": "min",
		})
	}

	state, err := uc.current()
	if err != nil {
		return nil, err
	}

	var loc *located
	switch {
	case req.HasCoordinates():
		loc, err = uc.fromCoordinates(*req.Lat, *req.Lon)
	case req.Address != "":
		loc, err = uc.fromAddress(ctx, req.Address)
		if source == metrics.SourceCoordinate {
			source = metrics.SourceAddress
		}
	default:
		err = errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"location": "lat/lon or address is required",
		})
	}
	if err != nil {
		return nil, err
	}

	resolved := uc.resolveResponse(state, loc, source)
	distance := utils.HaversineDistance(uc.cityCenter.Lat, uc.cityCenter.Lon, loc.point.Lat, loc.point.Lon)

	resp := &dto.CheckDeliveryResponse{
		Matched:    resolved.Matched,
		Zone:       resolved.Zone,
		Point:      resolved.Point,
		Geocode:    resolved.Geocode,
		CartTotal:  req.CartTotal,
		DistanceKm: math.Round(distance*100) / 100,
	}

	switch {
	case !resolved.Matched:
		resp.Message = dto.MessageOutsideArea
	case req.CartTotal < resolved.Zone.MinOrder:
		resp.Shortfall = resolved.Zone.MinOrder - req.CartTotal
		resp.Message = dto.MessageMinOrderNotMet
	default:
		resp.Available = true
		resp.Message = dto.MessageDeliveryAvailable
	}

	return resp, nil
}

// ResolveOrder обрабатывает событие из стрима: определяет зону и, если передана
// сумма корзины, проверяет минимальный заказ.
// Ошибки геокодирования и некорректные входные данные попадают в поле Error.
func (uc *ZoneUseCase) ResolveOrder(ctx context.Context, event *domain.ZoneResolveEvent) (*domain.ZoneResolvedEvent, error) {
	out := &domain.ZoneResolvedEvent{OrderID: event.OrderID}

	req := dto.CheckDeliveryRequest{
		Lat: event.Latitude,
		Lon: event.Longitude,
	}
	if event.HasAddress() {
		req.Address = *event.Address
	}
	if event.CartTotal != nil {
		req.CartTotal = *event.CartTotal
	}

	resp, err := uc.checkDelivery(ctx, req, metrics.SourceStream)
	if err != nil {
		// Ошибки клиента окончательны, остальные (провайдер, каталог) - повод повторить
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) && appErr.StatusCode < 500 {
			out.Error = appErr.Code
			return out, nil
		}
		return nil, err
	}

	point := resp.Point
	out.Point = &point
	out.Matched = resp.Matched
	out.Fallback = resp.Geocode != nil && resp.Geocode.Fallback
	if resp.Zone != nil {
		out.Zone = &domain.ResolvedZone{
			ID:           resp.Zone.ID,
			Name:         resp.Zone.Name,
			Priority:     resp.Zone.Priority,
			MinOrder:     resp.Zone.MinOrder,
			DeliveryTime: resp.Zone.DeliveryTime,
		}
	}
	if event.CartTotal != nil {
		available := resp.Available
		shortfall := resp.Shortfall
		out.DeliveryAvailable = &available
		out.Shortfall = &shortfall
	}

	return out, nil
}

func (uc *ZoneUseCase) current() (*catalogState, error) {
	state := uc.state.Load()
	if state == nil {
		return nil, errors.ErrCatalogNotLoaded
	}
	return state, nil
}

func (uc *ZoneUseCase) fromCoordinates(lat, lon float64) (*located, error) {
	p := geofence.Point{Lat: lat, Lon: lon}
	if !p.IsFinite() || !utils.ValidateCoordinates(lat, lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	return &located{point: domain.Point{Lat: lat, Lon: lon}}, nil
}

func (uc *ZoneUseCase) fromAddress(ctx context.Context, address string) (*located, error) {
	if uc.geocoder == nil {
		return nil, errors.ErrGeocoderUnavailable
	}

	result, err := uc.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	return &located{
		point: result.Point,
		geocode: &dto.GeocodeDTO{
			PlaceName: result.PlaceName,
			Source:    result.Source,
			Fallback:  result.Source == domain.GeocodeSourceFallback,
		},
	}, nil
}

func (uc *ZoneUseCase) resolveResponse(state *catalogState, loc *located, source string) *dto.ResolveResponse {
	start := time.Now()
	result := geofence.Resolve(geofence.Point{Lat: loc.point.Lat, Lon: loc.point.Lon}, state.catalog)
	metrics.ResolveDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000)

	resp := &dto.ResolveResponse{
		Matched: result.Matched,
		Point:   loc.point,
		Geocode: loc.geocode,
	}

	if !result.Matched {
		metrics.ResolutionsTotal.WithLabelValues(metrics.UnmatchedZone, source).Inc()
		uc.logger.Debug("Point is outside delivery zones",
			zap.Float64("lat", loc.point.Lat),
			zap.Float64("lon", loc.point.Lon))
		return resp
	}

	metrics.ResolutionsTotal.WithLabelValues(result.Zone.Name, source).Inc()
	resp.Zone = &dto.ResolvedZoneDTO{
		ID:           result.Zone.ID,
		Name:         result.Zone.Name,
		Priority:     state.priorities[result.Priority],
		MinOrder:     result.Zone.MinOrder,
		DeliveryTime: result.Zone.DeliveryTime,
	}

	return resp
}

func toRing(points []domain.Point) geofence.Ring {
	ring := make(geofence.Ring, len(points))
	for i, p := range points {
		ring[i] = geofence.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return ring
}

func fromRing(ring geofence.Ring) []domain.Point {
	points := make([]domain.Point, len(ring))
	for i, p := range ring {
		points[i] = domain.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return points
}
