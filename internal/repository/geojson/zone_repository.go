package geojson

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// zoneNamespace - пространство имен для детерминированных id зон без явного "id"
var zoneNamespace = uuid.MustParse("9b3c5e1a-0d2f-4c6b-8e7a-5f4d3c2b1a00")

type zoneRepository struct {
	path   string
	logger *zap.Logger
}

// NewZoneRepository создает источник зон из GeoJSON файла.
// Файл перечитывается при каждом ListActive, поэтому перезагрузка каталога подхватывает правки.
func NewZoneRepository(path string, logger *zap.Logger) repository.ZoneRepository {
	return &zoneRepository{
		path:   path,
		logger: logger,
	}
}

// ListActive читает файл и возвращает активные зоны в порядке приоритета
func (r *zoneRepository) ListActive(ctx context.Context) ([]*domain.DeliveryZone, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Error("failed to read zones file", zap.String("path", r.path), zap.Error(err))
		return nil, fmt.Errorf("read zones file: %w", err)
	}

	zones, err := ParseZones(data)
	if err != nil {
		r.logger.Error("failed to parse zones file", zap.String("path", r.path), zap.Error(err))
		return nil, err
	}

	active := zones[:0]
	for _, z := range zones {
		if z.IsActive {
			active = append(active, z)
		}
	}

	r.logger.Debug("delivery zones loaded from file",
		zap.String("path", r.path),
		zap.Int("count", len(active)))

	return active, nil
}

// ParseZones разбирает FeatureCollection с Polygon-фичами.
// Координаты GeoJSON идут как [lon, lat]; первое кольцо - внешний контур, остальные - дырки.
// Свойства: id, name, color, priority, min_order, delivery_time, active.
// Без priority зона получает свой порядковый номер в файле.
func ParseZones(data []byte) ([]*domain.DeliveryZone, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	zones := make([]*domain.DeliveryZone, 0, len(fc.Features))
	for i, f := range fc.Features {
		z, err := featureToZone(i, f)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}

	sort.SliceStable(zones, func(a, b int) bool {
		return zones[a].Priority < zones[b].Priority
	})

	return zones, nil
}

func featureToZone(index int, f *geojson.Feature) (*domain.DeliveryZone, error) {
	props := f.Properties
	name := strings.TrimSpace(props.MustString("name", ""))
	if name == "" {
		return nil, fmt.Errorf("feature #%d: property \"name\" is required", index)
	}

	poly, ok := f.Geometry.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("feature #%d %q: geometry must be Polygon, got %s", index, name, geometryType(f.Geometry))
	}
	if len(poly) == 0 {
		return nil, fmt.Errorf("feature #%d %q: polygon has no rings", index, name)
	}

	id, err := zoneID(props, name)
	if err != nil {
		return nil, fmt.Errorf("feature #%d %q: %w", index, name, err)
	}

	minOrder, err := minOrderOf(props)
	if err != nil {
		return nil, fmt.Errorf("feature #%d %q: %w", index, name, err)
	}

	z := &domain.DeliveryZone{
		ID:           id,
		Name:         name,
		Color:        props.MustString("color", ""),
		Priority:     props.MustInt("priority", index),
		OuterRing:    ringToPoints(poly[0]),
		MinOrder:     minOrder,
		DeliveryTime: props.MustString("delivery_time", ""),
		IsActive:     props.MustBool("active", true),
	}
	for _, hole := range poly[1:] {
		z.HoleRings = append(z.HoleRings, ringToPoints(hole))
	}

	return z, nil
}

// minOrderOf читает min_order в минимальных единицах валюты.
// Дробное или нечисловое значение - ошибка, а не молчаливое округление.
func minOrderOf(props geojson.Properties) (int64, error) {
	raw, ok := props["min_order"]
	if !ok || raw == nil {
		return 0, nil
	}

	v, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("min_order must be a number, got %T", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) >= 1<<53 {
		return 0, fmt.Errorf("min_order must be a whole number, got %v", v)
	}
	return int64(v), nil
}

func zoneID(props geojson.Properties, name string) (uuid.UUID, error) {
	raw := props.MustString("id", "")
	if raw == "" {
		return uuid.NewSHA1(zoneNamespace, []byte(name)), nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}

// ringToPoints переводит [lon, lat] в Point и отбрасывает замыкающую точку,
// если она совпадает с первой
func ringToPoints(ring orb.Ring) []domain.Point {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}

	points := make([]domain.Point, n)
	for i := 0; i < n; i++ {
		points[i] = domain.Point{Lat: ring[i].Lat(), Lon: ring[i].Lon()}
	}
	return points
}

func geometryType(g orb.Geometry) string {
	if g == nil {
		return "null"
	}
	return g.GeoJSONType()
}
