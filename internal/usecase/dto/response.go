package dto

import (
	"time"

	"github.com/delivery-zones/internal/domain"
)

// Сообщения для CheckDeliveryResponse.Message
const (
	MessageDeliveryAvailable = "Delivery is available"
	MessageOutsideArea       = "Address is outside the delivery area"
	MessageMinOrderNotMet    = "Minimum order amount is not reached"
)

// ZoneDTO - зона для статической карты
type ZoneDTO struct {
	ID           string             `json:"id,omitempty"`
	Name         string             `json:"name"`
	Color        string             `json:"color,omitempty"`
	Priority     int                `json:"priority"`
	MinOrder     int64              `json:"min_order"`
	DeliveryTime string             `json:"delivery_time"`
	OuterRing    []domain.Point     `json:"outer_ring"`
	HoleRings    [][]domain.Point   `json:"hole_rings,omitempty"`
	BoundingBox  domain.BoundingBox `json:"bounding_box"`
}

// ListZonesResponse - все зоны каталога в порядке приоритета
type ListZonesResponse struct {
	Zones    []ZoneDTO `json:"zones"`
	Total    int       `json:"total"`
	LoadedAt time.Time `json:"loaded_at"`
}

// ResolvedZoneDTO - найденная зона без геометрии
type ResolvedZoneDTO struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Priority     int    `json:"priority"`
	MinOrder     int64  `json:"min_order"`
	DeliveryTime string `json:"delivery_time"`
}

// GeocodeDTO - как адрес был превращен в координату
type GeocodeDTO struct {
	PlaceName string `json:"place_name,omitempty"`
	Source    string `json:"source"`
	Fallback  bool   `json:"fallback"`
}

// ResolveResponse - результат определения зоны
type ResolveResponse struct {
	Matched bool             `json:"matched"`
	Zone    *ResolvedZoneDTO `json:"zone,omitempty"`
	Point   domain.Point     `json:"point"`
	Geocode *GeocodeDTO      `json:"geocode,omitempty"`
}

// CheckDeliveryResponse - результат проверки заказа
type CheckDeliveryResponse struct {
	Available bool             `json:"available"`
	Matched   bool             `json:"matched"`
	Zone      *ResolvedZoneDTO `json:"zone,omitempty"`
	Point     domain.Point     `json:"point"`
	Geocode   *GeocodeDTO      `json:"geocode,omitempty"`
	CartTotal int64            `json:"cart_total"`
	Shortfall int64            `json:"shortfall"`
	// DistanceKm - расстояние от центра города по прямой
	DistanceKm float64 `json:"distance_km"`
	Message    string  `json:"message"`
}

// ReloadResponse - итог перезагрузки каталога
type ReloadResponse struct {
	Zones    int       `json:"zones"`
	Warnings []string  `json:"warnings,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}
