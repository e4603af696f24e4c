package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamZoneResolve  = "stream:zone:resolve"
	StreamZoneResolved = "stream:zone:resolved"
)

// ZoneResolveEvent - входящее событие: определить зону доставки для заказа.
// Нужен либо адрес, либо пара координат; координаты имеют приоритет.
type ZoneResolveEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	Address   *string   `json:"address,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CartTotal *int64    `json:"cart_total,omitempty"`
}

// HasCoordinates проверяет наличие обеих координат
func (e *ZoneResolveEvent) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// HasAddress проверяет наличие непустого адреса
func (e *ZoneResolveEvent) HasAddress() bool {
	return e.Address != nil && *e.Address != ""
}

// ZoneResolvedEvent - результат определения зоны
type ZoneResolvedEvent struct {
	OrderID           uuid.UUID     `json:"order_id"`
	Matched           bool          `json:"matched"`
	Zone              *ResolvedZone `json:"zone,omitempty"`
	Point             *Point        `json:"point,omitempty"`
	Fallback          bool          `json:"fallback,omitempty"`
	DeliveryAvailable *bool         `json:"delivery_available,omitempty"`
	Shortfall         *int64        `json:"shortfall,omitempty"`
	Error             string        `json:"error,omitempty"`
}

// ResolvedZone - коммерческие атрибуты найденной зоны
type ResolvedZone struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Priority     int    `json:"priority"`
	MinOrder     int64  `json:"min_order"`
	DeliveryTime string `json:"delivery_time"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
