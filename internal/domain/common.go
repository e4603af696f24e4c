package domain

// Point - географическая точка в градусах WGS84.
// Для геозон Lat играет роль x, Lon - роль y.
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// IsZero - точка не задана (0,0 в Гвинейском заливе за точку города не считаем)
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

// BoundingBox - габариты зоны, отдаются клиенту для подгонки карты
type BoundingBox struct {
	MinLat float64 `json:"min_lat" db:"min_lat"`
	MinLon float64 `json:"min_lon" db:"min_lon"`
	MaxLat float64 `json:"max_lat" db:"max_lat"`
	MaxLon float64 `json:"max_lon" db:"max_lon"`
}
