package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryZone - зона доставки в хранилище.
// Priority задает порядок проверки: меньшее значение проверяется раньше,
// поэтому внутренние зоны должны иметь меньший приоритет, чем объемлющие.
type DeliveryZone struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Color        string    `json:"color" db:"color"`
	Priority     int       `json:"priority" db:"priority"`
	OuterRing    []Point   `json:"outer_ring" db:"-"`
	HoleRings    [][]Point `json:"hole_rings,omitempty" db:"-"`
	MinOrder     int64     `json:"min_order" db:"min_order"`
	DeliveryTime string    `json:"delivery_time" db:"delivery_time"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
