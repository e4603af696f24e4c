package repository

import (
	"context"

	"github.com/delivery-zones/internal/domain"
)

// GeocoderRepository определяет внешний сервис прямого геокодирования.
// Если адрес не найден, возвращается errors.ErrAddressNotFound;
// любые другие ошибки считаются временными.
type GeocoderRepository interface {
	// Geocode возвращает первую найденную координату для текстового адреса
	Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error)
}
