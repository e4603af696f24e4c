package testhelpers

import (
	"github.com/google/uuid"

	"github.com/delivery-zones/internal/domain"
)

// CentralZone - центральная зона города, внутренняя (приоритет 0)
func CentralZone() *domain.DeliveryZone {
	return &domain.DeliveryZone{
		ID:       uuid.MustParse("2d7c1f3e-6a41-4f0c-9a1b-1f0e5c2b7a01"),
		Name:     "Центр",
		Color:    "#e53935",
		Priority: 0,
		OuterRing: []domain.Point{
			{Lat: 51.545, Lon: 45.995},
			{Lat: 51.545, Lon: 46.025},
			{Lat: 51.530, Lon: 46.025},
			{Lat: 51.530, Lon: 45.995},
		},
		MinOrder:     1000,
		DeliveryTime: "45-60 min",
		IsActive:     true,
	}
}

// CityZone - объемлющая зона с вырезом (промзона), приоритет 1
func CityZone() *domain.DeliveryZone {
	return &domain.DeliveryZone{
		ID:       uuid.MustParse("2d7c1f3e-6a41-4f0c-9a1b-1f0e5c2b7a02"),
		Name:     "Город",
		Color:    "#1e88e5",
		Priority: 1,
		OuterRing: []domain.Point{
			{Lat: 51.600, Lon: 45.900},
			{Lat: 51.600, Lon: 46.100},
			{Lat: 51.480, Lon: 46.100},
			{Lat: 51.480, Lon: 45.900},
		},
		HoleRings: [][]domain.Point{
			{
				{Lat: 51.500, Lon: 46.050},
				{Lat: 51.500, Lon: 46.080},
				{Lat: 51.490, Lon: 46.080},
				{Lat: 51.490, Lon: 46.050},
			},
		},
		MinOrder:     1500,
		DeliveryTime: "60-90 min",
		IsActive:     true,
	}
}
