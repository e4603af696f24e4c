package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/delivery-zones/internal/domain"
)

// Контуры в JSONB хранятся как [[lat, lon], ...]

// encode* возвращают строку: так JSONB одинаково передается и через pgx, и через lib/pq

func encodeRing(ring []domain.Point) (string, error) {
	pairs := make([][2]float64, len(ring))
	for i, p := range ring {
		pairs[i] = [2]float64{p.Lat, p.Lon}
	}
	data, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode ring: %w", err)
	}
	return string(data), nil
}

func encodeRings(rings [][]domain.Point) (string, error) {
	all := make([][][2]float64, len(rings))
	for i, ring := range rings {
		all[i] = make([][2]float64, len(ring))
		for j, p := range ring {
			all[i][j] = [2]float64{p.Lat, p.Lon}
		}
	}
	data, err := json.Marshal(all)
	if err != nil {
		return "", fmt.Errorf("encode rings: %w", err)
	}
	return string(data), nil
}

func decodeRing(data []byte) ([]domain.Point, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("decode ring: %w", err)
	}
	return pairsToPoints(pairs), nil
}

func decodeRings(data []byte) ([][]domain.Point, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var all [][][2]float64
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode rings: %w", err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	rings := make([][]domain.Point, len(all))
	for i, pairs := range all {
		rings[i] = pairsToPoints(pairs)
	}
	return rings, nil
}

func pairsToPoints(pairs [][2]float64) []domain.Point {
	points := make([]domain.Point, len(pairs))
	for i, pair := range pairs {
		points[i] = domain.Point{Lat: pair[0], Lon: pair[1]}
	}
	return points
}
