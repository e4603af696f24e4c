// Package geofence определяет зону доставки для координаты: полигоны с дырками,
// проверка попадания точки (even-odd ray casting) и приоритетный выбор зоны.
//
// Пакет чистый: без I/O, логирования и разделяемого изменяемого состояния.
// Вся математика плоская, на сырых lat/lon, что допустимо в масштабе города.
package geofence

import "math"

// Point - координата (широта, долгота)
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsFinite проверяет, что обе компоненты - конечные числа
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

// Ring - замкнутый контур. Ребро от последней точки к первой подразумевается,
// явное повторение первой точки в конце допускается, но не требуется.
type Ring []Point

// DistinctPoints возвращает количество различных вершин контура
func (r Ring) DistinctPoints() int {
	seen := make(map[Point]struct{}, len(r))
	for _, p := range r {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// PointInRing - ray casting по правилу even-odd: из точки пускается горизонтальный луч,
// каждое пересечение с ребром переключает флаг "внутри".
// Точка ровно на ребре может быть отнесена в любую сторону.
func PointInRing(p Point, r Ring) bool {
	n := len(r)
	if n < 3 {
		return false
	}

	x, y := p.Lat, p.Lon
	inside := false

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := r[i].Lat, r[i].Lon
		xj, yj := r[j].Lat, r[j].Lon

		// деление выполняется только когда yi != yj: && не вычисляет правую часть
		if (yi > y) != (yj > y) && x < xi+(xj-xi)*(y-yi)/(yj-yi) {
			inside = !inside
		}
	}

	return inside
}

func (r Ring) clone() Ring {
	if r == nil {
		return nil
	}
	out := make(Ring, len(r))
	copy(out, r)
	return out
}
