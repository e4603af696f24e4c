package geofence

import "github.com/paulmach/orb"

// Polygon - внешний контур и ноль или более дырок (исключенные области).
// Вложенность дырок во внешний контур не проверяется.
type Polygon struct {
	Outer Ring   `json:"outer"`
	Holes []Ring `json:"holes,omitempty"`
}

// PointInPolygon возвращает true, если точка внутри внешнего контура и ни в одной из дырок
func PointInPolygon(p Point, poly Polygon) bool {
	if !PointInRing(p, poly.Outer) {
		return false
	}

	for _, hole := range poly.Holes {
		if PointInRing(p, hole) {
			return false
		}
	}

	return true
}

// Bound возвращает включающий bounding box внешнего контура (X - долгота, Y - широта)
func (poly Polygon) Bound() orb.Bound {
	ring := make(orb.Ring, 0, len(poly.Outer))
	for _, p := range poly.Outer {
		ring = append(ring, orb.Point{p.Lon, p.Lat})
	}
	return ring.Bound()
}

func (poly Polygon) clone() Polygon {
	out := Polygon{Outer: poly.Outer.clone()}
	if len(poly.Holes) > 0 {
		out.Holes = make([]Ring, len(poly.Holes))
		for i, h := range poly.Holes {
			out.Holes[i] = h.clone()
		}
	}
	return out
}
