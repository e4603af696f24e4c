package geofence

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

const minRingPoints = 3

// ZoneDefinition - входные данные для построения зоны.
// Разбиение на внешний контур и дырки задается явно.
type ZoneDefinition struct {
	ID           string
	Name         string
	Color        string
	OuterRing    Ring
	HoleRings    []Ring
	MinOrder     int64
	DeliveryTime string
}

// Zone - зона доставки с геометрией и коммерческими атрибутами.
// Неизменяема после построения каталога.
type Zone struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Color        string  `json:"color,omitempty"`
	Polygon      Polygon `json:"polygon"`
	MinOrder     int64   `json:"min_order"`
	DeliveryTime string  `json:"delivery_time"`

	bound orb.Bound
}

// Contains проверяет попадание точки в зону с учетом дырок
func (z *Zone) Contains(p Point) bool {
	if !z.bound.Contains(orb.Point{p.Lon, p.Lat}) {
		return false
	}
	return PointInPolygon(p, z.Polygon)
}

// copy - глубокая копия зоны, контуры не разделяют память с каталогом
func (z *Zone) copy() Zone {
	out := *z
	out.Polygon = z.Polygon.clone()
	return out
}

// Bound возвращает bounding box внешнего контура зоны
func (z *Zone) Bound() orb.Bound {
	return z.bound
}

// Catalog - упорядоченный список зон. Порядок задает приоритет:
// более ранние (внутренние) зоны проверяются первыми.
type Catalog struct {
	zones []Zone
}

// BuildCatalog валидирует определения и строит каталог.
// Первая же структурная ошибка возвращается как *ConfigurationError.
func BuildCatalog(defs []ZoneDefinition) (*Catalog, error) {
	zones := make([]Zone, 0, len(defs))

	for i, def := range defs {
		if err := validateDefinition(i, def); err != nil {
			return nil, err
		}

		poly := Polygon{Outer: def.OuterRing, Holes: def.HoleRings}.clone()
		zones = append(zones, Zone{
			ID:           def.ID,
			Name:         def.Name,
			Color:        def.Color,
			Polygon:      poly,
			MinOrder:     def.MinOrder,
			DeliveryTime: def.DeliveryTime,
			bound:        poly.Bound(),
		})
	}

	return &Catalog{zones: zones}, nil
}

// Len возвращает количество зон
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.zones)
}

// Zones возвращает копию списка зон в порядке приоритета
func (c *Catalog) Zones() []Zone {
	if c == nil {
		return nil
	}
	out := make([]Zone, len(c.zones))
	for i := range c.zones {
		out[i] = c.zones[i].copy()
	}
	return out
}

func validateDefinition(index int, def ZoneDefinition) error {
	fail := func(ring, reason string) error {
		return &ConfigurationError{Index: index, Zone: def.Name, Ring: ring, Reason: reason}
	}

	if strings.TrimSpace(def.Name) == "" {
		return fail("", "name is required")
	}
	if def.MinOrder < 0 {
		return fail("", fmt.Sprintf("min order must not be negative, got %d", def.MinOrder))
	}
	if err := validateRing(def.OuterRing); err != "" {
		return fail("outer", err)
	}
	for h, hole := range def.HoleRings {
		if err := validateRing(hole); err != "" {
			return fail(fmt.Sprintf("hole[%d]", h), err)
		}
	}

	return nil
}

func validateRing(r Ring) string {
	for i, p := range r {
		if !p.IsFinite() {
			return fmt.Sprintf("point %d is not a finite coordinate", i)
		}
	}
	if n := r.DistinctPoints(); n < minRingPoints {
		return fmt.Sprintf("needs at least %d distinct points, got %d", minRingPoints, n)
	}
	return ""
}

// NestingIssue - зона с более низким приоритетом целиком лежит внутри
// зоны с более высоким приоритетом и поэтому никогда не будет выбрана
type NestingIssue struct {
	Shadowed      string
	ShadowedIndex int
	By            string
	ByIndex       int
}

func (n NestingIssue) String() string {
	return fmt.Sprintf("zone #%d %q is shadowed by higher-priority zone #%d %q",
		n.ShadowedIndex, n.Shadowed, n.ByIndex, n.By)
}

// CheckNesting проверяет соглашение "внутренние зоны раньше внешних".
// Результат носит рекомендательный характер, каталог остается валидным.
func CheckNesting(c *Catalog) []NestingIssue {
	if c == nil {
		return nil
	}

	var issues []NestingIssue
	for j := 1; j < len(c.zones); j++ {
		lower := &c.zones[j]
		for i := 0; i < j; i++ {
			higher := &c.zones[i]
			if ringInside(lower.Polygon.Outer, higher) {
				issues = append(issues, NestingIssue{
					Shadowed:      lower.Name,
					ShadowedIndex: j,
					By:            higher.Name,
					ByIndex:       i,
				})
				break
			}
		}
	}

	return issues
}

func ringInside(r Ring, z *Zone) bool {
	for _, p := range r {
		if !z.Contains(p) {
			return false
		}
	}
	return true
}
