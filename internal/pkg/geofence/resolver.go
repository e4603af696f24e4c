package geofence

// Result - результат определения зоны: либо найденная зона, либо Unmatched.
// Zone - собственная копия вызывающего, каталог через нее не меняется.
type Result struct {
	Zone     Zone
	Priority int
	Matched  bool
}

// Unmatched - точка вне всех зон доставки
var Unmatched = Result{Priority: -1}

// Resolve перебирает зоны в порядке приоритета и возвращает первую, содержащую точку.
// Функция чистая и безопасна для конкурентного вызова на одном каталоге.
func Resolve(p Point, c *Catalog) Result {
	return resolve(p, c, nil)
}

// resolve - перебор с необязательным visit, вызываемым перед проверкой каждой зоны
func resolve(p Point, c *Catalog, visit func(index int)) Result {
	if c == nil {
		return Unmatched
	}

	for i := range c.zones {
		if visit != nil {
			visit(i)
		}
		if c.zones[i].Contains(p) {
			return Result{Zone: c.zones[i].copy(), Priority: i, Matched: true}
		}
	}

	return Unmatched
}
