package usecase

import (
	"hash/fnv"
	"math"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/pkg/utils"
)

// FallbackPolicy решает, что делать, если адрес не удалось геокодировать.
// Подставленная координата всегда помечается как fallback.
type FallbackPolicy interface {
	Name() string
	Fallback(address string, cause error) (domain.Point, bool)
}

// NoFallback никогда не придумывает координаты. Политика по умолчанию.
type NoFallback struct{}

func (NoFallback) Name() string { return "none" }

func (NoFallback) Fallback(string, error) (domain.Point, bool) {
	return domain.Point{}, false
}

// DemoFallback подставляет псевдокоординату рядом с центром города.
// Только для демо-стендов: точка зависит лишь от адреса, поэтому повторный
// запрос того же адреса дает ту же зону.
type DemoFallback struct {
	Center domain.Point
	// Spread - максимальное смещение по каждой оси, в градусах
	Spread float64
}

func (DemoFallback) Name() string { return "demo" }

func (f DemoFallback) Fallback(address string, _ error) (domain.Point, bool) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(utils.NormalizeAddress(address)))
	sum := h.Sum64()

	dx := unitOffset(uint32(sum >> 32))
	dy := unitOffset(uint32(sum))

	return domain.Point{
		Lat: f.Center.Lat + dx*f.Spread,
		Lon: f.Center.Lon + dy*f.Spread,
	}, true
}

// unitOffset отображает v в [-1, 1]
func unitOffset(v uint32) float64 {
	return float64(v)/math.MaxUint32*2 - 1
}

// NewFallbackPolicy выбирает политику по флагу конфигурации
func NewFallbackPolicy(demo bool, center domain.Point, spread float64) FallbackPolicy {
	if demo {
		return DemoFallback{Center: center, Spread: spread}
	}
	return NoFallback{}
}
