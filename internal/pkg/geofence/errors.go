package geofence

import (
	"errors"
	"fmt"
)

// ErrInvalidZone - базовая ошибка структурной валидации зоны
var ErrInvalidZone = errors.New("invalid delivery zone")

// ConfigurationError - зона не прошла валидацию при построении каталога
type ConfigurationError struct {
	Index  int    // позиция зоны в списке определений
	Zone   string // название зоны
	Ring   string // "outer", "hole[N]" или пусто, если ошибка не в контуре
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Ring != "" {
		return fmt.Sprintf("zone #%d %q: %s ring: %s", e.Index, e.Zone, e.Ring, e.Reason)
	}
	return fmt.Sprintf("zone #%d %q: %s", e.Index, e.Zone, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidZone
}
