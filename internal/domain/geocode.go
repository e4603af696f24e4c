package domain

const (
	GeocodeSourceProvider = "provider"
	GeocodeSourceCache    = "cache"
	GeocodeSourceFallback = "fallback"
)

// GeocodeResult - координата, полученная по текстовому адресу
type GeocodeResult struct {
	Point     Point  `json:"point"`
	PlaceName string `json:"place_name,omitempty"`
	Source    string `json:"source"`
}
