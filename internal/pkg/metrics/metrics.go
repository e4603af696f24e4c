package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceCoordinate = "coordinate"
	SourceAddress    = "address"
	SourceStream     = "stream"

	UnmatchedZone = "unmatched"
)

var (
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_zone_resolutions_total",
		Help: "Total zone resolutions by matched zone and request source",
	}, []string{"zone", "source"})
	ResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_zone_resolve_duration_ms",
		Help:    "Zone resolution duration in milliseconds, geocoding excluded",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})
	CatalogZones = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "delivery_zone_catalog_zones",
		Help: "Number of zones in the active catalog",
	})
	CatalogReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_zone_catalog_reloads_total",
		Help: "Catalog reloads by status",
	}, []string{"status"})
	GeocodeRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_zone_geocode_requests_total",
		Help: "Geocoder calls by status (ok, not_found, error, fallback)",
	}, []string{"status"})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "delivery_zone_geocode_cache_hits_total",
		Help: "Geocode cache hits",
	})
	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "delivery_zone_geocode_cache_misses_total",
		Help: "Geocode cache misses",
	})
)

func init() {
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(ResolveDurationMs)
	prometheus.MustRegister(CatalogZones)
	prometheus.MustRegister(CatalogReloadsTotal)
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeCacheMissesTotal)
}

// Handler отдает метрики в формате Prometheus
func Handler() http.Handler { return promhttp.Handler() }
