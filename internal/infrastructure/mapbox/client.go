package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/delivery-zones/internal/config"
	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	country     string
	language    string
	proximity   *domain.Point
	logger      *zap.Logger
}

// geocodingResponse - нужная часть ответа Mapbox Geocoding API v5
type geocodingResponse struct {
	Features []struct {
		PlaceName string `json:"place_name"`
		// Center - [lon, lat]
		Center []float64 `json:"center"`
	} `json:"features"`
}

// NewMapboxClient создает клиент прямого геокодирования Mapbox.
// proximity смещает выдачу к указанной точке (обычно центр города), nil - без смещения.
func NewMapboxClient(cfg *config.MapboxConfig, proximity *domain.Point, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		country:     cfg.Country,
		language:    cfg.Language,
		proximity:   proximity,
		logger:      logger,
	}
}

// Geocode возвращает координату первого найденного объекта
func (c *client) Geocode(ctx context.Context, address string) (*domain.GeocodeResult, error) {
	query := strings.TrimSpace(address)
	if query == "" {
		return nil, errors.ErrAddressNotFound
	}

	requestURL := c.buildURL(query)

	c.logger.Debug("Calling Mapbox Geocoding API", zap.String("query", query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Mapbox API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("mapbox API error: status %d", resp.StatusCode)
	}

	var geoResp geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&geoResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(geoResp.Features) == 0 {
		c.logger.Debug("Address not found", zap.String("query", query))
		return nil, errors.ErrAddressNotFound
	}

	feature := geoResp.Features[0]
	if len(feature.Center) < 2 {
		return nil, fmt.Errorf("mapbox API returned feature without center")
	}

	result := &domain.GeocodeResult{
		Point:     domain.Point{Lat: feature.Center[1], Lon: feature.Center[0]},
		PlaceName: feature.PlaceName,
		Source:    domain.GeocodeSourceProvider,
	}

	c.logger.Debug("Mapbox Geocoding API call successful",
		zap.String("place_name", result.PlaceName),
		zap.Float64("lat", result.Point.Lat),
		zap.Float64("lon", result.Point.Lon))

	return result, nil
}

func (c *client) buildURL(query string) string {
	params := url.Values{}
	params.Set("access_token", c.accessToken)
	params.Set("limit", "1")
	if c.country != "" {
		params.Set("country", c.country)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	if c.proximity != nil {
		params.Set("proximity",
			strconv.FormatFloat(c.proximity.Lon, 'f', -1, 64)+","+
				strconv.FormatFloat(c.proximity.Lat, 'f', -1, 64))
	}

	return fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		c.baseURL,
		url.PathEscape(query),
		params.Encode(),
	)
}
