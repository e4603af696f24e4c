package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ZonesSourcePostgres = "postgres"
	ZonesSourceFile     = "file"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Zones    ZonesConfig
	Mapbox   MapboxConfig
	Delivery DeliveryConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	GeocodeCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// ZonesConfig - откуда загружать каталог зон доставки
type ZonesConfig struct {
	Source string
	File   string
}

// MapboxConfig - параметры Mapbox Geocoding API
type MapboxConfig struct {
	AccessToken    string
	BaseURL        string
	Country        string
	Language       string
	RequestTimeout int // seconds
}

// DeliveryConfig - параметры города и политика подстановки координат
type DeliveryConfig struct {
	CityCenterLat float64
	CityCenterLon float64
	DemoFallback  bool
	// FallbackSpread - максимальное смещение демо-координаты от центра, в градусах
	FallbackSpread float64
}

type WorkerConfig struct {
	Enabled        bool
	ConsumerGroup  string
	ProcessTimeout time.Duration
	MaxRetries     int
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *fs.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			GeocodeCacheTTL: time.Duration(v.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Zones: ZonesConfig{
			Source: strings.ToLower(strings.TrimSpace(v.GetString("ZONES_SOURCE"))),
			File:   v.GetString("ZONES_FILE"),
		},
		Mapbox: MapboxConfig{
			AccessToken:    v.GetString("MAPBOX_ACCESS_TOKEN"),
			BaseURL:        v.GetString("MAPBOX_BASE_URL"),
			Country:        v.GetString("MAPBOX_COUNTRY"),
			Language:       v.GetString("MAPBOX_LANGUAGE"),
			RequestTimeout: v.GetInt("MAPBOX_REQUEST_TIMEOUT"),
		},
		Delivery: DeliveryConfig{
			CityCenterLat:  v.GetFloat64("CITY_CENTER_LAT"),
			CityCenterLon:  v.GetFloat64("CITY_CENTER_LON"),
			DemoFallback:   v.GetBool("GEOCODER_DEMO_FALLBACK"),
			FallbackSpread: v.GetFloat64("GEOCODER_FALLBACK_SPREAD"),
		},
		Worker: WorkerConfig{
			Enabled:        v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:  v.GetString("WORKER_CONSUMER_GROUP"),
			ProcessTimeout: time.Duration(v.GetInt("WORKER_PROCESS_TIMEOUT")) * time.Millisecond,
			MaxRetries:     v.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("GEOCODE_CACHE_TTL", 86400)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("ZONES_SOURCE", ZonesSourcePostgres)

	v.SetDefault("MAPBOX_BASE_URL", "https://api.mapbox.com")
	v.SetDefault("MAPBOX_LANGUAGE", "ru")
	v.SetDefault("MAPBOX_REQUEST_TIMEOUT", 10)

	v.SetDefault("GEOCODER_FALLBACK_SPREAD", 0.02)

	v.SetDefault("WORKER_CONSUMER_GROUP", "zone-resolution-workers")
	v.SetDefault("WORKER_PROCESS_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
}

func (c *Config) validate() error {
	switch c.Zones.Source {
	case ZonesSourcePostgres:
	case ZonesSourceFile:
		if c.Zones.File == "" {
			return fmt.Errorf("ZONES_FILE is required when ZONES_SOURCE=%s", ZonesSourceFile)
		}
	default:
		return fmt.Errorf("unknown ZONES_SOURCE %q", c.Zones.Source)
	}

	if c.Delivery.FallbackSpread < 0 {
		return fmt.Errorf("GEOCODER_FALLBACK_SPREAD must not be negative")
	}

	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN - строка подключения в формате key=value (pgx и lib/pq)
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
