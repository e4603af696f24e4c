package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/config"
)

const (
	applicationName = "delivery-zones"
	pingTimeout     = 5 * time.Second
	connectAttempts = 3
	connectBackoff  = 500 * time.Millisecond
)

// DB - подключение к базе с таблицей delivery_zones
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул через pgx/stdlib. База может подниматься вместе с сервисом,
// поэтому ping повторяется несколько раз с растущей паузой.
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	connConfig.RuntimeParams["application_name"] = applicationName

	db := sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx")
	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	backoff := connectBackoff
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
		}

		logger.Warn("PostgreSQL not ready, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		time.Sleep(backoff)
		backoff *= 2
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	)

	return &DB{DB: db, logger: logger}, nil
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest оборачивает готовое подключение (интеграционные тесты на lib/pq)
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}
