package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	pkgerrors "github.com/delivery-zones/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const zoneColumns = `id, name, color, priority, outer_ring, hole_rings,
	min_order, delivery_time, is_active, created_at, updated_at`

// zoneRow - строка таблицы delivery_zones; контуры лежат в JSONB
type zoneRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Color        string    `db:"color"`
	Priority     int       `db:"priority"`
	OuterRing    []byte    `db:"outer_ring"`
	HoleRings    []byte    `db:"hole_rings"`
	MinOrder     int64     `db:"min_order"`
	DeliveryTime string    `db:"delivery_time"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type zoneRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewZoneRepository создает репозиторий зон доставки
func NewZoneRepository(db *DB) repository.ZoneStore {
	return &zoneRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// ListActive возвращает активные зоны в порядке приоритета
func (r *zoneRepository) ListActive(ctx context.Context) ([]*domain.DeliveryZone, error) {
	query := `SELECT ` + zoneColumns + `
		FROM delivery_zones
		WHERE is_active
		ORDER BY priority ASC, id ASC`

	var rows []zoneRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("failed to list delivery zones", zap.Error(err))
		return nil, fmt.Errorf("list delivery zones: %w", err)
	}

	zones := make([]*domain.DeliveryZone, 0, len(rows))
	for i := range rows {
		z, err := rows[i].toDomain()
		if err != nil {
			r.logger.Error("failed to decode delivery zone",
				zap.String("id", rows[i].ID.String()),
				zap.Error(err))
			return nil, err
		}
		zones = append(zones, z)
	}

	r.logger.Debug("delivery zones loaded", zap.Int("count", len(zones)))
	return zones, nil
}

// GetByID возвращает зону по идентификатору
func (r *zoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryZone, error) {
	query := `SELECT ` + zoneColumns + ` FROM delivery_zones WHERE id = $1`

	var row zoneRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrZoneNotFound
	}
	if err != nil {
		r.logger.Error("failed to get delivery zone", zap.String("id", id.String()), zap.Error(err))
		return nil, pkgerrors.ErrDatabaseError
	}

	return row.toDomain()
}

// Save создает зону или обновляет существующую с тем же id
func (r *zoneRepository) Save(ctx context.Context, zone *domain.DeliveryZone) error {
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}

	outer, err := encodeRing(zone.OuterRing)
	if err != nil {
		return err
	}
	holes, err := encodeRings(zone.HoleRings)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO delivery_zones
			(id, name, color, priority, outer_ring, hole_rings, min_order, delivery_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name          = EXCLUDED.name,
			color         = EXCLUDED.color,
			priority      = EXCLUDED.priority,
			outer_ring    = EXCLUDED.outer_ring,
			hole_rings    = EXCLUDED.hole_rings,
			min_order     = EXCLUDED.min_order,
			delivery_time = EXCLUDED.delivery_time,
			is_active     = EXCLUDED.is_active,
			updated_at    = NOW()
		RETURNING created_at, updated_at`

	err = r.db.QueryRowxContext(ctx, query,
		zone.ID, zone.Name, zone.Color, zone.Priority,
		outer, holes,
		zone.MinOrder, zone.DeliveryTime, zone.IsActive,
	).Scan(&zone.CreatedAt, &zone.UpdatedAt)
	if err != nil {
		r.logger.Error("failed to save delivery zone",
			zap.String("id", zone.ID.String()),
			zap.String("name", zone.Name),
			zap.Error(err))
		return fmt.Errorf("save delivery zone: %w", err)
	}

	return nil
}

// Delete удаляет зону
func (r *zoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM delivery_zones WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete delivery zone", zap.String("id", id.String()), zap.Error(err))
		return fmt.Errorf("delete delivery zone: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete delivery zone: %w", err)
	}
	if n == 0 {
		return pkgerrors.ErrZoneNotFound
	}

	return nil
}

func (row *zoneRow) toDomain() (*domain.DeliveryZone, error) {
	outer, err := decodeRing(row.OuterRing)
	if err != nil {
		return nil, fmt.Errorf("zone %s outer_ring: %w", row.ID, err)
	}
	holes, err := decodeRings(row.HoleRings)
	if err != nil {
		return nil, fmt.Errorf("zone %s hole_rings: %w", row.ID, err)
	}

	return &domain.DeliveryZone{
		ID:           row.ID,
		Name:         row.Name,
		Color:        row.Color,
		Priority:     row.Priority,
		OuterRing:    outer,
		HoleRings:    holes,
		MinOrder:     row.MinOrder,
		DeliveryTime: row.DeliveryTime,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
