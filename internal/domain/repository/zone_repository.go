package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/delivery-zones/internal/domain"
)

// ZoneRepository определяет источник зон доставки
type ZoneRepository interface {
	// ListActive возвращает активные зоны, отсортированные по приоритету (по возрастанию)
	ListActive(ctx context.Context) ([]*domain.DeliveryZone, error)
}

// ZoneStore - хранилище зон с поддержкой записи (используется импортом)
type ZoneStore interface {
	ZoneRepository

	// GetByID возвращает зону по идентификатору
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DeliveryZone, error)

	// Save создает или обновляет зону по идентификатору
	Save(ctx context.Context, zone *domain.DeliveryZone) error

	// Delete удаляет зону
	Delete(ctx context.Context, id uuid.UUID) error
}
