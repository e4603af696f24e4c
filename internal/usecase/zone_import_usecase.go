package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/domain"
	"github.com/delivery-zones/internal/domain/repository"
	"github.com/delivery-zones/internal/pkg/geofence"
)

// ZoneImportUseCase - запись зон из файла в хранилище и удаление по идентификатору
type ZoneImportUseCase struct {
	store  repository.ZoneStore
	logger *zap.Logger
}

func NewZoneImportUseCase(store repository.ZoneStore, logger *zap.Logger) *ZoneImportUseCase {
	return &ZoneImportUseCase{
		store:  store,
		logger: logger,
	}
}

// ValidateZones проверяет геометрию всех зон, в том числе неактивных:
// зона, включенная позже, не должна ломать перезагрузку каталога.
// Предупреждения о перекрытии считаются только по активным зонам.
func ValidateZones(zones []*domain.DeliveryZone) ([]string, error) {
	if _, err := geofence.BuildCatalog(BuildDefinitions(zones)); err != nil {
		return nil, err
	}

	var active []*domain.DeliveryZone
	for _, z := range zones {
		if z.IsActive {
			active = append(active, z)
		}
	}

	catalog, err := geofence.BuildCatalog(BuildDefinitions(active))
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, issue := range geofence.CheckNesting(catalog) {
		warnings = append(warnings, issue.String())
	}
	return warnings, nil
}

// Import валидирует весь набор и только затем сохраняет зоны.
// При ошибке валидации в хранилище ничего не пишется.
func (uc *ZoneImportUseCase) Import(ctx context.Context, zones []*domain.DeliveryZone) (int, error) {
	warnings, err := ValidateZones(zones)
	if err != nil {
		return 0, err
	}
	for _, w := range warnings {
		uc.logger.Warn("Delivery zone is shadowed", zap.String("issue", w))
	}

	for i, z := range zones {
		if err := uc.store.Save(ctx, z); err != nil {
			return i, fmt.Errorf("save zone %q: %w", z.Name, err)
		}
		uc.logger.Info("Delivery zone saved",
			zap.String("id", z.ID.String()),
			zap.String("name", z.Name),
			zap.Int("priority", z.Priority),
			zap.Bool("active", z.IsActive))
	}

	return len(zones), nil
}

// Remove удаляет зону и возвращает удаленную запись (для лога).
// Неизвестный id возвращает ErrZoneNotFound.
func (uc *ZoneImportUseCase) Remove(ctx context.Context, id uuid.UUID) (*domain.DeliveryZone, error) {
	zone, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete zone %s: %w", id, err)
	}

	uc.logger.Info("Delivery zone deleted",
		zap.String("id", id.String()),
		zap.String("name", zone.Name))

	return zone, nil
}
