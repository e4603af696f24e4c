package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/delivery-zones/internal/pkg/errors"
	"github.com/delivery-zones/internal/pkg/utils"
	"github.com/delivery-zones/internal/pkg/validator"
	"github.com/delivery-zones/internal/usecase"
	"github.com/delivery-zones/internal/usecase/dto"
)

// ZoneHandler - обработчик запросов к зонам доставки
type ZoneHandler struct {
	zoneUC *usecase.ZoneUseCase
	logger *zap.Logger
}

// NewZoneHandler - создание нового ZoneHandler
func NewZoneHandler(zoneUC *usecase.ZoneUseCase, logger *zap.Logger) *ZoneHandler {
	return &ZoneHandler{
		zoneUC: zoneUC,
		logger: logger,
	}
}

// ListZones godoc
// @Summary Список зон доставки
// @Description Возвращает все зоны текущего каталога в порядке приоритета: контуры, дырки и коммерческие условия. Используется для статической карты зон.
// @Tags Zones
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ListZonesResponse}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/zones [get]
func (h *ZoneHandler) ListZones(c *fiber.Ctx) error {
	result, err := h.zoneUC.ListZones(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// ResolvePoint godoc
// @Summary Определение зоны по координатам
// @Description Возвращает первую по приоритету зону, содержащую точку. Точка вне всех зон - нормальный результат с matched=false.
// @Tags Zones
// @Accept json
// @Produce json
// @Param request body dto.ResolvePointRequest true "Координаты точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/zones/resolve [post]
func (h *ZoneHandler) ResolvePoint(c *fiber.Ctx) error {
	var req dto.ResolvePointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.zoneUC.ResolvePoint(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec: elapsedMs(start),
	})
}

// ResolveAddress godoc
// @Summary Определение зоны по адресу
// @Description Геокодирует адрес (кеш, затем Mapbox) и определяет зону доставки. Если включена демо-политика, при неудачном геокодировании подставляется псевдокоордината с флагом fallback.
// @Tags Zones
// @Accept json
// @Produce json
// @Param request body dto.ResolveAddressRequest true "Адрес"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/zones/resolve-address [post]
func (h *ZoneHandler) ResolveAddress(c *fiber.Ctx) error {
	var req dto.ResolveAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.zoneUC.ResolveAddress(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec: elapsedMs(start),
	})
}

// ReloadCatalog godoc
// @Summary Перезагрузка каталога зон
// @Description Перечитывает зоны из источника и атомарно подменяет каталог. При ошибке валидации продолжает работать прежний каталог.
// @Tags Zones
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ReloadResponse}
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/zones/reload [post]
func (h *ZoneHandler) ReloadCatalog(c *fiber.Ctx) error {
	result, err := h.zoneUC.LoadCatalog(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// CheckDelivery godoc
// @Summary Проверка возможности доставки
// @Description Определяет зону по координатам или адресу и сравнивает сумму корзины с минимальным заказом зоны.
// @Tags Delivery
// @Accept json
// @Produce json
// @Param request body dto.CheckDeliveryRequest true "Точка или адрес и сумма корзины"
// @Success 200 {object} utils.SuccessResponse{data=dto.CheckDeliveryResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/delivery/check [post]
func (h *ZoneHandler) CheckDelivery(c *fiber.Ctx) error {
	var req dto.CheckDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.zoneUC.CheckDelivery(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
