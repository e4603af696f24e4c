package dto

// ResolvePointRequest - запрос на определение зоны по координатам
type ResolvePointRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

// ResolveAddressRequest - запрос на определение зоны по адресу
type ResolveAddressRequest struct {
	Address string `json:"address" validate:"required,min=3,max=500"`
}

// CheckDeliveryRequest - проверка возможности доставки заказа.
// Нужна либо пара координат, либо адрес; координаты имеют приоритет.
type CheckDeliveryRequest struct {
	Lat       *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lon       *float64 `json:"lon,omitempty" validate:"omitempty,min=-180,max=180"`
	Address   string   `json:"address,omitempty" validate:"omitempty,max=500"`
	CartTotal int64    `json:"cart_total" validate:"min=0"`
}

// HasCoordinates проверяет наличие обеих координат
func (r *CheckDeliveryRequest) HasCoordinates() bool {
	return r.Lat != nil && r.Lon != nil
}
