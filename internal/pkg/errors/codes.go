package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrAddressNotFound = New(
		"ADDRESS_NOT_FOUND",
		"Address not found",
		http.StatusNotFound,
	)

	ErrGeocoderUnavailable = New(
		"GEOCODER_UNAVAILABLE",
		"Geocoding service is unavailable",
		http.StatusBadGateway,
	)

	ErrZoneNotFound = New(
		"ZONE_NOT_FOUND",
		"Delivery zone not found",
		http.StatusNotFound,
	)

	ErrCatalogNotLoaded = New(
		"CATALOG_NOT_LOADED",
		"Delivery zone catalog is not loaded",
		http.StatusServiceUnavailable,
	)

	ErrInvalidZoneConfig = New(
		"INVALID_ZONE_CONFIG",
		"Delivery zone configuration is invalid",
		http.StatusUnprocessableEntity,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
