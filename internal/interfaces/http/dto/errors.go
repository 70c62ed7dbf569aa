package dto

import (
	"net/http"

	"github.com/storefront/backend/internal/domain/shared"
)

// Error codes that originate at the HTTP boundary rather than in the domain.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Missing lookups fall back to 500 so unexpected codes never leak as 200s.
var ErrorCodeHTTPStatus = map[string]int{
	// Resource lookups. UNKNOWN_PRODUCT and UNKNOWN_ORDER are references to
	// entities that do not exist, so they map the same as NOT_FOUND.
	shared.CodeNotFound:       http.StatusNotFound,
	shared.CodeUnknownProduct: http.StatusNotFound,
	shared.CodeUnknownOrder:   http.StatusNotFound,

	// Conflicts with existing state
	shared.CodeAlreadyExists:       http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,

	// Malformed or invalid input
	shared.CodeInvalidInput: http.StatusBadRequest,
	shared.CodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,

	// Authentication
	shared.CodeUnauthorized: http.StatusUnauthorized,

	// Business rule violations: the request was well-formed but the
	// operation is not allowed against current state
	shared.CodeInvalidState:           http.StatusUnprocessableEntity,
	shared.CodeInvalidStateTransition: http.StatusUnprocessableEntity,
	shared.CodeInsufficientStock:      http.StatusUnprocessableEntity,
	shared.CodeOverReceipt:            http.StatusUnprocessableEntity,
	shared.CodeDuplicateConversion:    http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
