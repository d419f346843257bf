package dto

import "net/http"

// Error codes surfaced by the API. Services raise most of these as
// domain error codes; the handlers pass them through unchanged.
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"

	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"

	ErrCodeInvalidState = "INVALID_STATE"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code. Validation
// codes follow the INVALID_<FIELD> convention and map to 400, as does
// any other domain code without an explicit mapping.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
