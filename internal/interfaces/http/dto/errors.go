package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeBusinessRule      = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Upstream error codes for storefront/accounting/provider failures
const (
	ErrCodeUpstreamFailed      = "ERR_UPSTREAM_FAILED"
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUpstreamFailed:      http.StatusBadGateway,
	ErrCodeUpstreamUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to standardized API codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeInvalidInput,
	"INVALID_STATE":  ErrCodeInvalidState,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"INTERNAL_ERROR": ErrCodeInternal,

	"INVALID_CREDENTIALS": ErrCodeUnauthorized,
	"ACCOUNT_DEACTIVATED": ErrCodeForbidden,
	"SELF_DEMOTION":       ErrCodeBusinessRule,

	"INSUFFICIENT_STOCK":        ErrCodeInsufficientStock,
	"INVALID_STATUS_TRANSITION": ErrCodeInvalidState,
	"IMPORTED_ORDER":            ErrCodeBusinessRule,
	"EMPTY_ORDER":               ErrCodeBusinessRule,
	"INVALID_DISCOUNT":          ErrCodeBusinessRule,

	"ALREADY_CLOCKED_IN":  ErrCodeConflict,
	"ALREADY_CLOCKED_OUT": ErrCodeConflict,
	"NOT_CLOCKED_IN":      ErrCodeConflict,

	"CHANNEL_NOT_CONFIGURED": ErrCodeBusinessRule,
	"TEMPLATE_NOT_FOUND":     ErrCodeNotFound,
	"USER_NOT_FOUND":         ErrCodeNotFound,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// Validation-style codes (INVALID_*) fall back to ERR_VALIDATION; anything
// else unknown is returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return ErrCodeValidation
	}
	return code
}
