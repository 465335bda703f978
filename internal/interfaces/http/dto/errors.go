package dto

import (
	"net/http"
	"strings"
)

// HTTP-level error codes used by handlers and middleware; domain error
// codes come through shared.DomainError unchanged.
const (
	ErrCodeInternal     = "INTERNAL"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	// Auth
	"UNAUTHORIZED":        http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"FORBIDDEN":           http.StatusForbidden,
	"TENANT_INACTIVE":     http.StatusForbidden,
	"USER_INACTIVE":       http.StatusForbidden,

	// Resources
	"NOT_FOUND":            http.StatusNotFound,
	"COUPON_NOT_FOUND":     http.StatusNotFound,
	"MODULE_NOT_FOUND":     http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"CITY_IN_USE":          http.StatusConflict,

	// Business rules
	"INVALID_STATE":             http.StatusBadRequest,
	"INVALID_STATUS_TRANSITION": http.StatusBadRequest,
	"INSUFFICIENT_STOCK":        http.StatusBadRequest,
	"PRODUCT_UNAVAILABLE":       http.StatusBadRequest,
	"COMPLEMENT_UNAVAILABLE":    http.StatusBadRequest,
	"EMPTY_ORDER":               http.StatusBadRequest,
	"COUPON_INACTIVE":           http.StatusBadRequest,
	"COUPON_EXPIRED":            http.StatusBadRequest,
	"COUPON_EXHAUSTED":          http.StatusBadRequest,
	"BELOW_MINIMUM_PURCHASE":    http.StatusBadRequest,

	// Infrastructure
	"STORAGE_UNAVAILABLE": http.StatusBadGateway,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Codes not in the table fall back by prefix: INVALID_* is a 400,
// everything else a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
