package analysis

import (
	"errors"
	"net/http"

	"finpress-backend/internal/domains/content"
)

var (
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrSlugAlreadyExists = errors.New("analysis with this slug already exists")
	ErrVersionConflict   = errors.New("version conflict: analysis was modified by another request")
	ErrCategoryNotFound  = errors.New("category not found")
)

// GetHTTPStatusCode maps domain errors to HTTP statuses.
func GetHTTPStatusCode(err error) int {
	switch {
	case content.IsValidationError(err), content.IsTransitionError(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrAnalysisNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrSlugAlreadyExists), errors.Is(err, ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode maps domain errors to machine-readable response codes.
func ErrorCode(err error) string {
	switch {
	case content.IsValidationError(err):
		return "VALIDATION_ERROR"
	case content.IsTransitionError(err):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrAnalysisNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrCategoryNotFound):
		return "BAD_REQUEST"
	case errors.Is(err, ErrSlugAlreadyExists), errors.Is(err, ErrVersionConflict):
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}
