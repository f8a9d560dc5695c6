package news

import (
	"errors"
	"net/http"

	"finpress-backend/internal/domains/content"
)

var (
	ErrNewsNotFound      = errors.New("news not found")
	ErrSlugAlreadyExists = errors.New("slug already exists")
	ErrVersionConflict   = errors.New("version conflict: news was modified by another request")
	ErrCategoryNotFound  = errors.New("category not found")
)

// GetHTTPStatusCode maps a service error to an HTTP status.
func GetHTTPStatusCode(err error) int {
	switch {
	case content.IsValidationError(err), content.IsTransitionError(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrNewsNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCategoryNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrSlugAlreadyExists), errors.Is(err, ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode maps a service error to the envelope error code.
func ErrorCode(err error) string {
	switch {
	case content.IsValidationError(err):
		return "VALIDATION_ERROR"
	case content.IsTransitionError(err):
		return "INVALID_TRANSITION"
	case errors.Is(err, ErrNewsNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrCategoryNotFound):
		return "BAD_REQUEST"
	case errors.Is(err, ErrSlugAlreadyExists), errors.Is(err, ErrVersionConflict):
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}
