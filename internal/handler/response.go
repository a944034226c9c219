package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"forwardicons/internal/domain"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg, details string) {
	c.JSON(status, ErrorBody{Error: msg, Details: details})
}

// MapDomainError translates domain errors to an HTTP status and public
// message. withDetails reports whether the error text may be shown.
func MapDomainError(err error) (status int, msg string, withDetails bool) {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "missing image", false
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request", true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "not authorized", false
	case errors.Is(err, domain.ErrFeatureDisabled):
		return http.StatusForbidden, "custom cutout is disabled", false
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "rate limit exceeded", false
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found", false
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "service misconfigured", true
	case errors.Is(err, domain.ErrMerge):
		return http.StatusInternalServerError, "catalog update failed", true
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusInternalServerError, "upstream service failed", true
	default:
		return http.StatusInternalServerError, "an internal error occurred", false
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, msg, withDetails := MapDomainError(err)
	if status >= 500 {
		slog.ErrorContext(c.Request.Context(), "internal error", "path", c.FullPath(), "error", err)
	}
	details := ""
	if withDetails {
		details = err.Error()
	}
	_ = c.Error(err)
	RespondError(c, status, msg, details)
}
