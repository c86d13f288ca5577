package middleware

import (
	"errors"
	"net/http"

	"github.com/Sunnatulloh07/SilkLineExpo-sub012/internal/transport/httpdto"
	sle_errors "github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/errors"
	"github.com/Sunnatulloh07/SilkLineExpo-sub012/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("request error: %s", err.Error())
		}
		status, code := StatusFor(err)
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), code))
	}
}

// StatusFor maps the service error kinds onto HTTP status and response code.
// Unavailability is the only retryable outcome.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, sle_errors.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, sle_errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, sle_errors.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_STATE"
	case errors.Is(err, sle_errors.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, sle_errors.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, sle_errors.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, sle_errors.ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED"
	case errors.Is(err, sle_errors.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "TRY_AGAIN"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
