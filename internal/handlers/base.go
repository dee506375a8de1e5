package handlers

import (
	"errors"
	"net/http"

	"campuslink/internal/services"

	"github.com/gin-gonic/gin"
)

// Fail writes a JSON error body with the given status.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// FailWith maps a service error onto its HTTP status. Every failure the core
// returns is recoverable by the caller, so each gets a short actionable
// message rather than a 500 page.
func FailWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrDuplicateComment),
		errors.Is(err, services.ErrDuplicateReport):
		Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrSelfReport),
		errors.Is(err, services.ErrMissingReason):
		Fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		Fail(c, http.StatusServiceUnavailable, "storage unavailable, please retry")
	default:
		Fail(c, http.StatusBadRequest, err.Error())
	}
}
