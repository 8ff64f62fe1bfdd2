package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hbnb/internal/auth"
	"hbnb/internal/facade"
	"hbnb/internal/models"
)

// statusFor maps the failure taxonomy to HTTP status codes. The table is
// identical for every entity type; tests pin it down.
func statusFor(err error) int {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, facade.ErrEmailExists),
		errors.Is(err, facade.ErrDuplicateName),
		errors.Is(err, facade.ErrDuplicateReview),
		errors.Is(err, facade.ErrSelfReview),
		errors.Is(err, facade.ErrUserOwnsPlaces):
		return http.StatusBadRequest
	case errors.Is(err, facade.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortError writes the error as JSON with its mapped status. Internal
// failures are logged and hidden behind a generic message.
func (a *API) abortError(c *gin.Context, err error) {
	status := statusFor(err)
	c.Error(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("internal error", "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// abortForbidden rejects a mutation the ownership predicate disallowed.
func (a *API) abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed to modify this resource"})
}
