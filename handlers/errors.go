package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sjmedialabs/vbrlandscap-sub001/internal/store"
	"github.com/sjmedialabs/vbrlandscap-sub001/pkg/logger"
)

// APIError pairs a user-facing message with its HTTP status. Everything a
// handler can fail with is classified into this taxonomy; unclassified
// errors fall through to 500 with the collaborator's message, never a stack
// trace.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func validationError(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

func authError(msg string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msg}
}

func notFoundError(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

func rateLimitedError(msg string) *APIError {
	return &APIError{Status: http.StatusTooManyRequests, Message: msg}
}

func featureDisabledError(msg string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: msg}
}

func configurationError(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Message: msg}
}

// respondError is the single error boundary of every handler: classify,
// log server-side, and answer {"error": message} with the mapped status.
func respondError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			logger.Errorf("%s %s: %s", c.Request.Method, c.Request.URL.Path, apiErr.Message)
		} else {
			logger.Debugf("%s %s: %d %s", c.Request.Method, c.Request.URL.Path, apiErr.Status, apiErr.Message)
		}
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
