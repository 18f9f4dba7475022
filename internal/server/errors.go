package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mediarelay/internal/media"
)

const providerUnavailable = "Provider unavailable"

// classify maps an operation error to a status and client-facing message.
// upstreamStatus is the code the route reports for an unavailable provider.
func classify(err error, upstreamStatus int) (int, string) {
	switch {
	case errors.Is(err, media.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, media.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, media.ErrUpstreamUnavailable):
		return upstreamStatus, providerUnavailable
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

// fail writes {"error": msg} with the classified status.
func fail(c *gin.Context, err error, upstreamStatus int) {
	status, msg := classify(err, upstreamStatus)
	logFor(c).WithError(err).WithField("status", status).Warn("request failed")
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

// failStatus writes {"status": "error", "message": msg}, the envelope of the
// video lookup route.
func failStatus(c *gin.Context, err error, upstreamStatus int) {
	status, msg := classify(err, upstreamStatus)
	logFor(c).WithError(err).WithField("status", status).Warn("request failed")
	_ = c.Error(err)
	c.JSON(status, gin.H{"status": "error", "message": msg})
}
