package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdfgenie/genie/models"
)

// respondError maps err to an HTTP status and writes the JSON envelope.
func respondError(c *gin.Context, err error) {
	ge := models.AsGenieError(err)
	status := mapErrorToStatus(ge)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"path", c.FullPath(),
			"code", ge.Code,
			"error", err,
		)
	}
	c.JSON(status, models.Response{Error: ge.ToDetail()})
}

// badRequest reports a binding or validation failure.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse(models.ErrCodeInvalidInput, err.Error()))
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.GenieError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput, models.ErrCodeNoSession:
		return http.StatusBadRequest // 400
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	case models.ErrCodeNotFound, models.ErrCodeUpstreamNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUpstreamTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeUpstreamUnavailable:
		return http.StatusServiceUnavailable // 503
	case models.ErrCodeUpstreamAuth, models.ErrCodeUpstreamForbidden,
		models.ErrCodeUpstreamInternal, models.ErrCodeUpstreamFailure,
		models.ErrCodeUpstreamUnreachable, models.ErrCodeUpstreamBadResponse,
		models.ErrCodeFeedbackNotPersisted:
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}
