package httpapi

import (
	"net/http"
	"time"

	"devpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the uniform response shape of every endpoint.
type Envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC(),
	})
}

// writeSerErr translates a service error into the envelope; anything outside
// the closed code set is logged and collapsed into INTERNAL.
func (h *Handler) writeSerErr(c *gin.Context, err error) {
	if serr, ok := err.(*service.Error); ok {
		respondError(c, mapSerErrToStatus(serr.Code), string(serr.Code), serr.Msg)
		return
	}

	h.log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, string(service.ErrorCodeInternal), "internal server error")
}

func mapSerErrToStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeBadRequest:
		return http.StatusBadRequest
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	case service.ErrorCodeAIUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, string(service.ErrorCodeBadRequest), message)
}
