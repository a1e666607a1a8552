package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hotel_climate/internal/apperr"
	"hotel_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// Error codes for failures that do not come from the service layer.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeRateLimit     = "RATE_LIMIT_EXCEEDED"
	CodeInternalError = "INTERNAL_ERROR"
)

const (
	errInternal = "internal error"
	errBusy     = "storage is busy, retry the request"
)

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	if errors.Is(err, service.ErrNotRoomOccupant) {
		return http.StatusForbidden
	}
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidState:
		return http.StatusConflict
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response for errors that carry no taxonomy.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, code, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Infow(logKey, fields...)
	}
	c.JSON(httpCode, errorResponse{Error: userMsg, Code: code})
}

// respondError writes a service error. Expected outcomes are logged at info,
// corrupted state and unknown failures at error level.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	status := statusFor(err)
	msg := err.Error()

	if h.log != nil {
		fields := append([]interface{}{"err", err, "kind", apperr.KindOf(err).String()}, kv...)
		if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}

	switch {
	case status == http.StatusServiceUnavailable:
		msg = errBusy
	case status >= http.StatusInternalServerError:
		msg = errInternal
	}
	c.JSON(status, errorResponse{Error: msg, Code: apperr.CodeOf(err)})
}

// withRetry runs op, retrying storage conflicts a bounded number of times.
func (h *Handler) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= h.opts.RetryAttempts; attempt++ {
		if err = op(); !apperr.IsRetryable(err) {
			return err
		}
		if attempt == h.opts.RetryAttempts {
			break
		}
		if h.log != nil {
			h.log.Warnw("storage_conflict_retry", "attempt", attempt, "err", err)
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(h.opts.RetryBackoff * time.Duration(attempt)):
		}
	}
	return err
}
