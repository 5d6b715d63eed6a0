package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/akashgouda-01/dept-changes/internal/http/middleware"
	"github.com/akashgouda-01/dept-changes/internal/service"
)

// errorPayload defines the standardized error response body.
// success is always false here; the dashboard client branches on it.
type errorPayload struct {
	Success   bool          `json:"success"`
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Entries []service.EntryError `json:"entries,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Transition and conflict failures echo the service message so the caller can
// see the actual current state and reconcile.
func writeServiceError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		res := errorPayload{
			RequestID: requestIDFromCtx(c),
			Error: errorEnvelope{
				Code:    "VALIDATION_ERROR",
				Message: vErr.Message,
				Entries: vErr.Entries,
			},
		}
		return c.Status(fiber.StatusBadRequest).JSON(res)
	}

	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrFacultyNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, service.ErrConflictingResult):
		return writeError(c, fiber.StatusConflict, "CONFLICTING_RESULT", err.Error())
	case errors.Is(err, service.ErrUpstreamFailure):
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_FAILURE", "ml verifier unavailable")
	case errors.Is(err, service.ErrStoreUnavailable):
		return writeError(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "store unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := ""
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			message = e.Message
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", orDefault(message, "bad request"))
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", orDefault(message, "unauthorized"))
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", orDefault(message, "forbidden"))
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", orDefault(message, "resource not found"))
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
