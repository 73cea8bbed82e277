// Package middleware holds the fiber middleware stack shared by every route.
package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tactics_server/pkg/apperr"
	"tactics_server/pkg/logger"
	"tactics_server/pkg/response"
)

const requestIDLocal = "request_id"

// ErrorHandler renders every error returned by a handler in the response
// envelope. AppErrors keep their code; fiber errors map by status.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		requestID, _ := c.Locals(requestIDLocal).(string)

		var appErr *apperr.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			ev := log.Warn()
			if appErr.Status >= 500 {
				ev = log.Error()
			}
			ev.Err(appErr.Err).
				Str("request_id", requestID).
				Str("error_code", appErr.Code).
				Msg(appErr.Message)
			return response.FromError(c, appErr)

		case errors.As(err, &fiberErr):
			return response.Error(c, fiberErr.Code, codeForStatus(fiberErr.Code), fiberErr.Message)

		default:
			log.Error().
				Err(err).
				Str("request_id", requestID).
				Str("path", c.Path()).
				Msg("unexpected error")
			return response.InternalError(c, "An unexpected error occurred")
		}
	}
}

// RequestID adds a request id to the response headers, the fiber locals and
// the user context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(requestIDLocal, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), requestID))
		return c.Next()
	}
}

// RequestLogger logs one line per request, at a level chosen by status.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = apperr.GetHTTPStatus(err)
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		requestID, _ := c.Locals(requestIDLocal).(string)
		ev.Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0).
			Str("ip", c.IP()).
			Msg("request completed")

		return err
	}
}

// Recover turns a panic into a 500 envelope and logs the stack.
func Recover(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Locals(requestIDLocal).(string)
				log.Error().
					Str("request_id", requestID).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("method", c.Method()).
					Str("path", c.Path()).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				err = response.InternalError(c, "An unexpected error occurred")
			}
		}()
		return c.Next()
	}
}

// SecurityHeaders adds the baseline security headers for a JSON API.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		return c.Next()
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperr.CodeBadRequest
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperr.CodeNotFound
	case fiber.StatusRequestTimeout, fiber.StatusGatewayTimeout:
		return apperr.CodeTimeout
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case fiber.StatusBadGateway, fiber.StatusServiceUnavailable:
		return apperr.CodeExternalError
	default:
		return apperr.CodeInternalError
	}
}
