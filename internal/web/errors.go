package web

import (
	"context"
	"errors"

	"meetingportal/internal/account"
	"meetingportal/internal/meeting"
	"meetingportal/internal/model"
	"meetingportal/internal/ratelimit"
	"meetingportal/internal/telemetry"

	"github.com/gofiber/fiber/v2"
)

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	var (
		fiberErr     *fiber.Error
		validation   *model.ValidationError
		transient    *meeting.TransientError
		registration *account.RegistrationError
	)

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &validation):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &transient):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &registration):
		return fiber.StatusBadRequest
	case errors.Is(err, meeting.ErrMeetingNotFound),
		errors.Is(err, model.ErrAttendeeNotFound),
		errors.Is(err, model.ErrAgendaItemNotFound),
		errors.Is(err, model.ErrTaskNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, meeting.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, meeting.ErrInvalidTab),
		errors.Is(err, account.ErrInvalidResetToken):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrDuplicateEmail):
		return fiber.StatusConflict
	case errors.Is(err, account.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ratelimit.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError is the app's error handler: every error a handler returns
// is rendered here as a JSON body.
func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	body := fiber.Map{"message": err.Error()}

	var (
		validation   *model.ValidationError
		transient    *meeting.TransientError
		registration *account.RegistrationError
	)
	switch {
	case errors.As(err, &validation):
		body["message"] = "Validation failed"
		body["errors"] = validation.Fields
	case errors.As(err, &transient):
		body["message"] = "The meeting could not be saved right now. Please try again."
		body["retryable"] = transient.Retryable()
	case errors.As(err, &registration):
		body["message"] = registration.Message
		body["code"] = registration.Code
		if registration.Field != "" {
			body["field"] = registration.Field
		}
	case status == fiber.StatusRequestTimeout:
		body["message"] = "Request cancelled"
	case status == fiber.StatusInternalServerError:
		h.logger.ErrorContext(telemetry.ContextFromFiber(c), "Request failed", "path", c.Path(), "error", err)
		body["message"] = "Internal server error"
	}

	return c.Status(status).JSON(body)
}
