package web

import (
	"errors"
	"log/slog"
	"time"

	"meetingportal/internal/account"
	"meetingportal/internal/model"
	"meetingportal/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionUserIDKey = "user_id"
	localsUserKey    = "user"
)

// RequestLogger logs one line per request once the handler chain is done.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The app error handler has not written the response yet.
			status = errorStatus(err)
		}

		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(telemetry.ContextFromFiber(c), level, "Request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
			"ip", c.IP(),
			"request_id", c.Locals("requestid"),
		)
		return err
	}
}

// SecurityHeaders sets the browser hardening headers on every response.
// Pages only load assets from /static.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"img-src 'self' data:; "+
				"frame-ancestors 'none'; "+
				"form-action 'self';")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if c.Protocol() == "https" {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(), payment=()")

		return c.Next()
	}
}

// RequireUser loads the signed-in user from the session and stores it in
// the request locals. Requests without a valid session get 401.
func (h *Handler) RequireUser(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	sess, err := h.store.Get(c)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get session", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	raw, _ := sess.Get(sessionUserIDKey).(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	user, err := h.accounts.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			if err := sess.Destroy(); err != nil {
				h.logger.ErrorContext(ctx, "Failed to destroy session", "error", err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		h.logger.ErrorContext(ctx, "Failed to load session user", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}

	c.Locals(localsUserKey, user)
	return c.Next()
}

func currentUser(c *fiber.Ctx) model.User {
	user, _ := c.Locals(localsUserKey).(model.User)
	return user
}
