package web

import (
	"meetingportal/internal/account"
	"meetingportal/internal/telemetry"
	"meetingportal/internal/web/view"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return render(c, view.LoginPage())
}

func (h *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	return render(c, view.RegisterPage())
}

func (h *Handler) ShowForgotPasswordPage(c *fiber.Ctx) error {
	return render(c, view.ForgotPasswordPage())
}

// ShowResetPasswordPage opens the reset link. A missing, malformed or
// unknown token renders the invalid link screen.
func (h *Handler) ShowResetPasswordPage(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)
	token := c.Query("token")

	flow, err := h.accounts.BeginPasswordReset(ctx, token)
	if err != nil {
		return err
	}

	valid := flow.State == account.ResetStateAwaitingNewPassword
	if !valid {
		c.Status(fiber.StatusBadRequest)
	}
	return render(c, view.ResetPasswordPage(token, valid))
}

func (h *Handler) Health(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	if err := h.health.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Database connection failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

func render(c *fiber.Ctx, component templ.Component) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.UserContext(), c.Response().BodyWriter())
}
