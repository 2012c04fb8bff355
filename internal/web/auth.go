package web

import (
	"errors"
	"strings"

	"meetingportal/internal/account"
	"meetingportal/internal/ratelimit"
	"meetingportal/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type registerRequest struct {
	FullName        *string `json:"fullName"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	ConfirmPassword *string `json:"confirmPassword"`
	AcceptTerms     *bool   `json:"acceptTerms"`
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// Register creates an account. The three identity fields are required;
// an omitted confirmPassword repeats password and an omitted acceptTerms
// counts as accepted.
func (h *Handler) Register(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if !present(req.FullName) || !present(req.Email) || req.Password == nil || *req.Password == "" {
		h.metrics.RecordRegistration(ctx, telemetry.OutcomeInvalid)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": account.ErrMissingField.Message,
		})
	}

	input := account.RegistrationInput{
		FullName:        *req.FullName,
		Email:           *req.Email,
		Password:        *req.Password,
		ConfirmPassword: *req.Password,
		AcceptTerms:     true,
	}
	if req.ConfirmPassword != nil {
		input.ConfirmPassword = *req.ConfirmPassword
	}
	if req.AcceptTerms != nil {
		input.AcceptTerms = *req.AcceptTerms
	}

	if err := h.checkLimit(c, ratelimit.ActionRegister, input.Email); err != nil {
		return err
	}

	user, err := h.accounts.Register(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrDuplicateEmail):
			h.metrics.RecordRegistration(ctx, telemetry.OutcomeDuplicate)
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "An account with this email already exists.",
			})
		case errorStatus(err) == fiber.StatusBadRequest:
			h.metrics.RecordRegistration(ctx, telemetry.OutcomeInvalid)
		default:
			h.metrics.RecordRegistration(ctx, telemetry.OutcomeFailed)
		}
		return err
	}

	h.metrics.RecordRegistration(ctx, telemetry.OutcomeRegistered)
	h.logger.InfoContext(ctx, "User registered", "user_id", user.ID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "User registered successfully.",
		"redirect": "/login",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	if err := h.checkLimit(c, ratelimit.ActionLogin, req.Email); err != nil {
		return err
	}

	user, err := h.authenticator.Login(ctx, account.LoginParam{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	// New session id on sign in.
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserIDKey, user.ID.String())
	if err := sess.Save(); err != nil {
		return err
	}

	if err := h.limiter.Reset(ctx, ratelimit.ActionLogin, req.Email); err != nil {
		h.logger.WarnContext(ctx, "Failed to reset login attempts", "error", err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Signed in successfully.",
		"user":    user,
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}

	if raw, ok := sess.Get(sessionUserIDKey).(string); ok {
		if userID, err := uuid.Parse(raw); err == nil {
			h.authenticator.Logout(ctx, userID)
		}
	}

	if err := sess.Destroy(); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Signed out successfully.",
		"redirect": "/login",
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword answers the same way whether or not the email belongs to
// an account.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Email) != "" {
		if err := h.checkLimit(c, ratelimit.ActionPasswordReset, req.Email); err != nil {
			return err
		}
	}

	flow, err := h.accounts.RequestPasswordReset(ctx, req.Email)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If an account exists for this email, a password reset link has been sent.",
		"state":   flow.State,
	})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	ctx := telemetry.ContextFromFiber(c)

	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	flow, err := h.accounts.CompletePasswordReset(ctx, account.CompletePasswordResetParam{
		Token:           req.Token,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var registration *account.RegistrationError
		switch {
		case errors.Is(err, account.ErrInvalidResetToken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "This password reset link is invalid or has expired.",
				"state":   flow.State,
			})
		case errors.As(err, &registration):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": registration.Message,
				"code":    registration.Code,
				"state":   flow.State,
			})
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Your password has been reset.",
		"state":    flow.State,
		"redirect": "/login",
	})
}

// checkLimit counts an attempt for key and returns ErrTooManyAttempts
// once the limit is hit. Limiter outages are logged and the request goes
// through.
func (h *Handler) checkLimit(c *fiber.Ctx, action ratelimit.Action, key string) error {
	ctx := telemetry.ContextFromFiber(c)

	err := h.limiter.Check(ctx, action, key)
	if err == nil || errors.Is(err, ratelimit.ErrTooManyAttempts) {
		return err
	}
	h.logger.WarnContext(ctx, "Rate limiter unavailable", "action", action, "error", err)
	return nil
}
