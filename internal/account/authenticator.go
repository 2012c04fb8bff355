package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"meetingportal/internal/audit"
	"meetingportal/internal/model"
	"meetingportal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator struct {
	logger  *slog.Logger
	users   repository.UserRepository
	auditor *audit.Auditor
}

func NewAuthenticator(logger *slog.Logger, users repository.UserRepository, auditor *audit.Auditor) *Authenticator {
	return &Authenticator{logger: logger, users: users, auditor: auditor}
}

type LoginParam struct {
	Email    string
	Password string
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (a *Authenticator) Login(ctx context.Context, param LoginParam) (model.User, error) {
	user, err := a.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(param.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(param.Password)); err != nil {
		return model.User{}, ErrInvalidCredentials
	}

	if err := a.auditor.LogEvent(ctx, audit.LogEventParam{
		OwnerID: user.ID,
		Type:    audit.AuditLogEventTypeUserLogin,
		Data: map[string]any{
			"email":   user.Email,
			"user_id": user.ID,
		},
	}); err != nil {
		a.logger.ErrorContext(ctx, "Failed to log audit event", "error", err)
	}

	return user, nil
}

func (a *Authenticator) Logout(ctx context.Context, userID uuid.UUID) {
	if err := a.auditor.LogEvent(ctx, audit.LogEventParam{
		OwnerID: userID,
		Type:    audit.AuditLogEventTypeUserLogout,
	}); err != nil {
		a.logger.ErrorContext(ctx, "Failed to log audit event", "error", err)
	}
}
