package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"meetingportal/internal/audit"
	"meetingportal/internal/model"
	"meetingportal/internal/repository"
	"meetingportal/internal/util"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Manager struct {
	logger       *slog.Logger
	users        repository.UserRepository
	tokens       TokenStore
	mailer       Mailer
	auditor      *audit.Auditor
	baseURL      string
	resetTTL     time.Duration
	passwordCost int
}

type ManagerConfig struct {
	BaseURL  string
	ResetTTL time.Duration
	// PasswordCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	PasswordCost int
}

func NewManager(logger *slog.Logger, users repository.UserRepository, tokens TokenStore, mailer Mailer, auditor *audit.Auditor, cfg ManagerConfig) *Manager {
	cost := cfg.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Manager{
		logger:       logger,
		users:        users,
		tokens:       tokens,
		mailer:       mailer,
		auditor:      auditor,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		resetTTL:     cfg.ResetTTL,
		passwordCost: cost,
	}
}

// Register validates input, hashes the password and stores the user.
// A taken email fails with ErrDuplicateEmail.
func (m *Manager) Register(ctx context.Context, input RegistrationInput) (model.User, error) {
	draft, err := ValidateRegistration(input)
	if err != nil {
		return model.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), m.passwordCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	draft.PasswordHash = string(passwordHash)

	user, err := m.users.CreateUser(ctx, draft)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := m.auditor.LogEvent(ctx, audit.LogEventParam{
		OwnerID: user.ID,
		Type:    audit.AuditLogEventTypeUserRegister,
		Data: map[string]any{
			"user_id": user.ID,
		},
	}); err != nil {
		m.logger.ErrorContext(ctx, "Failed to log audit event", "error", err)
	}

	return user, nil
}

func (m *Manager) GetUserByID(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := m.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by ID %s: %w", userID, err)
	}
	return user, nil
}

// RequestPasswordReset always returns a flow in LinkSent so callers cannot
// tell whether the email belongs to an account. Only a known email gets a
// token and a link.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) (ResetFlow, error) {
	flow := NewResetFlow()
	if err := flow.SubmitEmail(); err != nil {
		return flow, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return flow, nil
	}

	user, err := m.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			m.logger.DebugContext(ctx, "Password reset requested for unknown email")
			return flow, nil
		}
		return flow, fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := util.RandomString(32)
	if err != nil {
		return flow, fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := m.tokens.Save(ctx, token, user.ID, m.resetTTL); err != nil {
		return flow, err
	}

	link := m.baseURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := m.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		return flow, fmt.Errorf("failed to send reset link: %w", err)
	}

	if err := m.auditor.LogEvent(ctx, audit.LogEventParam{
		OwnerID: user.ID,
		Type:    audit.AuditLogEventTypeUserPasswordResetLink,
	}); err != nil {
		m.logger.ErrorContext(ctx, "Failed to log audit event", "error", err)
	}

	return flow, nil
}

// BeginPasswordReset follows a reset link. The returned flow is either
// AwaitingNewPassword or the terminal InvalidToken.
func (m *Manager) BeginPasswordReset(ctx context.Context, token string) (ResetFlow, error) {
	flow := NewResetFlow()
	if err := flow.OpenLink(token); err != nil {
		return flow, err
	}
	if flow.State != ResetStateAwaitingNewPassword {
		return flow, nil
	}

	if _, err := m.tokens.Lookup(ctx, token); err != nil {
		flow.Invalidate()
		if errors.Is(err, ErrTokenNotFound) {
			return flow, nil
		}
		return flow, err
	}
	return flow, nil
}

type CompletePasswordResetParam struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// CompletePasswordReset sets the new password and consumes the token. A
// mismatch or weak password leaves the token valid so the user can retry.
func (m *Manager) CompletePasswordReset(ctx context.Context, param CompletePasswordResetParam) (ResetFlow, error) {
	flow, err := m.BeginPasswordReset(ctx, param.Token)
	if err != nil {
		return flow, err
	}
	if flow.State != ResetStateAwaitingNewPassword {
		return flow, ErrInvalidResetToken
	}

	if err := ValidateNewPassword(param.Password, param.ConfirmPassword); err != nil {
		flow.Err = err
		return flow, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(param.Password), m.passwordCost)
	if err != nil {
		return flow, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := m.tokens.Consume(ctx, param.Token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			flow.Invalidate()
			return flow, ErrInvalidResetToken
		}
		return flow, err
	}

	if err := m.users.UpdateUserPassword(ctx, userID, string(passwordHash)); err != nil {
		// Put the token back so the link still works once the store recovers.
		if restoreErr := m.tokens.Save(ctx, param.Token, userID, m.resetTTL); restoreErr != nil {
			m.logger.ErrorContext(ctx, "Failed to restore reset token", "error", restoreErr)
		}
		return flow, fmt.Errorf("failed to update password: %w", err)
	}

	if err := flow.SubmitPasswords(param.Password, param.ConfirmPassword); err != nil {
		return flow, err
	}

	if err := m.auditor.LogEvent(ctx, audit.LogEventParam{
		OwnerID: userID,
		Type:    audit.AuditLogEventTypeUserPasswordReset,
	}); err != nil {
		m.logger.ErrorContext(ctx, "Failed to log audit event", "error", err)
	}

	return flow, nil
}
