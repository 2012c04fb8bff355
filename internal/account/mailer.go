package account

import (
	"context"
	"log/slog"
)

type Mailer interface {
	SendPasswordReset(ctx context.Context, email, link string) error
}

// LogMailer writes reset links to the log instead of delivering them.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) LogMailer {
	return LogMailer{logger: logger}
}

func (m LogMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	m.logger.InfoContext(ctx, "Password reset link issued", "email", email, "link", link)
	return nil
}
