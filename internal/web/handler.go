package web

import (
	"context"
	"log/slog"
	"time"

	"meetingportal/internal/account"
	"meetingportal/internal/meeting"
	"meetingportal/internal/ratelimit"
	"meetingportal/internal/telemetry"

	"github.com/gofiber/fiber/v2/middleware/session"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger        *slog.Logger
	store         *session.Store
	accounts      *account.Manager
	authenticator *account.Authenticator
	meetings      *meeting.Manager
	limiter       ratelimit.Limiter
	metrics       *telemetry.Metrics
	health        Pinger
	location      *time.Location
	now           func() time.Time
}

type HandlerParam struct {
	Store         *session.Store
	Accounts      *account.Manager
	Authenticator *account.Authenticator
	Meetings      *meeting.Manager
	Limiter       ratelimit.Limiter
	Metrics       *telemetry.Metrics
	Health        Pinger
	// Location interprets meeting dates for calendar export. Defaults to UTC.
	Location *time.Location
}

func NewHandler(logger *slog.Logger, param HandlerParam) *Handler {
	loc := param.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		logger:        logger,
		store:         param.Store,
		accounts:      param.Accounts,
		authenticator: param.Authenticator,
		meetings:      param.Meetings,
		limiter:       param.Limiter,
		metrics:       param.Metrics,
		health:        param.Health,
		location:      loc,
		now:           time.Now,
	}
}
