package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

type AuditLogEventType string

const (
	AuditLogEventTypeUserLogin             AuditLogEventType = "user.login"
	AuditLogEventTypeUserLogout            AuditLogEventType = "user.logout"
	AuditLogEventTypeUserRegister          AuditLogEventType = "user.register"
	AuditLogEventTypeUserPasswordResetLink AuditLogEventType = "user.password_reset_requested"
	AuditLogEventTypeUserPasswordReset     AuditLogEventType = "user.password_reset"
	AuditLogEventTypeMeetingCreate         AuditLogEventType = "meeting.create"
	AuditLogEventTypeMeetingUpdate         AuditLogEventType = "meeting.update"
	AuditLogEventTypeMeetingDelete         AuditLogEventType = "meeting.delete"
	AuditLogEventTypeMeetingComplete       AuditLogEventType = "meeting.complete"
)

// Auditor appends one JSON line per security relevant event. Without a
// writer the events go to the application log instead.
type Auditor struct {
	logger *slog.Logger
	mu     sync.Mutex
	out    io.Writer
}

func NewAuditor(logger *slog.Logger, out io.Writer) *Auditor {
	return &Auditor{logger: logger, out: out}
}

// NewRotatingWriter returns a size-rotated audit file.
func NewRotatingWriter(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
		Compress:   true,
	}
}

type LogEventParam struct {
	OwnerID uuid.UUID
	Type    AuditLogEventType
	Data    map[string]any
}

type record struct {
	Timestamp string            `json:"timestamp"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	Type      AuditLogEventType `json:"type"`
	Data      map[string]any    `json:"data,omitempty"`
}

func (a *Auditor) LogEvent(ctx context.Context, params LogEventParam) error {
	if a.out == nil {
		a.logger.InfoContext(ctx, "Audit event", "type", params.Type, "owner_id", params.OwnerID, "data", params.Data)
		return nil
	}

	data, err := json.Marshal(record{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		OwnerID:   params.OwnerID,
		Type:      params.Type,
		Data:      params.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal audit log event data: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit log event: %w", err)
	}
	return nil
}
