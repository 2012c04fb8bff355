package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditor_LogEvent(t *testing.T) {
	var buf bytes.Buffer
	auditor := NewAuditor(slog.New(slog.NewTextHandler(io.Discard, nil)), &buf)
	owner := uuid.New()

	require.NoError(t, auditor.LogEvent(context.Background(), LogEventParam{
		OwnerID: owner,
		Type:    AuditLogEventTypeMeetingCreate,
		Data:    map[string]any{"meeting_id": 7},
	}))
	require.NoError(t, auditor.LogEvent(context.Background(), LogEventParam{
		OwnerID: owner,
		Type:    AuditLogEventTypeMeetingDelete,
	}))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var got map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &got))
	assert.Equal(t, "meeting.create", got["type"])
	assert.Equal(t, owner.String(), got["owner_id"])
	assert.Equal(t, float64(7), got["data"].(map[string]any)["meeting_id"])
	assert.NotEmpty(t, got["timestamp"])
}

func TestAuditor_FallsBackToLogger(t *testing.T) {
	var buf bytes.Buffer
	auditor := NewAuditor(slog.New(slog.NewTextHandler(&buf, nil)), nil)

	require.NoError(t, auditor.LogEvent(context.Background(), LogEventParam{Type: AuditLogEventTypeUserLogin}))
	assert.Contains(t, buf.String(), "type=user.login")
}
