package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"meetingportal/internal/account"
	"meetingportal/internal/audit"
	"meetingportal/internal/meeting"
	"meetingportal/internal/model"
	"meetingportal/internal/ratelimit"
	"meetingportal/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type captureMailer struct {
	mu    sync.Mutex
	links map[string]string
}

func (m *captureMailer) SendPasswordReset(ctx context.Context, email, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[email] = link
	return nil
}

func (m *captureMailer) token(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[email]
	require.True(t, ok, "no reset link sent to %s", email)
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

// failingRepo stores meetings in memory but every update fails.
type failingRepo struct {
	*repository.MemoryRepository
}

func (r failingRepo) UpdateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	return model.Meeting{}, errors.New("connection reset by peer")
}

type testEnv struct {
	app    *fiber.App
	mailer *captureMailer
}

func newTestEnv(t *testing.T, meetingRepo func(*repository.MemoryRepository) repository.MeetingRepository) testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewMemoryRepository()
	auditor := audit.NewAuditor(logger, io.Discard)
	mailer := &captureMailer{links: map[string]string{}}

	accounts := account.NewManager(logger, repo, account.NewCacheTokenStore(time.Hour), mailer, auditor, account.ManagerConfig{
		BaseURL:      "http://portal.test",
		ResetTTL:     time.Hour,
		PasswordCost: bcrypt.MinCost,
	})

	var meetings repository.MeetingRepository = repo
	if meetingRepo != nil {
		meetings = meetingRepo(repo)
	}

	h := NewHandler(logger, HandlerParam{
		Store:         session.New(session.Config{KeyLookup: "cookie:session_id"}),
		Accounts:      accounts,
		Authenticator: account.NewAuthenticator(logger, repo, auditor),
		Meetings:      meeting.NewManager(logger, meetings, auditor, nil, meeting.Config{SaveTimeout: time.Second}),
		Limiter:       ratelimit.NewCacheLimiter(nil),
		Health:        repo,
	})

	return testEnv{
		app:    NewApp(AppConfig{ServiceName: "meetingportal-test", AuthRequestsPerMinute: 1000}, h),
		mailer: mailer,
	}
}

func (e testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	decoded := map[string]any{}
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func (e testEnv) register(t *testing.T, name, email string) {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"fullName":        name,
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
		"acceptTerms":     true,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
}

func (e testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func (e testEnv) signUp(t *testing.T, name, email string) *http.Cookie {
	t.Helper()
	e.register(t, name, email)
	return e.login(t, email, "password123")
}

func planningMeeting() map[string]any {
	return map[string]any{
		"title":       "Q1 Planning",
		"description": "Quarterly goals",
		"date":        "2025-03-14",
		"time":        "09:30",
		"duration":    60,
		"location":    "Room 4B",
		"building":    "HQ",
		"attendees":   []string{"mike.c@company.com"},
		"agenda":      []string{"Review Q4", "  "},
	}
}

func meetingPath(body map[string]any, suffix string) string {
	return fmt.Sprintf("/api/meetings/%v%s", body["id"], suffix)
}

func TestRegister_RequiredFields(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing_full_name", body: map[string]any{"email": "a@b.io", "password": "password123"}},
		{name: "empty_email", body: map[string]any{"fullName": "Ann", "email": "", "password": "password123"}},
		{name: "blank_full_name", body: map[string]any{"fullName": "   ", "email": "a@b.io", "password": "password123"}},
		{name: "missing_password", body: map[string]any{"fullName": "Ann", "email": "a@b.io"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, http.MethodPost, "/api/auth/register", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "All fields are required", body["message"])
		})
	}
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("optional_fields_default", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
			"fullName": "Sarah Johnson",
			"email":    "Sarah.J@Company.com",
			"password": "password123",
		}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "User registered successfully.", body["message"])
	})

	t.Run("duplicate_email", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
			"fullName": "Sarah Again",
			"email":    "sarah.j@company.com",
			"password": "password123",
		}, nil)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("weak_password", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
			"fullName": "Mike Chen",
			"email":    "mike.c@company.com",
			"password": "short",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(account.CodeWeakPassword), body["code"])
	})

	t.Run("terms_declined", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
			"fullName":    "Mike Chen",
			"email":       "mike.c@company.com",
			"password":    "password123",
			"acceptTerms": false,
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(account.CodeTermsNotAccepted), body["code"])
	})

	t.Run("invalid_email", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, "/api/auth/register", map[string]any{
			"fullName": "Mike Chen",
			"email":    "mike@company",
			"password": "password123",
		}, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, string(account.CodeInvalidEmail), body["code"])
	})
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, "Sarah Johnson", "sarah.j@company.com")

	resp, body := env.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "sarah.j@company.com",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, account.ErrInvalidCredentials.Error(), body["message"])

	resp, _ = env.do(t, http.MethodGet, "/api/dashboard", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := env.login(t, "SARAH.J@company.com", "password123")

	resp, body = env.do(t, http.MethodGet, "/api/dashboard", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["hosted"])

	resp, _ = env.do(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/dashboard", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeetingLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	sarah := env.signUp(t, "Sarah Johnson", "sarah.j@company.com")
	mike := env.signUp(t, "Mike Chen", "mike.c@company.com")
	kim := env.signUp(t, "Kim Lee", "kim@company.com")

	resp, created := env.do(t, http.MethodPost, "/api/meetings", planningMeeting(), sarah)
	require.Equal(t, http.StatusCreated, resp.StatusCode, created)
	assert.Equal(t, "upcoming", created["status"])
	assert.Len(t, created["attendees"], 1)
	assert.Len(t, created["agenda"], 1)

	base := meetingPath(created, "")

	t.Run("invalid_meeting_lists_fields", func(t *testing.T) {
		bad := planningMeeting()
		bad["title"] = ""
		bad["duration"] = 20
		resp, body := env.do(t, http.MethodPost, "/api/meetings", bad, sarah)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Len(t, body["errors"], 2)
	})

	t.Run("invitee_can_read_but_not_change", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, base, nil, mike)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = env.do(t, http.MethodPut, base, map[string]any{"title": "Hijacked"}, mike)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, body := env.do(t, http.MethodGet, "/api/meetings?tab=invited", nil, mike)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["items"], 1)
	})

	t.Run("stranger_sees_not_found", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, base, nil, kim)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("attendees", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, base+"/attendees", map[string]any{"email": "kim@company.com"}, sarah)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Len(t, body["attendees"], 2)

		resp, body = env.do(t, http.MethodPost, base+"/attendees", map[string]any{"email": "KIM@company.com"}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["attendees"], 2)

		resp, _ = env.do(t, http.MethodPatch, base+"/attendees/1", map[string]any{"status": "accepted"}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = env.do(t, http.MethodPatch, base+"/attendees/1", map[string]any{"status": "maybe"}, sarah)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		resp, _ = env.do(t, http.MethodPatch, base+"/attendees/99", map[string]any{"status": "declined"}, sarah)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("agenda", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, base+"/agenda", map[string]any{"text": "  Budget review "}, sarah)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		agenda := body["agenda"].([]any)
		assert.Equal(t, "Budget review", agenda[1].(map[string]any)["text"])

		resp, body = env.do(t, http.MethodPost, base+"/agenda", map[string]any{"text": "   "}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["agenda"], 2)

		resp, _ = env.do(t, http.MethodPut, base+"/agenda/1", map[string]any{"text": "Review Q4 results"}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body = env.do(t, http.MethodPut, base+"/agenda/1", map[string]any{"text": "  "}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		agenda = body["agenda"].([]any)
		assert.Equal(t, "Review Q4 results", agenda[0].(map[string]any)["text"])

		resp, _ = env.do(t, http.MethodPut, base+"/agenda/42", map[string]any{"text": "Nope"}, sarah)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, body = env.do(t, http.MethodDelete, base+"/agenda/1", nil, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["agenda"], 1)
	})

	t.Run("tasks_and_notes", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPost, base+"/tasks", map[string]any{
			"title":       "Draft roadmap",
			"assigned_to": "Mike Chen",
			"due_date":    "2025-03-20",
		}, sarah)
		require.Equal(t, http.StatusCreated, resp.StatusCode, body)
		task := body["tasks"].([]any)[0].(map[string]any)
		assert.Equal(t, "pending", task["status"])
		assert.Equal(t, "medium", task["priority"])

		resp, _ = env.do(t, http.MethodPost, base+"/tasks", map[string]any{"title": " "}, sarah)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		resp, _ = env.do(t, http.MethodPatch, base+"/tasks/1", map[string]any{"status": "completed"}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body = env.do(t, http.MethodPost, base+"/notes", map[string]any{"content": "Budget approved"}, sarah)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		note := body["notes"].([]any)[0].(map[string]any)
		assert.Equal(t, "Sarah Johnson", note["author"])
	})

	t.Run("summary", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, base+"/summary", nil, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		attendees := body["attendees"].(map[string]any)
		assert.EqualValues(t, 1, attendees["accepted"])
		assert.EqualValues(t, 1, attendees["pending"])
		assert.EqualValues(t, 2, attendees["total"])

		tasks := body["tasks"].(map[string]any)
		assert.EqualValues(t, 1, tasks["completed"])
		assert.EqualValues(t, 1, body["notes"])
	})

	t.Run("calendar_export", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, base+"/calendar.ics", nil, mike)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "BEGIN:VEVENT")
		assert.Contains(t, string(raw), "SUMMARY:Q1 Planning")
	})

	t.Run("update_details", func(t *testing.T) {
		resp, body := env.do(t, http.MethodPut, base, map[string]any{"title": "Q1 Planning (moved)", "time": "10:00"}, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Q1 Planning (moved)", body["title"])
		assert.Equal(t, "HQ", body["building"])

		resp, _ = env.do(t, http.MethodPut, base, map[string]any{"duration": 50}, sarah)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		resp, _ = env.do(t, http.MethodPut, base, map[string]any{"status": "postponed"}, sarah)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("list_filters", func(t *testing.T) {
		resp, body := env.do(t, http.MethodGet, "/api/meetings?tab=hosted&q=PLANNING", nil, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["items"], 1)

		resp, body = env.do(t, http.MethodGet, "/api/meetings?q=retro", nil, sarah)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, body["items"], 0)

		resp, _ = env.do(t, http.MethodGet, "/api/meetings?tab=archived", nil, sarah)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodDelete, base, nil, mike)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = env.do(t, http.MethodDelete, base, nil, sarah)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = env.do(t, http.MethodGet, base, nil, sarah)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad_id", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, "/api/meetings/abc", nil, sarah)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateMeeting_TransientFailureIsRetryable(t *testing.T) {
	env := newTestEnv(t, func(repo *repository.MemoryRepository) repository.MeetingRepository {
		return failingRepo{MemoryRepository: repo}
	})
	sarah := env.signUp(t, "Sarah Johnson", "sarah.j@company.com")

	resp, created := env.do(t, http.MethodPost, "/api/meetings", planningMeeting(), sarah)
	require.Equal(t, http.StatusCreated, resp.StatusCode, created)

	resp, body := env.do(t, http.MethodPut, meetingPath(created, ""), map[string]any{"title": "Renamed"}, sarah)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, true, body["retryable"])
}

func TestPasswordReset(t *testing.T) {
	env := newTestEnv(t, nil)
	env.register(t, "Sarah Johnson", "sarah.j@company.com")

	known, knownBody := env.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]any{"email": "sarah.j@company.com"}, nil)
	unknown, unknownBody := env.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]any{"email": "nobody@company.com"}, nil)
	assert.Equal(t, http.StatusOK, known.StatusCode)
	assert.Equal(t, known.StatusCode, unknown.StatusCode)
	assert.Equal(t, knownBody, unknownBody)
	assert.Equal(t, string(account.ResetStateLinkSent), knownBody["state"])

	token := env.mailer.token(t, "sarah.j@company.com")

	t.Run("reset_page_states", func(t *testing.T) {
		resp, _ := env.do(t, http.MethodGet, "/reset-password", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		raw, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), "Invalid or expired link")

		resp, _ = env.do(t, http.MethodGet, "/reset-password?token="+url.QueryEscape(token), nil, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		raw, _ = io.ReadAll(resp.Body)
		assert.Contains(t, string(raw), `name="password"`)
	})

	resp, body := env.do(t, http.MethodPost, "/api/auth/reset-password", map[string]any{
		"token":           token,
		"password":        "newpassword1",
		"confirmPassword": "newpassword2",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(account.CodePasswordMismatch), body["code"])
	assert.Equal(t, string(account.ResetStateAwaitingNewPassword), body["state"])

	resp, body = env.do(t, http.MethodPost, "/api/auth/reset-password", map[string]any{
		"token":           token,
		"password":        "newpassword1",
		"confirmPassword": "newpassword1",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(account.ResetStatePasswordsSet), body["state"])

	resp, body = env.do(t, http.MethodPost, "/api/auth/reset-password", map[string]any{
		"token":           token,
		"password":        "another-pass",
		"confirmPassword": "another-pass",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, string(account.ResetStateInvalidToken), body["state"])

	env.login(t, "sarah.j@company.com", "newpassword1")
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, nil)

	var last *http.Response
	for range 6 {
		last, _ = env.do(t, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "sarah.j@company.com",
			"password": "guess",
		}, nil)
	}
	assert.Equal(t, http.StatusTooManyRequests, last.StatusCode)
}

func TestPagesAndHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, path := range []string{"/login", "/register", "/forgot-password"} {
		t.Run(strings.TrimPrefix(path, "/"), func(t *testing.T) {
			resp, _ := env.do(t, http.MethodGet, path, nil, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		})
	}

	resp, body := env.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "frame-ancestors 'none'")

	resp, _ = env.do(t, http.MethodGet, "/static/forms.js", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &model.ValidationError{}, want: fiber.StatusUnprocessableEntity},
		{name: "transient", err: &meeting.TransientError{Op: "save", Err: context.DeadlineExceeded}, want: fiber.StatusServiceUnavailable},
		{name: "not_found", err: meeting.ErrMeetingNotFound, want: fiber.StatusNotFound},
		{name: "forbidden", err: meeting.ErrForbidden, want: fiber.StatusForbidden},
		{name: "registration", err: account.ErrWeakPassword, want: fiber.StatusBadRequest},
		{name: "duplicate", err: account.ErrDuplicateEmail, want: fiber.StatusConflict},
		{name: "too_many", err: ratelimit.ErrTooManyAttempts, want: fiber.StatusTooManyRequests},
		{name: "unknown", err: errors.New("boom"), want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}
