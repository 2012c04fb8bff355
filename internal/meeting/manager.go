package meeting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"meetingportal/internal/audit"
	"meetingportal/internal/model"
	"meetingportal/internal/repository"
	"meetingportal/internal/telemetry"
	"meetingportal/internal/util"
)

type Manager struct {
	logger      *slog.Logger
	repo        repository.MeetingRepository
	auditor     *audit.Auditor
	metrics     *telemetry.Metrics
	saveTimeout time.Duration
	location    *time.Location
	now         func() time.Time
}

type Config struct {
	SaveTimeout time.Duration
	// Location interprets meeting dates and times. Defaults to UTC.
	Location *time.Location
}

func NewManager(logger *slog.Logger, repo repository.MeetingRepository, auditor *audit.Auditor, metrics *telemetry.Metrics, cfg Config) *Manager {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Manager{
		logger:      logger,
		repo:        repo,
		auditor:     auditor,
		metrics:     metrics,
		saveTimeout: cfg.SaveTimeout,
		location:    loc,
		now:         time.Now,
	}
}

type CreateParam struct {
	Title       string
	Description string
	Date        string
	Time        string
	Duration    int
	Location    string
	Building    string
	Attendees   []string
	Agenda      []string
}

// Create builds a meeting organized by owner and stores it. Attendee
// emails and agenda lines that would be rejected one by one are skipped.
func (m *Manager) Create(ctx context.Context, owner model.User, param CreateParam) (model.Meeting, error) {
	meeting := model.Meeting{
		OwnerID:     owner.ID,
		Title:       strings.TrimSpace(param.Title),
		Description: strings.TrimSpace(param.Description),
		Date:        strings.TrimSpace(param.Date),
		Time:        model.CanonicalTime(param.Time),
		Duration:    param.Duration,
		Location:    strings.TrimSpace(param.Location),
		Building:    strings.TrimSpace(param.Building),
		Status:      model.MeetingStatusUpcoming,
		Organizer:   model.Organizer{Name: owner.DisplayName(), Email: owner.Email},
	}
	for _, email := range param.Attendees {
		meeting.AddAttendee(email)
	}
	for _, text := range param.Agenda {
		meeting.AddAgendaItem(text)
	}

	if err := meeting.Validate(); err != nil {
		m.metrics.RecordMeetingSave(ctx, "create", telemetry.OutcomeInvalid)
		return model.Meeting{}, err
	}

	created, err := m.persist(ctx, "create", func(ctx context.Context) (model.Meeting, error) {
		return m.repo.CreateMeeting(ctx, meeting)
	})
	if err != nil {
		return model.Meeting{}, err
	}

	m.audit(ctx, owner, audit.AuditLogEventTypeMeetingCreate, created.ID)
	m.logger.InfoContext(ctx, "Meeting created", "meeting_id", created.ID, "owner_id", owner.ID)
	return created, nil
}

// Get returns a meeting visible to user: one they organize or are invited
// to. Other meetings are reported as not found.
func (m *Manager) Get(ctx context.Context, user model.User, id int64) (model.Meeting, error) {
	meeting, err := m.load(ctx, id)
	if err != nil {
		return model.Meeting{}, err
	}
	if meeting.OwnerID != user.ID && !meeting.HasAttendee(user.Email) {
		return model.Meeting{}, ErrMeetingNotFound
	}
	return meeting, nil
}

func (m *Manager) load(ctx context.Context, id int64) (model.Meeting, error) {
	meeting, err := m.repo.GetMeeting(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return model.Meeting{}, ErrMeetingNotFound
		}
		return model.Meeting{}, fmt.Errorf("failed to get meeting %d: %w", id, err)
	}
	return meeting, nil
}

// Save validates meeting and writes it within the configured timeout.
// Validation problems return a *ValidationError, a store failure or
// timeout returns a *TransientError. A cancelled ctx returns ctx.Err().
func (m *Manager) Save(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	meeting.Normalize()
	if err := meeting.Validate(); err != nil {
		m.metrics.RecordMeetingSave(ctx, "save", telemetry.OutcomeInvalid)
		return model.Meeting{}, err
	}

	return m.persist(ctx, "save", func(ctx context.Context) (model.Meeting, error) {
		return m.repo.UpdateMeeting(ctx, meeting)
	})
}

func (m *Manager) persist(ctx context.Context, op string, write func(ctx context.Context) (model.Meeting, error)) (model.Meeting, error) {
	saveCtx, cancel := context.WithTimeout(ctx, m.saveTimeout)
	defer cancel()

	start := m.now()
	saved, err := write(saveCtx)
	m.metrics.RecordSaveDuration(ctx, op, m.now().Sub(start))

	if err == nil {
		m.metrics.RecordMeetingSave(ctx, op, telemetry.OutcomeSaved)
		return saved, nil
	}

	if errors.Is(err, repository.ErrMeetingNotFound) {
		m.metrics.RecordMeetingSave(ctx, op, telemetry.OutcomeNotFound)
		return model.Meeting{}, ErrMeetingNotFound
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		m.metrics.RecordMeetingSave(ctx, op, telemetry.OutcomeCancelled)
		return model.Meeting{}, ctxErr
	}

	m.metrics.RecordMeetingSave(ctx, op, telemetry.OutcomeTransient)
	m.logger.ErrorContext(ctx, "Failed to persist meeting", "operation", op, "error", err)
	return model.Meeting{}, &TransientError{Op: op, Err: err}
}

// Update applies fn to the stored meeting and saves the result. Only the
// organizer may change a meeting.
func (m *Manager) Update(ctx context.Context, user model.User, id int64, fn func(meeting *model.Meeting) error) (model.Meeting, error) {
	meeting, err := m.Get(ctx, user, id)
	if err != nil {
		return model.Meeting{}, err
	}
	if meeting.OwnerID != user.ID {
		return model.Meeting{}, ErrForbidden
	}

	if err := fn(&meeting); err != nil {
		return model.Meeting{}, err
	}

	saved, err := m.Save(ctx, meeting)
	if err != nil {
		return model.Meeting{}, err
	}

	m.audit(ctx, user, audit.AuditLogEventTypeMeetingUpdate, saved.ID)
	return saved, nil
}

type UpdateDetailsParam struct {
	Title       util.Optional[string]
	Description util.Optional[string]
	Date        util.Optional[string]
	Time        util.Optional[string]
	Duration    util.Optional[int]
	Location    util.Optional[string]
	Building    util.Optional[string]
	Status      util.Optional[model.MeetingStatus]
}

// UpdateDetails replaces the scalar fields that are set in param. Nested
// collections are left alone.
func (m *Manager) UpdateDetails(ctx context.Context, user model.User, id int64, param UpdateDetailsParam) (model.Meeting, error) {
	return m.Update(ctx, user, id, func(meeting *model.Meeting) error {
		if param.Title.IsSet {
			meeting.Title = strings.TrimSpace(param.Title.Val)
		}
		if param.Description.IsSet {
			meeting.Description = strings.TrimSpace(param.Description.Val)
		}
		if param.Date.IsSet {
			meeting.Date = strings.TrimSpace(param.Date.Val)
		}
		if param.Time.IsSet {
			meeting.Time = model.CanonicalTime(param.Time.Val)
		}
		if param.Duration.IsSet {
			meeting.Duration = param.Duration.Val
		}
		if param.Location.IsSet {
			meeting.Location = strings.TrimSpace(param.Location.Val)
		}
		if param.Building.IsSet {
			meeting.Building = strings.TrimSpace(param.Building.Val)
		}
		if param.Status.IsSet {
			meeting.Status = param.Status.Val
		}
		return nil
	})
}

func (m *Manager) Delete(ctx context.Context, user model.User, id int64) error {
	meeting, err := m.Get(ctx, user, id)
	if err != nil {
		return err
	}
	if meeting.OwnerID != user.ID {
		return ErrForbidden
	}

	if err := m.repo.DeleteMeeting(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("failed to delete meeting %d: %w", id, err)
	}

	m.audit(ctx, user, audit.AuditLogEventTypeMeetingDelete, id)
	return nil
}

func (m *Manager) audit(ctx context.Context, user model.User, eventType audit.AuditLogEventType, meetingID int64) {
	if err := m.auditor.LogEvent(ctx, audit.LogEventParam{
		OwnerID: user.ID,
		Type:    eventType,
		Data: map[string]any{
			"meeting_id": meetingID,
		},
	}); err != nil {
		m.logger.ErrorContext(ctx, "Failed to log audit event", "error", err)
	}
}
