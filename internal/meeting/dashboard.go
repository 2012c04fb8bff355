package meeting

import (
	"context"
	"fmt"
	"strings"

	"meetingportal/internal/audit"
	"meetingportal/internal/model"
	"meetingportal/internal/repository"
	"meetingportal/internal/util"
)

type Tab string

const (
	TabHosted  Tab = "hosted"
	TabInvited Tab = "invited"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "", TabHosted:
		return TabHosted, nil
	case TabInvited:
		return TabInvited, nil
	default:
		return "", ErrInvalidTab
	}
}

type ListFilter struct {
	Tab   Tab
	Query string
}

// List returns the meetings user hosts or is invited to, optionally
// narrowed to titles containing Query (case-insensitive).
func (m *Manager) List(ctx context.Context, user model.User, filter ListFilter) ([]model.Meeting, error) {
	params := repository.ListMeetingsParams{}
	switch filter.Tab {
	case TabHosted, "":
		params.OwnerID = util.Some(user.ID)
	case TabInvited:
		params.AttendeeEmail = util.Some(user.Email)
	default:
		return nil, ErrInvalidTab
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		params.TitleQuery = util.Some(q)
	}

	meetings, err := m.repo.ListMeetings(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s meetings: %w", filter.Tab, err)
	}
	return meetings, nil
}

type Dashboard struct {
	Hosted   int             `json:"hosted"`
	Invited  int             `json:"invited"`
	Upcoming int             `json:"upcoming"`
	Next     []model.Meeting `json:"next"`
}

const dashboardNextLimit = 5

func (m *Manager) Dashboard(ctx context.Context, user model.User) (Dashboard, error) {
	hosted, err := m.List(ctx, user, ListFilter{Tab: TabHosted})
	if err != nil {
		return Dashboard{}, err
	}
	invited, err := m.List(ctx, user, ListFilter{Tab: TabInvited})
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{Hosted: len(hosted), Invited: len(invited), Next: []model.Meeting{}}

	seen := make(map[int64]bool, len(hosted)+len(invited))
	var upcoming []model.Meeting
	for _, meeting := range append(hosted, invited...) {
		if seen[meeting.ID] || meeting.Status != model.MeetingStatusUpcoming {
			continue
		}
		seen[meeting.ID] = true
		upcoming = append(upcoming, meeting)
	}
	dashboard.Upcoming = len(upcoming)

	sortBySchedule(upcoming)
	if len(upcoming) > dashboardNextLimit {
		upcoming = upcoming[:dashboardNextLimit]
	}
	dashboard.Next = append(dashboard.Next, upcoming...)
	return dashboard, nil
}

type Summary struct {
	Meeting   model.Meeting        `json:"meeting"`
	Attendees model.AttendeeCounts `json:"attendees"`
	Tasks     model.TaskCounts     `json:"tasks"`
	Agenda    int                  `json:"agenda_items"`
	Notes     int                  `json:"notes"`
}

func (m *Manager) Summary(ctx context.Context, user model.User, id int64) (Summary, error) {
	meeting, err := m.Get(ctx, user, id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Meeting:   meeting,
		Attendees: meeting.AttendeeCounts(),
		Tasks:     meeting.TaskCounts(),
		Agenda:    len(meeting.Agenda),
		Notes:     len(meeting.Notes),
	}, nil
}

// CompleteElapsed marks upcoming meetings whose end time has passed as
// completed. Cancelled meetings are never touched. It returns how many
// meetings changed.
func (m *Manager) CompleteElapsed(ctx context.Context) (int, error) {
	meetings, err := m.repo.ListMeetings(ctx, repository.ListMeetingsParams{
		Status: util.Some(model.MeetingStatusUpcoming),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list upcoming meetings: %w", err)
	}

	now := m.now()
	completed := 0
	for _, meeting := range meetings {
		end, err := meeting.End(m.location)
		if err != nil {
			m.logger.WarnContext(ctx, "Skipping meeting with unreadable schedule", "meeting_id", meeting.ID, "error", err)
			continue
		}
		if end.After(now) {
			continue
		}

		meeting.Status = model.MeetingStatusCompleted
		if _, err := m.Save(ctx, meeting); err != nil {
			m.logger.ErrorContext(ctx, "Failed to complete meeting", "meeting_id", meeting.ID, "error", err)
			continue
		}
		completed++

		m.audit(ctx, model.User{ID: meeting.OwnerID}, audit.AuditLogEventTypeMeetingComplete, meeting.ID)
	}

	m.metrics.RecordMeetingsCompleted(ctx, completed)
	return completed, nil
}
