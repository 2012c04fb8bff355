package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMeeting() Meeting {
	return Meeting{
		ID:        1,
		Title:     "Quarterly Planning",
		Date:      "2025-03-14",
		Time:      "09:30",
		Duration:  60,
		Location:  "Room 4B",
		Building:  "North Tower",
		Status:    MeetingStatusUpcoming,
		Organizer: Organizer{Name: "Sarah Johnson", Email: "sarah.j@company.com"},
	}
}

func TestAddAttendee(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		wantAdded bool
		wantName  string
	}{
		{name: "valid_email", email: "john.smith@company.com", wantAdded: true, wantName: "john smith"},
		{name: "trimmed", email: "  kim@company.com ", wantAdded: true, wantName: "kim"},
		{name: "only_first_dot_replaced", email: "a.b.c@company.com", wantAdded: true, wantName: "a b.c"},
		{name: "missing_at", email: "john.smith.company.com", wantAdded: false},
		{name: "empty", email: "", wantAdded: false},
		{name: "whitespace", email: "   ", wantAdded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMeeting()
			before := m.Clone()

			attendee, added := m.AddAttendee(tt.email)

			assert.Equal(t, tt.wantAdded, added)
			if !tt.wantAdded {
				assert.Equal(t, before.Attendees, m.Attendees)
				return
			}
			require.Len(t, m.Attendees, 1)
			assert.Equal(t, tt.wantName, attendee.Name)
			assert.Equal(t, AttendeeStatusPending, attendee.Status)
			assert.Equal(t, int64(1), attendee.ID)
		})
	}
}

func TestAddAttendee_DuplicateEmailIsNoop(t *testing.T) {
	m := newTestMeeting()
	_, added := m.AddAttendee("john@company.com")
	require.True(t, added)

	_, added = m.AddAttendee("JOHN@company.com")
	assert.False(t, added)
	assert.Len(t, m.Attendees, 1)
}

func TestRemoveAttendee(t *testing.T) {
	m := newTestMeeting()
	m.AddAttendee("a@company.com")
	m.AddAttendee("b@company.com")
	m.AddAttendee("c@company.com")

	t.Run("missing_id_is_noop", func(t *testing.T) {
		before := m.Clone()
		assert.False(t, m.RemoveAttendee(99))
		assert.Equal(t, before.Attendees, m.Attendees)
	})

	t.Run("does_not_renumber", func(t *testing.T) {
		require.True(t, m.RemoveAttendee(2))
		require.Len(t, m.Attendees, 2)
		assert.Equal(t, int64(1), m.Attendees[0].ID)
		assert.Equal(t, int64(3), m.Attendees[1].ID)
	})
}

func TestAttendeeIDsUniqueAfterDeleteThenAdd(t *testing.T) {
	m := newTestMeeting()
	m.AddAttendee("a@company.com")
	m.AddAttendee("b@company.com")
	require.True(t, m.RemoveAttendee(1))

	added, ok := m.AddAttendee("c@company.com")
	require.True(t, ok)

	ids := map[int64]bool{}
	for _, a := range m.Attendees {
		assert.False(t, ids[a.ID], "duplicate id %d", a.ID)
		ids[a.ID] = true
	}
	assert.Equal(t, int64(3), added.ID)
}

func TestAttendeeCounts(t *testing.T) {
	m := newTestMeeting()
	for _, email := range []string{"a@x.io", "b@x.io", "c@x.io", "d@x.io", "e@x.io"} {
		m.AddAttendee(email)
	}
	require.NoError(t, m.SetAttendeeStatus(1, AttendeeStatusAccepted))
	require.NoError(t, m.SetAttendeeStatus(2, AttendeeStatusAccepted))
	require.NoError(t, m.SetAttendeeStatus(3, AttendeeStatusDeclined))

	counts := m.AttendeeCounts()
	assert.Equal(t, AttendeeCounts{Accepted: 2, Declined: 1, Pending: 2, Total: 5}, counts)
	assert.Equal(t, counts.Total, counts.Accepted+counts.Declined+counts.Pending)
}

func TestSetAttendeeStatus(t *testing.T) {
	m := newTestMeeting()
	m.AddAttendee("a@x.io")

	assert.ErrorIs(t, m.SetAttendeeStatus(42, AttendeeStatusAccepted), ErrAttendeeNotFound)
	assert.Error(t, m.SetAttendeeStatus(1, AttendeeStatus("maybe")))
	assert.Equal(t, AttendeeStatusPending, m.Attendees[0].Status)
}

func TestAgenda(t *testing.T) {
	m := newTestMeeting()

	_, ok := m.AddAgendaItem("   ")
	assert.False(t, ok)
	assert.Empty(t, m.Agenda)

	for _, text := range []string{"Review Q4 results", " Budget ", "Roadmap"} {
		_, ok := m.AddAgendaItem(text)
		require.True(t, ok)
	}
	assert.Equal(t, "Budget", m.Agenda[1].Text)

	t.Run("update_keeps_position", func(t *testing.T) {
		changed, err := m.UpdateAgendaItem(2, " Budget allocation ")
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, []AgendaItem{
			{ID: 1, Text: "Review Q4 results"},
			{ID: 2, Text: "Budget allocation"},
			{ID: 3, Text: "Roadmap"},
		}, m.Agenda)
	})

	t.Run("blank_update_is_ignored", func(t *testing.T) {
		changed, err := m.UpdateAgendaItem(3, "   ")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "Roadmap", m.Agenda[2].Text)
	})

	t.Run("remove_shifts_position_not_id", func(t *testing.T) {
		require.True(t, m.RemoveAgendaItem(1))
		assert.Equal(t, 1, m.AgendaPosition(2))
		assert.Equal(t, 2, m.AgendaPosition(3))
		assert.Equal(t, 0, m.AgendaPosition(1))

		item, ok := m.AddAgendaItem("Wrap-up")
		require.True(t, ok)
		assert.Equal(t, int64(4), item.ID)
	})

	_, err := m.UpdateAgendaItem(99, "nothing")
	assert.ErrorIs(t, err, ErrAgendaItemNotFound)
	assert.False(t, m.RemoveAgendaItem(99))
}

func TestTasks(t *testing.T) {
	m := newTestMeeting()

	_, err := m.AddTask(Task{Title: " "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "title", verr.Fields[0].Field)

	task, err := m.AddTask(Task{Title: "Prepare budget", AssignedTo: "Mike Chen"})
	require.NoError(t, err)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.Equal(t, TaskPriorityMedium, task.Priority)

	_, err = m.AddTask(Task{Title: "Book room", Status: TaskStatusCompleted, Priority: TaskPriorityLow})
	require.NoError(t, err)

	require.NoError(t, m.SetTaskStatus(task.ID, TaskStatusInProgress))
	assert.ErrorIs(t, m.SetTaskStatus(99, TaskStatusCompleted), ErrTaskNotFound)

	assert.Equal(t, TaskCounts{Completed: 1, InProgress: 1, Total: 2}, m.TaskCounts())

	assert.True(t, m.RemoveTask(task.ID))
	assert.False(t, m.RemoveTask(task.ID))
}

func TestAddNote(t *testing.T) {
	m := newTestMeeting()
	at := time.Date(2025, 3, 14, 14, 5, 0, 0, time.UTC)

	_, ok := m.AddNote("Sarah", "  ", at)
	assert.False(t, ok)

	note, ok := m.AddNote("Sarah", "Budget approved", at)
	require.True(t, ok)
	assert.Equal(t, "2025-03-14 2:05 PM", note.Timestamp)
	assert.Equal(t, int64(1), note.ID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(m *Meeting)
		wantFields []string
	}{
		{name: "valid", mutate: func(m *Meeting) {}},
		{name: "blank_title", mutate: func(m *Meeting) { m.Title = "  " }, wantFields: []string{"title"}},
		{
			name: "missing_required",
			mutate: func(m *Meeting) {
				m.Date, m.Time, m.Location, m.Building = "", "", "", ""
			},
			wantFields: []string{"date", "time", "location", "building"},
		},
		{name: "bad_date", mutate: func(m *Meeting) { m.Date = "14/03/2025" }, wantFields: []string{"date"}},
		{name: "short_duration", mutate: func(m *Meeting) { m.Duration = 10 }, wantFields: []string{"duration"}},
		{name: "off_step_duration", mutate: func(m *Meeting) { m.Duration = 50 }, wantFields: []string{"duration"}},
		{name: "unknown_status", mutate: func(m *Meeting) { m.Status = "postponed" }, wantFields: []string{"status"}},
		{
			name:       "attendee_without_at",
			mutate:     func(m *Meeting) { m.Attendees = []Attendee{{ID: 1, Email: "nobody", Status: AttendeeStatusPending}} },
			wantFields: []string{"attendees[0].email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMeeting()
			tt.mutate(&m)

			err := m.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestCanonicalTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "9:30", want: "09:30"},
		{in: " 09:30 ", want: "09:30"},
		{in: "23:45", want: "23:45"},
		{in: "25:00", want: "25:00"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalTime(tt.in))
		})
	}

	m := newTestMeeting()
	m.Time = "9:30"
	m.Normalize()
	assert.Equal(t, "09:30", m.Time)
}

func TestNormalize(t *testing.T) {
	m := newTestMeeting()
	m.Status = ""
	m.Attendees = []Attendee{
		{ID: 5, Email: "a@x.io"},
		{ID: 5, Email: "b@x.io"},
		{Email: "c.d@x.io"},
	}
	m.Agenda = []AgendaItem{{Text: "One"}, {ID: 2, Text: "Two"}}

	m.Normalize()

	assert.Equal(t, MeetingStatusUpcoming, m.Status)
	assert.Equal(t, []int64{5, 6, 7}, []int64{m.Attendees[0].ID, m.Attendees[1].ID, m.Attendees[2].ID})
	assert.Equal(t, "c d", m.Attendees[2].Name)
	assert.Equal(t, AttendeeStatusPending, m.Attendees[1].Status)
	assert.Equal(t, []AgendaItem{{ID: 3, Text: "One"}, {ID: 2, Text: "Two"}}, m.Agenda)

	a, ok := m.AddAttendee("e@x.io")
	require.True(t, ok)
	assert.Equal(t, int64(8), a.ID)
}

func TestStartEnd(t *testing.T) {
	m := newTestMeeting()

	end, err := m.End(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC), end)

	m.Time = "late"
	_, err = m.Start(time.UTC)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	m := newTestMeeting()
	m.AddAttendee("a@x.io")

	c := m.Clone()
	c.Attendees[0].Status = AttendeeStatusDeclined

	assert.Equal(t, AttendeeStatusPending, m.Attendees[0].Status)
}
