package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// MinDuration and DurationStep are in minutes.
	MinDuration  = 15
	DurationStep = 15
)

type MeetingStatus string

const (
	MeetingStatusUpcoming  MeetingStatus = "upcoming"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusUpcoming, MeetingStatusCompleted, MeetingStatusCancelled:
		return true
	default:
		return false
	}
}

func ParseMeetingStatus(s string) (MeetingStatus, error) {
	status := MeetingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid meeting status: %s", s)
	}
	return status, nil
}

type Organizer struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"portal_email"`
}

// Sequences holds one id allocator per nested collection. It is persisted
// with the meeting so ids are never reused after a removal.
type Sequences struct {
	Attendees Sequence `json:"attendees"`
	Agenda    Sequence `json:"agenda"`
	Tasks     Sequence `json:"tasks"`
	Notes     Sequence `json:"notes"`
}

type Meeting struct {
	ID          int64         `json:"id"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	Title       string        `json:"title" validate:"notblank"`
	Description string        `json:"description"`
	Date        string        `json:"date" validate:"notblank,datetime=2006-01-02"`
	Time        string        `json:"time" validate:"notblank,datetime=15:04"`
	Duration    int           `json:"duration" validate:"min=15,quarter_hour"`
	Location    string        `json:"location" validate:"notblank"`
	Building    string        `json:"building" validate:"notblank"`
	Status      MeetingStatus `json:"status" validate:"oneof=upcoming completed cancelled"`
	Organizer   Organizer     `json:"organizer"`
	Attendees   []Attendee    `json:"attendees" validate:"dive"`
	Agenda      []AgendaItem  `json:"agenda"`
	Tasks       []Task        `json:"tasks" validate:"dive"`
	Notes       []Note        `json:"notes"`
	Sequences   Sequences     `json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Start resolves the meeting's date and wall-clock time in loc.
func (m Meeting) Start(loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, m.Date+" "+m.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("meeting %d: invalid start: %w", m.ID, err)
	}
	return start, nil
}

func (m Meeting) End(loc *time.Location) (time.Time, error) {
	start, err := m.Start(loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(m.Duration) * time.Minute), nil
}

// CanonicalTime rewrites a wall-clock time such as "9:30" as "09:30" so
// stored times order correctly as text. Unparseable input is returned
// unchanged for Validate to report.
func CanonicalTime(s string) string {
	s = strings.TrimSpace(s)
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(TimeLayout)
}

// HasAttendee reports whether email is on the attendee list, ignoring case.
func (m Meeting) HasAttendee(email string) bool {
	_, ok := m.attendeeIndexByEmail(email)
	return ok
}

func (m Meeting) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(m.Title), strings.ToLower(strings.TrimSpace(query)))
}

// Normalize assigns ids to nested entries that arrived without one (or
// with a duplicate) and advances every sequence past the highest id in use.
func (m *Meeting) Normalize() {
	if m.Status == "" {
		m.Status = MeetingStatusUpcoming
	}

	m.Time = CanonicalTime(m.Time)

	seen := map[int64]bool{}
	for _, a := range m.Attendees {
		m.Sequences.Attendees.Observe(a.ID)
	}
	for i := range m.Attendees {
		if m.Attendees[i].ID <= 0 || seen[m.Attendees[i].ID] {
			m.Attendees[i].ID = m.Sequences.Attendees.Next()
		}
		seen[m.Attendees[i].ID] = true
		if m.Attendees[i].Status == "" {
			m.Attendees[i].Status = AttendeeStatusPending
		}
		if m.Attendees[i].Name == "" {
			m.Attendees[i].Name = NameFromEmail(m.Attendees[i].Email)
		}
	}

	clear(seen)
	for _, item := range m.Agenda {
		m.Sequences.Agenda.Observe(item.ID)
	}
	for i := range m.Agenda {
		if m.Agenda[i].ID <= 0 || seen[m.Agenda[i].ID] {
			m.Agenda[i].ID = m.Sequences.Agenda.Next()
		}
		seen[m.Agenda[i].ID] = true
	}

	clear(seen)
	for _, task := range m.Tasks {
		m.Sequences.Tasks.Observe(task.ID)
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID <= 0 || seen[m.Tasks[i].ID] {
			m.Tasks[i].ID = m.Sequences.Tasks.Next()
		}
		seen[m.Tasks[i].ID] = true
	}

	clear(seen)
	for _, note := range m.Notes {
		m.Sequences.Notes.Observe(note.ID)
	}
	for i := range m.Notes {
		if m.Notes[i].ID <= 0 || seen[m.Notes[i].ID] {
			m.Notes[i].ID = m.Sequences.Notes.Next()
		}
		seen[m.Notes[i].ID] = true
	}
}

// Clone returns a deep copy; nested slices are not shared.
func (m Meeting) Clone() Meeting {
	out := m
	out.Attendees = append([]Attendee(nil), m.Attendees...)
	out.Agenda = append([]AgendaItem(nil), m.Agenda...)
	out.Tasks = append([]Task(nil), m.Tasks...)
	out.Notes = append([]Note(nil), m.Notes...)
	return out
}
