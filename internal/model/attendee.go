package model

import (
	"fmt"
	"strings"
)

type AttendeeStatus string

const (
	AttendeeStatusAccepted AttendeeStatus = "accepted"
	AttendeeStatusDeclined AttendeeStatus = "declined"
	AttendeeStatusPending  AttendeeStatus = "pending"
)

func (s AttendeeStatus) IsValid() bool {
	switch s {
	case AttendeeStatusAccepted, AttendeeStatusDeclined, AttendeeStatusPending:
		return true
	default:
		return false
	}
}

func ParseAttendeeStatus(s string) (AttendeeStatus, error) {
	status := AttendeeStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid attendee status: %s", s)
	}
	return status, nil
}

type Attendee struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email" validate:"contains=@"`
	Status AttendeeStatus `json:"status" validate:"oneof=accepted declined pending"`
}

type AttendeeCounts struct {
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
	Pending  int `json:"pending"`
	Total    int `json:"total"`
}

// NameFromEmail derives a display name from the local part of an email,
// replacing the first dot with a space ("sarah.j@x.com" -> "sarah j").
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.Replace(local, ".", " ", 1)
}

// AddAttendee invites email with status pending and a name derived from
// the email. Input that is empty, lacks an @, or is already invited leaves
// the meeting unchanged and reports false.
func (m *Meeting) AddAttendee(email string) (Attendee, bool) {
	return m.InviteAttendee("", email)
}

// InviteAttendee is AddAttendee with an explicit display name. An empty
// name falls back to the derived one.
func (m *Meeting) InviteAttendee(name, email string) (Attendee, bool) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return Attendee{}, false
	}
	if m.HasAttendee(email) {
		return Attendee{}, false
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = NameFromEmail(email)
	}

	attendee := Attendee{
		ID:     m.Sequences.Attendees.Next(),
		Name:   name,
		Email:  email,
		Status: AttendeeStatusPending,
	}
	m.Attendees = append(m.Attendees, attendee)
	return attendee, true
}

// RemoveAttendee deletes the attendee with id. Other ids are untouched.
func (m *Meeting) RemoveAttendee(id int64) bool {
	for i, a := range m.Attendees {
		if a.ID == id {
			m.Attendees = append(m.Attendees[:i], m.Attendees[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Meeting) SetAttendeeStatus(id int64, status AttendeeStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid attendee status: %s", status)
	}
	for i := range m.Attendees {
		if m.Attendees[i].ID == id {
			m.Attendees[i].Status = status
			return nil
		}
	}
	return ErrAttendeeNotFound
}

func (m Meeting) AttendeeCounts() AttendeeCounts {
	counts := AttendeeCounts{Total: len(m.Attendees)}
	for _, a := range m.Attendees {
		switch a.Status {
		case AttendeeStatusAccepted:
			counts.Accepted++
		case AttendeeStatusDeclined:
			counts.Declined++
		default:
			counts.Pending++
		}
	}
	return counts
}

func (m Meeting) attendeeIndexByEmail(email string) (int, bool) {
	email = strings.TrimSpace(email)
	for i, a := range m.Attendees {
		if strings.EqualFold(a.Email, email) {
			return i, true
		}
	}
	return -1, false
}
