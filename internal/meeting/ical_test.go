package meeting

import (
	"bytes"
	"testing"
	"time"

	"meetingportal/internal/model"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToICal(t *testing.T) {
	m := model.Meeting{
		ID: 7, Title: "Quarterly Planning", Description: "Q1 goals", Date: "2025-03-14", Time: "09:30", Duration: 90,
		Location: "Room 4B", Building: "North Tower", Status: model.MeetingStatusUpcoming,
		Organizer: model.Organizer{Name: "Sarah Johnson", Email: "sarah.j@company.com"},
	}
	m.AddAttendee("mike@company.com")
	m.AddAttendee("kim@company.com")
	require.NoError(t, m.SetAttendeeStatus(1, model.AttendeeStatusAccepted))

	data, err := ToICal(m, time.UTC, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)
	event := events[0]

	summary, err := event.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Planning", summary)

	start, err := event.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC), start)

	end, err := event.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 11, 0, 0, 0, time.UTC), end)

	attendees := event.Props.Values(ical.PropAttendee)
	require.Len(t, attendees, 2)
	assert.Equal(t, "mailto:mike@company.com", attendees[0].Value)
	assert.Equal(t, "ACCEPTED", attendees[0].Params.Get(ical.ParamParticipationStatus))
	assert.Equal(t, "NEEDS-ACTION", attendees[1].Params.Get(ical.ParamParticipationStatus))
}

func TestToICal_InvalidSchedule(t *testing.T) {
	_, err := ToICal(model.Meeting{Date: "soon", Time: "09:00"}, time.UTC, time.Now())
	assert.Error(t, err)
}
