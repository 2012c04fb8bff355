package meeting

import (
	"bytes"
	"fmt"
	"time"

	"meetingportal/internal/model"

	"github.com/emersion/go-ical"
)

const icalProductID = "-//meetingportal//Meetings Portal//EN"

var participationStatus = map[model.AttendeeStatus]string{
	model.AttendeeStatusAccepted: "ACCEPTED",
	model.AttendeeStatusDeclined: "DECLINED",
	model.AttendeeStatusPending:  "NEEDS-ACTION",
}

var eventStatus = map[model.MeetingStatus]string{
	model.MeetingStatusUpcoming:  "CONFIRMED",
	model.MeetingStatusCompleted: "CONFIRMED",
	model.MeetingStatusCancelled: "CANCELLED",
}

// ToICal renders meeting as a single VEVENT calendar. Dates and times are
// interpreted in loc; stamp is the DTSTAMP of the export.
func ToICal(meeting model.Meeting, loc *time.Location, stamp time.Time) ([]byte, error) {
	start, err := meeting.Start(loc)
	if err != nil {
		return nil, err
	}
	end, err := meeting.End(loc)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("meeting-%d@meetingportal", meeting.ID))
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	event.Props.SetText(ical.PropSummary, meeting.Title)
	if meeting.Description != "" {
		event.Props.SetText(ical.PropDescription, meeting.Description)
	}
	event.Props.SetText(ical.PropLocation, meeting.Location+", "+meeting.Building)
	event.Props.SetText(ical.PropStatus, eventStatus[meeting.Status])

	organizer := ical.NewProp(ical.PropOrganizer)
	organizer.Value = "mailto:" + meeting.Organizer.Email
	if meeting.Organizer.Name != "" {
		organizer.Params.Set(ical.ParamCommonName, meeting.Organizer.Name)
	}
	event.Props.Set(organizer)

	for _, attendee := range meeting.Attendees {
		prop := ical.NewProp(ical.PropAttendee)
		prop.Value = "mailto:" + attendee.Email
		prop.Params.Set(ical.ParamCommonName, attendee.Name)
		prop.Params.Set(ical.ParamParticipationStatus, participationStatus[attendee.Status])
		event.Props.Add(prop)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProductID)
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar for meeting %d: %w", meeting.ID, err)
	}
	return buf.Bytes(), nil
}
