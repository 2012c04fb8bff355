package web

import (
	"fmt"
	"strconv"
	"strings"

	"meetingportal/internal/meeting"
	"meetingportal/internal/model"
	"meetingportal/internal/telemetry"
	"meetingportal/internal/util"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func fieldError(field, message string) error {
	return &model.ValidationError{Fields: []model.FieldError{{Field: field, Message: message}}}
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.meetings.Dashboard(telemetry.ContextFromFiber(c), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(dashboard)
}

func (h *Handler) ListMeetings(c *fiber.Ctx) error {
	tab, err := meeting.ParseTab(c.Query("tab"))
	if err != nil {
		return err
	}

	meetings, err := h.meetings.List(telemetry.ContextFromFiber(c), currentUser(c), meeting.ListFilter{
		Tab:   tab,
		Query: c.Query("q"),
	})
	if err != nil {
		return err
	}

	if meetings == nil {
		meetings = []model.Meeting{}
	}
	return c.JSON(fiber.Map{
		"tab":   tab,
		"items": meetings,
	})
}

type createMeetingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Duration    int      `json:"duration"`
	Location    string   `json:"location"`
	Building    string   `json:"building"`
	Attendees   []string `json:"attendees"`
	Agenda      []string `json:"agenda"`
}

func (h *Handler) CreateMeeting(c *fiber.Ctx) error {
	var req createMeetingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	created, err := h.meetings.Create(telemetry.ContextFromFiber(c), currentUser(c), meeting.CreateParam{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Location:    req.Location,
		Building:    req.Building,
		Attendees:   req.Attendees,
		Agenda:      req.Agenda,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) GetMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	found, err := h.meetings.Get(telemetry.ContextFromFiber(c), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

type updateMeetingRequest struct {
	Title       util.Optional[string] `json:"title"`
	Description util.Optional[string] `json:"description"`
	Date        util.Optional[string] `json:"date"`
	Time        util.Optional[string] `json:"time"`
	Duration    util.Optional[int]    `json:"duration"`
	Location    util.Optional[string] `json:"location"`
	Building    util.Optional[string] `json:"building"`
	Status      util.Optional[string] `json:"status"`
}

// UpdateMeeting changes the fields present in the body. Nested
// collections have their own endpoints.
func (h *Handler) UpdateMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req updateMeetingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	param := meeting.UpdateDetailsParam{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Duration:    req.Duration,
		Location:    req.Location,
		Building:    req.Building,
	}
	if req.Status.IsSet {
		status, err := model.ParseMeetingStatus(req.Status.Val)
		if err != nil {
			return fieldError("status", "must be one of upcoming, completed, cancelled")
		}
		param.Status = util.Some(status)
	}

	updated, err := h.meetings.UpdateDetails(telemetry.ContextFromFiber(c), currentUser(c), id, param)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) DeleteMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.meetings.Delete(telemetry.ContextFromFiber(c), currentUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) GetMeetingSummary(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	summary, err := h.meetings.Summary(telemetry.ContextFromFiber(c), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *Handler) ExportMeeting(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	found, err := h.meetings.Get(telemetry.ContextFromFiber(c), currentUser(c), id)
	if err != nil {
		return err
	}

	data, err := meeting.ToICal(found, h.location, h.now())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="meeting-%d.ics"`, found.ID))
	return c.Send(data)
}

type attendeeRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// AddAttendee invites an email. An empty, malformed or already invited
// email leaves the meeting unchanged and answers 200 instead of 201.
func (h *Handler) AddAttendee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req attendeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	added := false
	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		_, added = m.InviteAttendee(req.Name, req.Email)
		return nil
	})
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(updated)
}

func (h *Handler) SetAttendeeStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	attendeeID, err := paramID(c, "attendeeID")
	if err != nil {
		return err
	}
	var req attendeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	status, err := model.ParseAttendeeStatus(req.Status)
	if err != nil {
		return fieldError("status", "must be one of accepted, declined, pending")
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		return m.SetAttendeeStatus(attendeeID, status)
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) RemoveAttendee(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	attendeeID, err := paramID(c, "attendeeID")
	if err != nil {
		return err
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		m.RemoveAttendee(attendeeID)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

type agendaRequest struct {
	Text string `json:"text"`
}

// AddAgendaItem appends to the agenda. Blank text leaves the meeting
// unchanged and answers 200 instead of 201.
func (h *Handler) AddAgendaItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req agendaRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	added := false
	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		_, added = m.AddAgendaItem(req.Text)
		return nil
	})
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if added {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(updated)
}

func (h *Handler) UpdateAgendaItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}
	var req agendaRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		_, err := m.UpdateAgendaItem(itemID, req.Text)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) RemoveAgendaItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "itemID")
	if err != nil {
		return err
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		m.RemoveAgendaItem(itemID)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

type taskRequest struct {
	Title      string `json:"title"`
	AssignedTo string `json:"assigned_to"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
}

func (h *Handler) AddTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req taskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		_, err := m.AddTask(model.Task{
			Title:      req.Title,
			AssignedTo: strings.TrimSpace(req.AssignedTo),
			DueDate:    strings.TrimSpace(req.DueDate),
			Status:     model.TaskStatus(req.Status),
			Priority:   model.TaskPriority(req.Priority),
		})
		return err
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(updated)
}

func (h *Handler) SetTaskStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	taskID, err := paramID(c, "taskID")
	if err != nil {
		return err
	}
	var req taskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	status := model.TaskStatus(req.Status)
	if !status.IsValid() {
		return fieldError("status", "must be one of completed, in-progress, pending")
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		return m.SetTaskStatus(taskID, status)
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *Handler) RemoveTask(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	taskID, err := paramID(c, "taskID")
	if err != nil {
		return err
	}

	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), currentUser(c), id, func(m *model.Meeting) error {
		m.RemoveTask(taskID)
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

type noteRequest struct {
	Content string `json:"content"`
}

// AddNote appends a note signed by the current user.
func (h *Handler) AddNote(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req noteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user := currentUser(c)
	updated, err := h.meetings.Update(telemetry.ContextFromFiber(c), user, id, func(m *model.Meeting) error {
		if _, ok := m.AddNote(user.DisplayName(), req.Content, h.now().In(h.location)); !ok {
			return fieldError("content", "is required")
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(updated)
}
