package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	portalvalidator "meetingportal/internal/validator"
)

var (
	ErrAttendeeNotFound   = errors.New("attendee not found")
	ErrAgendaItemNotFound = errors.New("agenda item not found")
	ErrTaskNotFound       = errors.New("task not found")
)

var structValidator = portalvalidator.New()

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every offending field of a rejected meeting.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the fields required for save: title, date, time,
// location and building, the duration rule and every enumeration.
func (m Meeting) Validate() error {
	return validationError(structValidator.Validate(m))
}

func validationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fieldPath drops the struct name from a namespace such as
// "Meeting.attendees[0].email".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("must match %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "quarter_hour":
		return fmt.Sprintf("must be a multiple of %d minutes", DurationStep)
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "contains":
		return fmt.Sprintf("must contain %q", fe.Param())
	case "portal_email":
		return "is not a valid email address"
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
