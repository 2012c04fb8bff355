package meeting

import (
	"errors"
	"fmt"

	"meetingportal/internal/model"
)

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrForbidden       = errors.New("only the organizer can change this meeting")
	ErrInvalidTab      = errors.New("tab must be hosted or invited")
)

// ValidationError lists every field that blocked a save.
type ValidationError = model.ValidationError

// TransientError reports a save that did not reach the store, either
// because it timed out or because the store failed. Nothing is retried
// automatically; the caller decides whether to submit again.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: temporarily unavailable: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func (e *TransientError) Retryable() bool {
	return true
}
