package repository

import (
	"context"
	"errors"

	"meetingportal/internal/model"
	"meetingportal/internal/util"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrDuplicateEmail  = errors.New("email already registered")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error)
	GetMeeting(ctx context.Context, id int64) (model.Meeting, error)
	UpdateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error)
	DeleteMeeting(ctx context.Context, id int64) error
	ListMeetings(ctx context.Context, params ListMeetingsParams) ([]model.Meeting, error)
}

// Repository is the full persistence contract. Handlers and services
// depend on the narrower interfaces above.
type Repository interface {
	UserRepository
	MeetingRepository
	Ping(ctx context.Context) error
}

// ListMeetingsParams filters are combined with AND. Results are ordered
// by date, time and id.
type ListMeetingsParams struct {
	OwnerID       util.Optional[uuid.UUID]
	AttendeeEmail util.Optional[string]
	TitleQuery    util.Optional[string]
	Status        util.Optional[model.MeetingStatus]
	Limit         int
}
