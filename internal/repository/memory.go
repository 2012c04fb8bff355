package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"meetingportal/internal/model"

	"github.com/google/uuid"
)

// MemoryRepository keeps everything in process memory. Values handed out
// are deep copies so callers can mutate them freely.
type MemoryRepository struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]model.User
	userByEmail   map[string]uuid.UUID
	meetings      map[int64]model.Meeting
	lastMeetingID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:       make(map[uuid.UUID]model.User),
		userByEmail: make(map[string]uuid.UUID),
		meetings:    make(map[int64]model.Meeting),
	}
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.userByEmail[key]; exists {
		return model.User{}, ErrDuplicateEmail
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = user
	r.userByEmail[key] = user.ID
	return user, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.userByEmail[strings.ToLower(email)]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return r.users[id], nil
}

func (r *MemoryRepository) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	r.users[id] = user
	return nil
}

func (r *MemoryRepository) CreateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	if err := ctx.Err(); err != nil {
		return model.Meeting{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastMeetingID++
	meeting.ID = r.lastMeetingID
	now := time.Now().UTC()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	r.meetings[meeting.ID] = meeting.Clone()
	return meeting, nil
}

func (r *MemoryRepository) GetMeeting(ctx context.Context, id int64) (model.Meeting, error) {
	if err := ctx.Err(); err != nil {
		return model.Meeting{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return model.Meeting{}, ErrMeetingNotFound
	}
	return meeting.Clone(), nil
}

func (r *MemoryRepository) UpdateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	if err := ctx.Err(); err != nil {
		return model.Meeting{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.meetings[meeting.ID]
	if !ok {
		return model.Meeting{}, ErrMeetingNotFound
	}
	meeting.OwnerID = existing.OwnerID
	meeting.CreatedAt = existing.CreatedAt
	meeting.UpdatedAt = time.Now().UTC()

	r.meetings[meeting.ID] = meeting.Clone()
	return meeting, nil
}

func (r *MemoryRepository) DeleteMeeting(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.meetings[id]; !ok {
		return ErrMeetingNotFound
	}
	delete(r.meetings, id)
	return nil
}

func (r *MemoryRepository) ListMeetings(ctx context.Context, params ListMeetingsParams) ([]model.Meeting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	meetings := make([]model.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		if params.OwnerID.IsSet && m.OwnerID != params.OwnerID.Val {
			continue
		}
		if params.AttendeeEmail.IsSet && !m.HasAttendee(params.AttendeeEmail.Val) {
			continue
		}
		if params.TitleQuery.IsSet && !m.MatchesTitle(params.TitleQuery.Val) {
			continue
		}
		if params.Status.IsSet && m.Status != params.Status.Val {
			continue
		}
		meetings = append(meetings, m.Clone())
	}

	slices.SortFunc(meetings, func(a, b model.Meeting) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.Time, b.Time),
			cmp.Compare(a.ID, b.ID),
		)
	})

	if params.Limit > 0 && len(meetings) > params.Limit {
		meetings = meetings[:params.Limit]
	}
	return meetings, nil
}
