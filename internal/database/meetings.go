package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetingportal/internal/model"
	"meetingportal/internal/repository"

	"github.com/jackc/pgx/v5"
)

const meetingColumns = `id, owner_id, title, description, meeting_date, start_time, duration_minutes, location, building, status,
	organizer_name, organizer_email, attendees, agenda, tasks, notes, sequences, created_at, updated_at`

// meetingDocuments holds the JSONB encodings of a meeting's nested
// collections. Nil slices are stored as empty arrays.
type meetingDocuments struct {
	attendees []byte
	agenda    []byte
	tasks     []byte
	notes     []byte
	sequences []byte
}

func encodeDocuments(m model.Meeting) (meetingDocuments, error) {
	var docs meetingDocuments
	var err error

	if docs.attendees, err = json.Marshal(orEmpty(m.Attendees)); err != nil {
		return docs, fmt.Errorf("database: failed to encode attendees: %w", err)
	}
	if docs.agenda, err = json.Marshal(orEmpty(m.Agenda)); err != nil {
		return docs, fmt.Errorf("database: failed to encode agenda: %w", err)
	}
	if docs.tasks, err = json.Marshal(orEmpty(m.Tasks)); err != nil {
		return docs, fmt.Errorf("database: failed to encode tasks: %w", err)
	}
	if docs.notes, err = json.Marshal(orEmpty(m.Notes)); err != nil {
		return docs, fmt.Errorf("database: failed to encode notes: %w", err)
	}
	if docs.sequences, err = json.Marshal(m.Sequences); err != nil {
		return docs, fmt.Errorf("database: failed to encode sequences: %w", err)
	}
	return docs, nil
}

func (d meetingDocuments) decode(m *model.Meeting) error {
	if err := json.Unmarshal(d.attendees, &m.Attendees); err != nil {
		return fmt.Errorf("database: failed to decode attendees (meeting=%d): %w", m.ID, err)
	}
	if err := json.Unmarshal(d.agenda, &m.Agenda); err != nil {
		return fmt.Errorf("database: failed to decode agenda (meeting=%d): %w", m.ID, err)
	}
	if err := json.Unmarshal(d.tasks, &m.Tasks); err != nil {
		return fmt.Errorf("database: failed to decode tasks (meeting=%d): %w", m.ID, err)
	}
	if err := json.Unmarshal(d.notes, &m.Notes); err != nil {
		return fmt.Errorf("database: failed to decode notes (meeting=%d): %w", m.ID, err)
	}
	if err := json.Unmarshal(d.sequences, &m.Sequences); err != nil {
		return fmt.Errorf("database: failed to decode sequences (meeting=%d): %w", m.ID, err)
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanMeeting(row pgx.Row) (model.Meeting, error) {
	var m model.Meeting
	var docs meetingDocuments

	err := row.Scan(&m.ID, &m.OwnerID, &m.Title, &m.Description, &m.Date, &m.Time, &m.Duration, &m.Location, &m.Building, &m.Status,
		&m.Organizer.Name, &m.Organizer.Email, &docs.attendees, &docs.agenda, &docs.tasks, &docs.notes, &docs.sequences, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Meeting{}, err
	}
	if err := docs.decode(&m); err != nil {
		return model.Meeting{}, err
	}
	return m, nil
}

func (db *Database) CreateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	docs, err := encodeDocuments(meeting)
	if err != nil {
		return model.Meeting{}, err
	}

	meeting.CreatedAt = time.Now().UTC()
	meeting.UpdatedAt = meeting.CreatedAt

	err = db.Pool.QueryRow(ctx, `INSERT INTO tbl_meeting (owner_id, title, description, meeting_date, start_time, duration_minutes, location, building, status,
		organizer_name, organizer_email, attendees, agenda, tasks, notes, sequences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`,
		meeting.OwnerID, meeting.Title, meeting.Description, meeting.Date, meeting.Time, meeting.Duration, meeting.Location, meeting.Building, meeting.Status,
		meeting.Organizer.Name, meeting.Organizer.Email, docs.attendees, docs.agenda, docs.tasks, docs.notes, docs.sequences, meeting.CreatedAt, meeting.UpdatedAt,
	).Scan(&meeting.ID)
	if err != nil {
		return model.Meeting{}, fmt.Errorf("database: failed to insert meeting (title=%s): %w", meeting.Title, err)
	}
	return meeting, nil
}

func (db *Database) GetMeeting(ctx context.Context, id int64) (model.Meeting, error) {
	meeting, err := scanMeeting(db.Pool.QueryRow(ctx, `SELECT `+meetingColumns+` FROM tbl_meeting WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meeting{}, repository.ErrMeetingNotFound
		}
		return model.Meeting{}, fmt.Errorf("database: failed to get meeting (id=%d): %w", id, err)
	}
	return meeting, nil
}

// UpdateMeeting rewrites every mutable column. The owner and creation time
// are never changed.
func (db *Database) UpdateMeeting(ctx context.Context, meeting model.Meeting) (model.Meeting, error) {
	docs, err := encodeDocuments(meeting)
	if err != nil {
		return model.Meeting{}, err
	}

	meeting.UpdatedAt = time.Now().UTC()

	err = db.Pool.QueryRow(ctx, `UPDATE tbl_meeting SET title = $1, description = $2, meeting_date = $3, start_time = $4, duration_minutes = $5,
		location = $6, building = $7, status = $8, organizer_name = $9, organizer_email = $10,
		attendees = $11, agenda = $12, tasks = $13, notes = $14, sequences = $15, updated_at = $16
		WHERE id = $17 RETURNING owner_id, created_at`,
		meeting.Title, meeting.Description, meeting.Date, meeting.Time, meeting.Duration,
		meeting.Location, meeting.Building, meeting.Status, meeting.Organizer.Name, meeting.Organizer.Email,
		docs.attendees, docs.agenda, docs.tasks, docs.notes, docs.sequences, meeting.UpdatedAt,
		meeting.ID,
	).Scan(&meeting.OwnerID, &meeting.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meeting{}, repository.ErrMeetingNotFound
		}
		return model.Meeting{}, fmt.Errorf("database: failed to update meeting (id=%d): %w", meeting.ID, err)
	}
	return meeting, nil
}

func (db *Database) DeleteMeeting(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM tbl_meeting WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("database: failed to delete meeting (id=%d): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrMeetingNotFound
	}
	return nil
}

func (db *Database) ListMeetings(ctx context.Context, params repository.ListMeetingsParams) ([]model.Meeting, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + meetingColumns + ` FROM tbl_meeting WHERE 1=1`)
	var args []any
	argNum := 1

	if params.OwnerID.IsSet {
		query.WriteString(fmt.Sprintf(" AND owner_id = $%d", argNum))
		args = append(args, params.OwnerID.Val)
		argNum++
	}
	if params.AttendeeEmail.IsSet {
		query.WriteString(fmt.Sprintf(" AND EXISTS (SELECT 1 FROM jsonb_array_elements(attendees) a WHERE lower(a->>'email') = lower($%d))", argNum))
		args = append(args, strings.TrimSpace(params.AttendeeEmail.Val))
		argNum++
	}
	if params.TitleQuery.IsSet {
		query.WriteString(fmt.Sprintf(" AND title ILIKE '%%' || $%d || '%%'", argNum))
		args = append(args, escapeLike(strings.TrimSpace(params.TitleQuery.Val)))
		argNum++
	}
	if params.Status.IsSet {
		query.WriteString(fmt.Sprintf(" AND status = $%d", argNum))
		args = append(args, params.Status.Val)
		argNum++
	}

	query.WriteString(" ORDER BY meeting_date ASC, start_time ASC, id ASC")
	if params.Limit > 0 {
		query.WriteString(fmt.Sprintf(" LIMIT $%d", argNum))
		args = append(args, params.Limit)
	}

	rows, err := db.Pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("database: failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("database: failed to scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database: failed to iterate meetings: %w", err)
	}

	return meetings, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
