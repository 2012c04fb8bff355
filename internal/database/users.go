package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meetingportal/internal/model"
	"meetingportal/internal/repository"
	"meetingportal/internal/util"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (db *Database) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	if _, err := db.Pool.Exec(ctx, `INSERT INTO tbl_user (id, name, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return model.User{}, repository.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("database: failed to insert user (email=%s): %w", user.Email, err)
	}
	return user, nil
}

func (db *Database) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return db.getUser(ctx, getUserParams{ID: util.Some(id)})
}

func (db *Database) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return db.getUser(ctx, getUserParams{Email: util.Some(strings.ToLower(email))})
}

type getUserParams struct {
	ID    util.Optional[uuid.UUID]
	Email util.Optional[string]
}

func (db *Database) getUser(ctx context.Context, params getUserParams) (model.User, error) {
	var user model.User

	var query strings.Builder
	query.WriteString(`SELECT id, name, email, password_hash, created_at, updated_at FROM tbl_user WHERE 1=1`)
	var args []any
	argNum := 1

	if params.ID.IsSet {
		query.WriteString(fmt.Sprintf(" AND id = $%d", argNum))
		args = append(args, params.ID.Val)
		argNum++
	}
	if params.Email.IsSet {
		query.WriteString(fmt.Sprintf(" AND email = $%d", argNum))
		args = append(args, params.Email.Val)
	}

	err := db.Pool.QueryRow(ctx, query.String(), args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, repository.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("database: failed to scan user: %w", err)
	}
	return user, nil
}

func (db *Database) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.Pool.Exec(ctx, `UPDATE tbl_user SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("database: failed to update password (user=%s): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
