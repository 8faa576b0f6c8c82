package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, email, full_name, password_hash, refresh_token_hash, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row rowScanner) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.RefreshTokenHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, full_name, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, params model.UpdateProfileParams) (model.User, error) {
	query := `UPDATE users
			  SET full_name = COALESCE($2, full_name), email = COALESCE($3, email), updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, params.FullName, params.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to update user profile: %w", err)
	}

	return user, nil
}

// UpdatePassword stores a new password hash and drops the refresh session in one statement.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, refresh_token_hash = NULL, updated_at = now() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectAffected(res)
}

func (r *UserRepository) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	query := `UPDATE users SET refresh_token_hash = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, hash)
	if err != nil {
		return fmt.Errorf("failed to set refresh token: %w", err)
	}
	return expectAffected(res)
}

func (r *UserRepository) ClearRefreshTokenHash(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET refresh_token_hash = NULL WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
