package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/todo-server/internal/model"
)

func newMockConnection(t *testing.T) (*Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return &Connection{DB: db}, mock
}

var userRowColumns = []string{"id", "email", "full_name", "password_hash", "refresh_token_hash", "created_at", "updated_at"}

func userRow(u model.User) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(u.ID.String(), u.Email, u.FullName, u.PasswordHash, u.RefreshTokenHash, u.CreatedAt, u.UpdatedAt)
}

func testUser() model.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.User{
		ID:           uuid.New(),
		Email:        "ann@example.com",
		FullName:     "Ann",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestNewUserRepository(t *testing.T) {
	db := &Connection{}
	repo := NewUserRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	u := testUser()

	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
					WithArgs(u.Email).
					WillReturnRows(userRow(u))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
					WithArgs(u.Email).
					WillReturnRows(sqlmock.NewRows(userRowColumns))
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			tt.setup(mock)

			got, err := NewUserRepository(conn).GetByEmail(context.Background(), u.Email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, u.ID, got.ID)
			assert.Equal(t, u.FullName, got.FullName)
			assert.Nil(t, got.RefreshTokenHash)
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	u := testUser()
	u.RefreshTokenHash = []byte("hash")

	conn, mock := newMockConnection(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(u.ID).
		WillReturnRows(userRow(u))

	got, err := NewUserRepository(conn).GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, []byte("hash"), got.RefreshTokenHash)
}

func TestUserRepository_GetByID_DBError(t *testing.T) {
	conn, mock := newMockConnection(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WillReturnError(errors.New("connection reset"))

	_, err := NewUserRepository(conn).GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get user by id")
}

func TestUserRepository_Create(t *testing.T) {
	u := testUser()

	t.Run("success", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(`INSERT INTO users \(id, email, full_name, password_hash, created_at, updated_at\)`).
			WithArgs(u.ID, u.Email, u.FullName, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
			WillReturnRows(userRow(u))

		saved, err := NewUserRepository(conn).Create(context.Background(), u)
		require.NoError(t, err)
		assert.Equal(t, u.ID, saved.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := NewUserRepository(conn).Create(context.Background(), u)
		require.ErrorIs(t, err, model.ErrConflict)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	u := testUser()
	name := "Ann Lee"

	t.Run("partial update", func(t *testing.T) {
		updated := u
		updated.FullName = name

		conn, mock := newMockConnection(t)
		mock.ExpectQuery(`UPDATE users\s+SET full_name = COALESCE\(\$2, full_name\), email = COALESCE\(\$3, email\)`).
			WithArgs(u.ID, name, nil).
			WillReturnRows(userRow(updated))

		got, err := NewUserRepository(conn).UpdateProfile(context.Background(), u.ID, model.UpdateProfileParams{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, name, got.FullName)
	})

	t.Run("email taken", func(t *testing.T) {
		email := "taken@example.com"

		conn, mock := newMockConnection(t)
		mock.ExpectQuery(`UPDATE users`).
			WithArgs(u.ID, nil, email).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := NewUserRepository(conn).UpdateProfile(context.Background(), u.ID, model.UpdateProfileParams{Email: &email})
		require.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("missing user", func(t *testing.T) {
		conn, mock := newMockConnection(t)
		mock.ExpectQuery(`UPDATE users`).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := NewUserRepository(conn).UpdateProfile(context.Background(), u.ID, model.UpdateProfileParams{FullName: &name})
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	id := uuid.New()

	conn, mock := newMockConnection(t)
	mock.ExpectExec(`UPDATE users SET password_hash = \$2, refresh_token_hash = NULL`).
		WithArgs(id, "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewUserRepository(conn).UpdatePassword(context.Background(), id, "new-hash"))
}

func TestUserRepository_RefreshTokenHash(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		call    func(*UserRepository) error
		wantErr error
	}{
		{
			name: "set",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET refresh_token_hash = \$2 WHERE id = \$1`).
					WithArgs(id, []byte("h")).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			call: func(r *UserRepository) error {
				return r.SetRefreshTokenHash(context.Background(), id, []byte("h"))
			},
		},
		{
			name: "set on missing user",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET refresh_token_hash = \$2`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			call: func(r *UserRepository) error {
				return r.SetRefreshTokenHash(context.Background(), id, []byte("h"))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "clear",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET refresh_token_hash = NULL WHERE id = \$1`).
					WithArgs(id).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			call: func(r *UserRepository) error {
				return r.ClearRefreshTokenHash(context.Background(), id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnection(t)
			tt.setup(mock)

			err := tt.call(NewUserRepository(conn))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}
