package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error
	ClearRefreshTokenHash(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user with authentication material.
// RefreshTokenHash is nil when the user has no active refresh session.
type User struct {
	ID               uuid.UUID
	Email            string
	FullName         string
	PasswordHash     string
	RefreshTokenHash []byte
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Public strips credentials from the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// PublicUser is the only user representation that leaves the service.
type PublicUser struct {
	ID        uuid.UUID `json:"_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileParams holds optional profile fields. Nil fields are left unchanged.
type UpdateProfileParams struct {
	FullName *string
	Email    *string
}
