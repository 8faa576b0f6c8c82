package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenService: NewTokenService(tokenManager, userStore, logger),
		logger:       logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error) {
	fullName := strings.TrimSpace(params.FullName)
	email := normalizeEmail(params.Email)

	if fullName == "" || email == "" || strings.TrimSpace(params.Password) == "" {
		return model.PublicUser{}, apiErrors.NewErrBadRequest("all fields are required")
	}

	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.PublicUser{}, apiErrors.NewErrEmailIsTaken(email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hashPassword(params.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrConflict) {
		return model.PublicUser{}, apiErrors.NewErrEmailIsTaken(email)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.PublicUser{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID)

	return user.Public(), nil
}

// Login verifies credentials and opens a new refresh session, superseding any earlier one.
func (a *Auth) Login(ctx context.Context, email, password string) (model.PublicUser, model.TokenPair, error) {
	email = normalizeEmail(email)
	if email == "" {
		return model.PublicUser{}, model.TokenPair{}, apiErrors.NewErrBadRequest("email is required")
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.PublicUser{}, model.TokenPair{}, apiErrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.PublicUser{}, model.TokenPair{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: invalid credentials",
			"user_id", user.ID)
		return model.PublicUser{}, model.TokenPair{}, apiErrors.NewErrUnauthorized("invalid user credentials")
	}

	pair, err := a.tokenService.Issue(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.PublicUser{}, model.TokenPair{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return user.Public(), pair, nil
}

func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	err := a.tokenService.Revoke(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	a.logger.Info("Auth service: user logged out",
		"user_id", userID)

	return nil
}

func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	if refreshToken == "" {
		return model.TokenPair{}, apiErrors.NewErrMissingAuthorizationToken()
	}

	user, pair, err := a.tokenService.Refresh(ctx, refreshToken)
	switch {
	case errors.Is(err, model.ErrTokenExpired), errors.Is(err, model.ErrTokenMismatch):
		return model.TokenPair{}, apiErrors.Wrap(http.StatusUnauthorized, "refresh token is expired or used", err)
	case errors.Is(err, model.ErrTokenInvalid):
		return model.TokenPair{}, apiErrors.Wrap(http.StatusUnauthorized, "invalid refresh token", err)
	case err != nil:
		return model.TokenPair{}, fmt.Errorf("failed to refresh token: %w", err)
	}

	a.logger.Debug("Auth service: tokens rotated",
		"user_id", user.ID)

	return pair, nil
}

// ChangePassword replaces the password after checking the old one. The refresh
// session is dropped so every client has to log in again.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apiErrors.NewErrBadRequest("new password is required")
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apiErrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if !a.hasher.Verify(oldPassword, user.PasswordHash) {
		return apiErrors.NewErrNotFound("password is incorrect")
	}

	hash, err := a.hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"user_id", userID)

	return nil
}

func (a *Auth) UpdateProfile(ctx context.Context, userID uuid.UUID, params model.UpdateProfileParams) (model.PublicUser, error) {
	var update model.UpdateProfileParams
	if params.FullName != nil {
		if name := strings.TrimSpace(*params.FullName); name != "" {
			update.FullName = &name
		}
	}
	if params.Email != nil {
		if email := normalizeEmail(*params.Email); email != "" {
			update.Email = &email
		}
	}
	if update.FullName == nil && update.Email == nil {
		return model.PublicUser{}, apiErrors.NewErrBadRequest("at least one field is required")
	}

	if update.Email != nil {
		existing, err := a.userStore.GetByEmail(ctx, *update.Email)
		if err == nil && existing.ID != userID {
			return model.PublicUser{}, apiErrors.NewErrEmailIsTaken(*update.Email)
		}
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.PublicUser{}, fmt.Errorf("failed to get user by email: %w", err)
		}
	}

	user, err := a.userStore.UpdateProfile(ctx, userID, update)
	switch {
	case errors.Is(err, model.ErrNotFound):
		return model.PublicUser{}, apiErrors.NewErrUserNotFound()
	case errors.Is(err, model.ErrConflict):
		return model.PublicUser{}, apiErrors.NewErrEmailIsTaken(*update.Email)
	case err != nil:
		return model.PublicUser{}, fmt.Errorf("failed to update user profile: %w", err)
	}

	a.logger.Info("Auth service: profile updated",
		"user_id", userID)

	return user.Public(), nil
}

// Authenticate resolves the owner of an access token.
func (a *Auth) Authenticate(ctx context.Context, accessToken string) (model.PublicUser, error) {
	if accessToken == "" {
		return model.PublicUser{}, apiErrors.NewErrMissingAuthorizationToken()
	}

	userID, err := a.tokenService.GetUserID(ctx, accessToken)
	if err != nil {
		return model.PublicUser{}, apiErrors.Wrap(http.StatusUnauthorized, "invalid access token", err)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.PublicUser{}, apiErrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.Public(), nil
}

func (a *Auth) hashPassword(password string) (string, error) {
	hash, err := a.hasher.Hash(password)
	if errors.Is(err, model.ErrPasswordTooLong) {
		return "", apiErrors.NewErrBadRequest("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
