package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and the user's
// single refresh token slot in UserStore.
type TokenService struct {
	manager model.TokenManager
	store   model.UserStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

// Issue mints a new token pair for user and stores the refresh token hash,
// replacing any previous refresh session.
func (s *TokenService) Issue(ctx context.Context, user model.User) (model.TokenPair, error) {
	access, err := s.manager.GenerateAccessToken(user)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.store.SetRefreshTokenHash(ctx, user.ID, hashRefresh(refresh)); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates the presented refresh token against the stored slot and rotates both tokens.
// Invalid, expired, superseded and orphaned tokens all fail with a token error.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.User, model.TokenPair, error) {
	userID, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	user, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.TokenPair{}, model.ErrTokenInvalid
	}
	if err != nil {
		return model.User{}, model.TokenPair{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !equalBytes(user.RefreshTokenHash, hashRefresh(presentedRefresh)) {
		s.logger.Info("Token service: refresh token does not match active session",
			"user_id", userID)
		return model.User{}, model.TokenPair{}, model.ErrTokenMismatch
	}

	pair, err := s.Issue(ctx, user)
	if err != nil {
		return model.User{}, model.TokenPair{}, err
	}

	return user, pair, nil
}

// Revoke drops the user's refresh session.
func (s *TokenService) Revoke(ctx context.Context, userID uuid.UUID) error {
	return s.store.ClearRefreshTokenHash(ctx, userID)
}

func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

// equalBytes reports false for an empty stored slot.
func equalBytes(stored, presented []byte) bool {
	if len(stored) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(stored, presented) == 1
}
