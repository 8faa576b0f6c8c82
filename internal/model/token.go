package model

import "github.com/google/uuid"

// TokenManager generates and validates access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(user User) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}

// TokenPair is a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
