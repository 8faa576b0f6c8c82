package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/model"
)

// Claims represents JWT claims with token type and user ID.
// Email and FullName are only set on access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
}

// JWT implements TokenManager backed by symmetric HMAC.
// Access and refresh tokens are signed with independent secrets.
type JWT struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager.
func NewJWT(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// GenerateAccessToken creates a short-lived access token carrying the user's identity.
func (j *JWT) GenerateAccessToken(user model.User) (string, error) {
	claims := j.claims(user.ID, typeAccess, j.accessTTL)
	claims.Email = user.Email
	claims.FullName = user.FullName

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.accessSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken creates a long-lived refresh token carrying only the user ID.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	claims := j.claims(userID, typeRefresh, j.refreshTTL)

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates and extracts the user ID from an access token.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, j.accessSecret, typeAccess)
}

// ParseRefreshToken validates and extracts the user ID from a refresh token.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, j.refreshSecret, typeRefresh)
}

// claims builds registered claims with a random ID so that two tokens
// minted for the same user within one second still differ.
func (j *JWT) claims(userID uuid.UUID, tokenType string, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}
}

func (j *JWT) parse(tokenString string, secret []byte, tokenType string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("failed to parse %s token: %w", tokenType, model.ErrTokenExpired)
		}
		return uuid.Nil, fmt.Errorf("failed to parse %s token: %w", tokenType, model.ErrTokenInvalid)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("%s token is invalid: %w", tokenType, model.ErrTokenInvalid)
	}
	if claims.TokenType != tokenType {
		return uuid.Nil, fmt.Errorf("token type mismatch %s: %w", claims.TokenType, model.ErrTokenInvalid)
	}
	if claims.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("token has no user: %w", model.ErrTokenInvalid)
	}

	return claims.UserID, nil
}
