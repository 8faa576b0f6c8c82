package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// TokenManager is a mock type for the model.TokenManager type.
type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) GenerateAccessToken(user model.User) (string, error) {
	ret := _m.Called(user)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	ret := _m.Called(userID)
	return ret.String(0), ret.Error(1)
}

func (_m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

func (_m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, error) {
	ret := _m.Called(token)
	return ret.Get(0).(uuid.UUID), ret.Error(1)
}

// NewTokenManager creates a new instance of TokenManager. It also registers a cleanup function to assert the mocks expectations.
func NewTokenManager(t TestingT) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
