package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// UserStore is a mock type for the model.UserStore type.
type UserStore struct {
	mock.Mock
}

func (_m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	ret := _m.Called(ctx, email)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	ret := _m.Called(ctx, user)
	if rf, ok := ret.Get(0).(func(context.Context, model.User) model.User); ok {
		return rf(ctx, user), ret.Error(1)
	}
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, params model.UpdateProfileParams) (model.User, error) {
	ret := _m.Called(ctx, id, params)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	ret := _m.Called(ctx, id, passwordHash)
	return ret.Error(0)
}

func (_m *UserStore) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash []byte) error {
	ret := _m.Called(ctx, id, hash)
	return ret.Error(0)
}

func (_m *UserStore) ClearRefreshTokenHash(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewUserStore creates a new instance of UserStore. It also registers a cleanup function to assert the mocks expectations.
func NewUserStore(t TestingT) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
