package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// AuthService is a mock type for the handler.AuthService type.
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.PublicUser), ret.Error(1)
}

func (_m *AuthService) Login(ctx context.Context, email, password string) (model.PublicUser, model.TokenPair, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.PublicUser), ret.Get(1).(model.TokenPair), ret.Error(2)
}

func (_m *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func (_m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	ret := _m.Called(ctx, refreshToken)
	return ret.Get(0).(model.TokenPair), ret.Error(1)
}

func (_m *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	ret := _m.Called(ctx, userID, oldPassword, newPassword)
	return ret.Error(0)
}

func (_m *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, params model.UpdateProfileParams) (model.PublicUser, error) {
	ret := _m.Called(ctx, userID, params)
	return ret.Get(0).(model.PublicUser), ret.Error(1)
}

// NewAuthService creates a new instance of AuthService. It also registers a cleanup function to assert the mocks expectations.
func NewAuthService(t TestingT) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// TodoService is a mock type for the handler.TodoService type.
type TodoService struct {
	mock.Mock
}

func (_m *TodoService) Create(ctx context.Context, userID uuid.UUID, text string, completed bool) (model.Todo, error) {
	ret := _m.Called(ctx, userID, text, completed)
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoService) Update(ctx context.Context, userID, todoID uuid.UUID, params model.UpdateTodoParams) (model.Todo, error) {
	ret := _m.Called(ctx, userID, todoID, params)
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoService) Delete(ctx context.Context, userID, todoID uuid.UUID) (model.Todo, error) {
	ret := _m.Called(ctx, userID, todoID)
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoService) List(ctx context.Context, userID uuid.UUID, params model.ListTodosParams) (model.TodoPage, error) {
	ret := _m.Called(ctx, userID, params)
	return ret.Get(0).(model.TodoPage), ret.Error(1)
}

// NewTodoService creates a new instance of TodoService. It also registers a cleanup function to assert the mocks expectations.
func NewTodoService(t TestingT) *TodoService {
	m := &TodoService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Authenticator is a mock type for the middleware.Authenticator type.
type Authenticator struct {
	mock.Mock
}

func (_m *Authenticator) Authenticate(ctx context.Context, accessToken string) (model.PublicUser, error) {
	ret := _m.Called(ctx, accessToken)
	return ret.Get(0).(model.PublicUser), ret.Error(1)
}

// NewAuthenticator creates a new instance of Authenticator. It also registers a cleanup function to assert the mocks expectations.
func NewAuthenticator(t TestingT) *Authenticator {
	m := &Authenticator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
