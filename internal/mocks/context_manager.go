package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// ContextManager is a mock type for the model.ContextManager type.
type ContextManager struct {
	mock.Mock
}

func (_m *ContextManager) SetUserToContext(ctx context.Context, user model.PublicUser) context.Context {
	ret := _m.Called(ctx, user)
	return ret.Get(0).(context.Context)
}

func (_m *ContextManager) GetUserFromContext(ctx context.Context) (model.PublicUser, bool) {
	ret := _m.Called(ctx)
	return ret.Get(0).(model.PublicUser), ret.Bool(1)
}

// NewContextManager creates a new instance of ContextManager. It also registers a cleanup function to assert the mocks expectations.
func NewContextManager(t TestingT) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
