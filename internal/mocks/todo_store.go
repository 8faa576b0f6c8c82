package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/todo-server/internal/model"
)

// TodoStore is a mock type for the model.TodoStore type.
type TodoStore struct {
	mock.Mock
}

func (_m *TodoStore) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	ret := _m.Called(ctx, todo)
	if rf, ok := ret.Get(0).(func(context.Context, model.Todo) model.Todo); ok {
		return rf(ctx, todo), ret.Error(1)
	}
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoStore) GetByID(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoStore) Update(ctx context.Context, id uuid.UUID, params model.UpdateTodoParams) (model.Todo, error) {
	ret := _m.Called(ctx, id, params)
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoStore) Delete(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Todo), ret.Error(1)
}

func (_m *TodoStore) List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, int, error) {
	ret := _m.Called(ctx, filter)

	var r0 []model.Todo
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Todo)
	}
	return r0, ret.Int(1), ret.Error(2)
}

// NewTodoStore creates a new instance of TodoStore. It also registers a cleanup function to assert the mocks expectations.
func NewTodoStore(t TestingT) *TodoStore {
	m := &TodoStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
