package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/todo-server/internal/mocks"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/testutil"
)

func ptr[T any](v T) *T {
	return &v
}

func TestTodo_Create(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("trims text", func(t *testing.T) {
		store := mocks.NewTodoStore(t)
		store.On("Create", ctx, mock.MatchedBy(func(td model.Todo) bool {
			return td.Todo == "buy milk" && td.UserID == owner && !td.Completed
		})).Return(func(_ context.Context, td model.Todo) model.Todo { return td }, nil).Once()

		todo, err := NewTodo(store, testutil.MakeNoopLogger()).Create(ctx, owner, "  buy milk ", false)
		require.NoError(t, err)
		assert.Equal(t, "buy milk", todo.Todo)
		assert.NotEqual(t, uuid.Nil, todo.ID)
	})

	t.Run("blank text", func(t *testing.T) {
		_, err := NewTodo(mocks.NewTodoStore(t), testutil.MakeNoopLogger()).Create(ctx, owner, "   ", false)
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestTodo_Update(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	todo := model.Todo{ID: uuid.New(), Todo: "buy milk", UserID: owner}

	tests := []struct {
		name       string
		userID     uuid.UUID
		params     model.UpdateTodoParams
		setup      func(*mocks.TodoStore)
		wantStatus int
	}{
		{
			name:   "owner toggles completion",
			userID: owner,
			params: model.UpdateTodoParams{Completed: ptr(true)},
			setup: func(s *mocks.TodoStore) {
				s.On("GetByID", ctx, todo.ID).Return(todo, nil).Once()
				s.On("Update", ctx, todo.ID, model.UpdateTodoParams{Completed: ptr(true)}).
					Return(model.Todo{ID: todo.ID, Todo: todo.Todo, Completed: true, UserID: owner}, nil).Once()
			},
		},
		{
			name:       "other user",
			userID:     uuid.New(),
			params:     model.UpdateTodoParams{Completed: ptr(true)},
			setup:      func(s *mocks.TodoStore) { s.On("GetByID", ctx, todo.ID).Return(todo, nil).Once() },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing todo",
			userID:     owner,
			params:     model.UpdateTodoParams{Todo: ptr("x")},
			setup:      func(s *mocks.TodoStore) { s.On("GetByID", ctx, todo.ID).Return(model.Todo{}, model.ErrNotFound).Once() },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no fields",
			userID:     owner,
			params:     model.UpdateTodoParams{},
			setup:      func(*mocks.TodoStore) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blank text",
			userID:     owner,
			params:     model.UpdateTodoParams{Todo: ptr(" ")},
			setup:      func(*mocks.TodoStore) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := mocks.NewTodoStore(t)
			tt.setup(store)

			got, err := NewTodo(store, testutil.MakeNoopLogger()).Update(ctx, tt.userID, todo.ID, tt.params)
			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
				store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Completed)
		})
	}
}

func TestTodo_Delete(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	todo := model.Todo{ID: uuid.New(), Todo: "buy milk", UserID: owner}

	t.Run("owner", func(t *testing.T) {
		store := mocks.NewTodoStore(t)
		store.On("GetByID", ctx, todo.ID).Return(todo, nil).Once()
		store.On("Delete", ctx, todo.ID).Return(todo, nil).Once()

		got, err := NewTodo(store, testutil.MakeNoopLogger()).Delete(ctx, owner, todo.ID)
		require.NoError(t, err)
		assert.Equal(t, todo, got)
	})

	t.Run("other user", func(t *testing.T) {
		store := mocks.NewTodoStore(t)
		store.On("GetByID", ctx, todo.ID).Return(todo, nil).Once()

		_, err := NewTodo(store, testutil.MakeNoopLogger()).Delete(ctx, uuid.New(), todo.ID)
		requireStatus(t, err, http.StatusForbidden)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTodo_List(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	tests := []struct {
		name       string
		params     model.ListTodosParams
		wantFilter model.TodoFilter
		wantStatus int
	}{
		{
			name:       "defaults",
			params:     model.ListTodosParams{},
			wantFilter: model.TodoFilter{UserID: owner, Limit: 10, Offset: 0},
		},
		{
			name:       "completed only, second page",
			params:     model.ListTodosParams{Page: 2, Limit: 5, Status: "true"},
			wantFilter: model.TodoFilter{UserID: owner, Completed: ptr(true), Limit: 5, Offset: 5},
		},
		{
			name:       "pending with search",
			params:     model.ListTodosParams{Status: "FALSE", Query: " milk "},
			wantFilter: model.TodoFilter{UserID: owner, Completed: ptr(false), Query: "milk", Limit: 10},
		},
		{
			name:       "limit is capped",
			params:     model.ListTodosParams{Limit: 1000, Status: "all"},
			wantFilter: model.TodoFilter{UserID: owner, Limit: 100},
		},
		{
			name:       "unknown status",
			params:     model.ListTodosParams{Status: "done"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "last allowed page",
			params:     model.ListTodosParams{Page: MaxTodoPage, Limit: 1000},
			wantFilter: model.TodoFilter{UserID: owner, Limit: 100, Offset: (MaxTodoPage - 1) * 100},
		},
		{
			name:       "page beyond range",
			params:     model.ListTodosParams{Page: 1 << 61, Limit: 100},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative page",
			params:     model.ListTodosParams{Page: -1},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := mocks.NewTodoStore(t)
			if tt.wantStatus == 0 {
				store.On("List", ctx, tt.wantFilter).Return(nil, 0, nil).Once()
			}

			page, err := NewTodo(store, testutil.MakeNoopLogger()).List(ctx, owner, tt.params)
			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, page.Docs)
			assert.Equal(t, tt.wantFilter.Limit, page.Limit)
		})
	}
}

func TestTodo_List_StoreError(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	store := mocks.NewTodoStore(t)
	store.On("List", ctx, mock.Anything).Return(nil, 0, assert.AnError).Once()

	_, err := NewTodo(store, testutil.MakeNoopLogger()).List(ctx, owner, model.ListTodosParams{})
	requireStatus(t, err, http.StatusInternalServerError)
}
