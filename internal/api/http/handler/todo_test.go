package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	httpContext "github.com/dtroode/todo-server/internal/api/http/context"
	"github.com/dtroode/todo-server/internal/mocks"
	"github.com/dtroode/todo-server/internal/model"
	"github.com/dtroode/todo-server/internal/testutil"
)

func newTodoMux(svc TodoService) http.Handler {
	h := NewTodo(svc, httpContext.NewManager(), testutil.MakeNoopLogger())
	return newTestMux(func(r chi.Router, errs *Errors) {
		r.Get("/todos", errs.Wrap(h.List))
		r.Post("/todos/add", errs.Wrap(h.Create))
		r.Patch("/todos/{todoId}", errs.Wrap(h.Update))
		r.Delete("/todos/{todoId}", errs.Wrap(h.Delete))
	})
}

func TestTodo_List(t *testing.T) {
	svc := mocks.NewTodoService(t)
	page := model.NewTodoPage([]model.Todo{{ID: uuid.New(), Todo: "buy milk", UserID: testUser.ID}}, 1, 2, 5)
	svc.On("List", mock.Anything, testUser.ID, model.ListTodosParams{Page: 2, Limit: 5, Status: "true", Query: "milk"}).
		Return(page, nil).Once()

	rec, env := do(t, newTodoMux(svc), http.MethodGet, "/todos?page=2&limit=5&status=true&query=milk", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.TodoPage
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got.Docs, 1)
	assert.Equal(t, 2, got.Page)
}

func TestTodo_List_BadPage(t *testing.T) {
	rec, _ := do(t, newTodoMux(mocks.NewTodoService(t)), http.MethodGet, "/todos?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodo_Create(t *testing.T) {
	svc := mocks.NewTodoService(t)
	todo := model.Todo{ID: uuid.New(), Todo: "buy milk", UserID: testUser.ID}
	svc.On("Create", mock.Anything, testUser.ID, "buy milk", false).Return(todo, nil).Once()

	rec, env := do(t, newTodoMux(svc), http.MethodPost, "/todos/add", `{"todo":"buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, todo.ID, got.ID)
}

func TestTodo_Update(t *testing.T) {
	todoID := uuid.New()
	completed := true

	tests := []struct {
		name       string
		target     string
		setup      func(*mocks.TodoService)
		wantStatus int
	}{
		{
			name:   "owner",
			target: "/todos/" + todoID.String(),
			setup: func(s *mocks.TodoService) {
				s.On("Update", mock.Anything, testUser.ID, todoID, model.UpdateTodoParams{Completed: &completed}).
					Return(model.Todo{ID: todoID, Completed: true}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "foreign todo",
			target: "/todos/" + todoID.String(),
			setup: func(s *mocks.TodoService) {
				s.On("Update", mock.Anything, testUser.ID, todoID, mock.Anything).
					Return(model.Todo{}, apiErrors.NewErrForbidden("user is not authorized to update this todo")).Once()
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed id",
			target:     "/todos/not-a-uuid",
			setup:      func(*mocks.TodoService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewTodoService(t)
			tt.setup(svc)

			rec, _ := do(t, newTodoMux(svc), http.MethodPatch, tt.target, `{"completed":true}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTodo_Delete(t *testing.T) {
	todoID := uuid.New()

	svc := mocks.NewTodoService(t)
	svc.On("Delete", mock.Anything, testUser.ID, todoID).Return(model.Todo{}, apiErrors.NewErrTodoNotFound()).Once()

	rec, env := do(t, newTodoMux(svc), http.MethodDelete, "/todos/"+todoID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "todo not found", env.Message)
}
