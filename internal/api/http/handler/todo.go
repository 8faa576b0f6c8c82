package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	"github.com/dtroode/todo-server/internal/api/http/response"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

// TodoService manages todos on behalf of their owner.
type TodoService interface {
	Create(ctx context.Context, userID uuid.UUID, text string, completed bool) (model.Todo, error)
	Update(ctx context.Context, userID, todoID uuid.UUID, params model.UpdateTodoParams) (model.Todo, error)
	Delete(ctx context.Context, userID, todoID uuid.UUID) (model.Todo, error)
	List(ctx context.Context, userID uuid.UUID, params model.ListTodosParams) (model.TodoPage, error)
}

type Todo struct {
	todoService    TodoService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewTodo(todoService TodoService, contextManager model.ContextManager, logger *logger.Logger) *Todo {
	return &Todo{
		todoService:    todoService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createTodoRequest struct {
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
}

type updateTodoRequest struct {
	Todo      *string `json:"todo"`
	Completed *bool   `json:"completed"`
}

func (h *Todo) List(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	q := r.URL.Query()
	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		return err
	}
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		return err
	}

	result, err := h.todoService.List(r.Context(), user.ID, model.ListTodosParams{
		Page:   page,
		Limit:  limit,
		Status: q.Get("status"),
		Query:  q.Get("query"),
	})
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusOK, result, "Todos fetched successfully.")
}

func (h *Todo) Create(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	todo, err := h.todoService.Create(r.Context(), user.ID, req.Todo, req.Completed)
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusCreated, todo, "Todo created successfully.")
}

func (h *Todo) Update(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(r)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	todo, err := h.todoService.Update(r.Context(), user.ID, todoID, model.UpdateTodoParams{
		Todo:      req.Todo,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusOK, todo, "Todo updated successfully.")
}

func (h *Todo) Delete(w http.ResponseWriter, r *http.Request) error {
	user, err := currentUser(h.contextManager, r)
	if err != nil {
		return err
	}

	todoID, err := todoIDParam(r)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Delete(r.Context(), user.ID, todoID)
	if err != nil {
		return err
	}

	return response.JSON(w, http.StatusOK, todo, "Todo deleted successfully.")
}

func todoIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "todoId"))
	if err != nil {
		return uuid.Nil, apiErrors.NewErrBadRequest("invalid todo id")
	}
	return id, nil
}

// intParam parses an optional integer query parameter; empty means zero.
func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apiErrors.NewErrBadRequest(name + " must be an integer")
	}
	return v, nil
}
