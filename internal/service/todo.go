package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/todo-server/internal/api/errors"
	"github.com/dtroode/todo-server/internal/logger"
	"github.com/dtroode/todo-server/internal/model"
)

const (
	DefaultTodoLimit = 10
	MaxTodoLimit     = 100
	// MaxTodoPage keeps the row offset within int32.
	MaxTodoPage      = math.MaxInt32 / MaxTodoLimit
)

type Todo struct {
	todoStore model.TodoStore
	logger    *logger.Logger
}

func NewTodo(todoStore model.TodoStore, logger *logger.Logger) *Todo {
	return &Todo{
		todoStore: todoStore,
		logger:    logger,
	}
}

func (s *Todo) Create(ctx context.Context, userID uuid.UUID, text string, completed bool) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, apiErrors.NewErrBadRequest("todo is required")
	}

	now := time.Now()
	todo, err := s.todoStore.Create(ctx, model.Todo{
		ID:        uuid.New(),
		Todo:      text,
		Completed: completed,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("Todo service: failed to create todo",
			"user_id", userID,
			"error", err.Error())
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Debug("Todo service: todo created",
		"user_id", userID,
		"todo_id", todo.ID)

	return todo, nil
}

func (s *Todo) Update(ctx context.Context, userID, todoID uuid.UUID, params model.UpdateTodoParams) (model.Todo, error) {
	if params.Todo == nil && params.Completed == nil {
		return model.Todo{}, apiErrors.NewErrBadRequest("at least one field is required")
	}
	if params.Todo != nil {
		text := strings.TrimSpace(*params.Todo)
		if text == "" {
			return model.Todo{}, apiErrors.NewErrBadRequest("todo must not be empty")
		}
		params.Todo = &text
	}

	if _, err := s.getOwned(ctx, userID, todoID, "update"); err != nil {
		return model.Todo{}, err
	}

	todo, err := s.todoStore.Update(ctx, todoID, params)
	if errors.Is(err, model.ErrNotFound) {
		return model.Todo{}, apiErrors.NewErrTodoNotFound()
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

func (s *Todo) Delete(ctx context.Context, userID, todoID uuid.UUID) (model.Todo, error) {
	if _, err := s.getOwned(ctx, userID, todoID, "delete"); err != nil {
		return model.Todo{}, err
	}

	todo, err := s.todoStore.Delete(ctx, todoID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Todo{}, apiErrors.NewErrTodoNotFound()
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Debug("Todo service: todo deleted",
		"user_id", userID,
		"todo_id", todoID)

	return todo, nil
}

// List returns a page of the user's todos, oldest first.
func (s *Todo) List(ctx context.Context, userID uuid.UUID, params model.ListTodosParams) (model.TodoPage, error) {
	page := params.Page
	if page == 0 {
		page = 1
	}
	limit := params.Limit
	if limit == 0 {
		limit = DefaultTodoLimit
	}
	if page < 1 || limit < 1 {
		return model.TodoPage{}, apiErrors.NewErrBadRequest("page and limit must be positive")
	}
	if page > MaxTodoPage {
		return model.TodoPage{}, apiErrors.NewErrBadRequest(fmt.Sprintf("page must be at most %d", MaxTodoPage))
	}
	if limit > MaxTodoLimit {
		limit = MaxTodoLimit
	}

	filter := model.TodoFilter{
		UserID: userID,
		Query:  strings.TrimSpace(params.Query),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	switch strings.ToLower(strings.TrimSpace(params.Status)) {
	case "", "all":
	case "true":
		completed := true
		filter.Completed = &completed
	case "false":
		completed := false
		filter.Completed = &completed
	default:
		return model.TodoPage{}, apiErrors.NewErrBadRequest("status must be one of true, false, all")
	}

	todos, total, err := s.todoStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("Todo service: failed to list todos",
			"user_id", userID,
			"error", err.Error())
		return model.TodoPage{}, fmt.Errorf("failed to list todos: %w", err)
	}

	return model.NewTodoPage(todos, total, page, limit), nil
}

func (s *Todo) getOwned(ctx context.Context, userID, todoID uuid.UUID, action string) (model.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, todoID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Todo{}, apiErrors.NewErrTodoNotFound()
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	if todo.UserID != userID {
		s.logger.Info("Todo service: access denied",
			"user_id", userID,
			"todo_id", todoID,
			"action", action)
		return model.Todo{}, apiErrors.NewErrForbidden(fmt.Sprintf("user is not authorized to %s this todo", action))
	}

	return todo, nil
}
