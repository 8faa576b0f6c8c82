package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/todo-server/internal/model"
)

var _ model.TodoStore = (*TodoRepository)(nil)

const todoColumns = `id, todo, completed, user_id, created_at, updated_at`

type TodoRepository struct {
	db *Connection
}

func NewTodoRepository(db *Connection) *TodoRepository {
	return &TodoRepository{
		db: db,
	}
}

func scanTodo(row rowScanner) (model.Todo, error) {
	var todo model.Todo
	err := row.Scan(&todo.ID, &todo.Todo, &todo.Completed, &todo.UserID, &todo.CreatedAt, &todo.UpdatedAt)
	return todo, err
}

func (r *TodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `INSERT INTO todos (id, todo, completed, user_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + todoColumns

	saved, err := scanTodo(r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Todo, todo.Completed, todo.UserID, todo.CreatedAt, todo.UpdatedAt,
	))
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return saved, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	return todo, nil
}

func (r *TodoRepository) Update(ctx context.Context, id uuid.UUID, params model.UpdateTodoParams) (model.Todo, error) {
	query := `UPDATE todos
			  SET todo = COALESCE($2, todo), completed = COALESCE($3, completed), updated_at = now()
			  WHERE id = $1
			  RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, params.Todo, params.Completed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	query := `DELETE FROM todos WHERE id = $1 RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to delete todo: %w", err)
	}

	return todo, nil
}

// List returns one page of the user's todos ordered by creation time and the total
// number of todos matching the filter.
func (r *TodoRepository) List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, int, error) {
	where, args := todoWhere(filter)

	var total int
	countQuery := `SELECT count(*) FROM todos WHERE ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count todos: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + todoColumns + ` FROM todos WHERE ` + where +
		` ORDER BY created_at ASC, id ASC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0, filter.Limit)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, total, nil
}

func todoWhere(filter model.TodoFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		conds = append(conds, "completed = $"+strconv.Itoa(len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, q)
		conds = append(conds, "to_tsvector('simple', todo) @@ plainto_tsquery('simple', $"+strconv.Itoa(len(args))+")")
	}

	return strings.Join(conds, " AND "), args
}
