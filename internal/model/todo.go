package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TodoStore defines persistence operations for todos.
type TodoStore interface {
	Create(ctx context.Context, todo Todo) (Todo, error)
	GetByID(ctx context.Context, id uuid.UUID) (Todo, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateTodoParams) (Todo, error)
	Delete(ctx context.Context, id uuid.UUID) (Todo, error)
	List(ctx context.Context, filter TodoFilter) ([]Todo, int, error)
}

// Todo is a single todo item owned by exactly one user.
type Todo struct {
	ID        uuid.UUID `json:"_id"`
	Todo      string    `json:"todo"`
	Completed bool      `json:"completed"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateTodoParams holds optional todo fields. Nil fields are left unchanged.
type UpdateTodoParams struct {
	Todo      *string
	Completed *bool
}

// TodoFilter selects a page of a user's todos.
// Completed is nil when todos of any status are requested.
type TodoFilter struct {
	UserID    uuid.UUID
	Completed *bool
	Query     string
	Limit     int
	Offset    int
}

// TodoPage is a paginated list of todos.
type TodoPage struct {
	Docs          []Todo `json:"docs"`
	TotalDocs     int    `json:"totalDocs"`
	Limit         int    `json:"limit"`
	Page          int    `json:"page"`
	TotalPages    int    `json:"totalPages"`
	PagingCounter int    `json:"pagingCounter"`
	HasPrevPage   bool   `json:"hasPrevPage"`
	HasNextPage   bool   `json:"hasNextPage"`
	PrevPage      *int   `json:"prevPage"`
	NextPage      *int   `json:"nextPage"`
}

// NewTodoPage builds page metadata for docs taken from a result of total items.
func NewTodoPage(docs []Todo, total, page, limit int) TodoPage {
	if docs == nil {
		docs = []Todo{}
	}

	totalPages := 1
	if limit > 0 && total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	p := TodoPage{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         limit,
		Page:          page,
		TotalPages:    totalPages,
		PagingCounter: (page-1)*limit + 1,
		HasPrevPage:   page > 1,
		HasNextPage:   page < totalPages,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}

	return p
}
