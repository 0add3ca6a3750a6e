package repository

import (
	"context"

	"github.com/donelist/backend/domain"
)

// ListParams controls ordering and pagination of a todo listing.
type ListParams struct {
	SortBy domain.SortField
	Order  domain.SortOrder
	Limit  int
	Offset int
}

type TodoRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	List(ctx context.Context, params ListParams) ([]domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
}
