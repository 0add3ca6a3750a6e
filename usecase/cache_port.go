package usecase

import (
	"context"

	"github.com/donelist/backend/domain"
	"github.com/donelist/backend/repository"
)

// ListCache abstracts the listing cache so use cases stay storage-agnostic.
// A nil result with a nil error means a cache miss.
type ListCache interface {
	GetList(ctx context.Context, params repository.ListParams) ([]domain.Todo, error)
	SetList(ctx context.Context, params repository.ListParams, todos []domain.Todo) error
	Invalidate(ctx context.Context) error
}
