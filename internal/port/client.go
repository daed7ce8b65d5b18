package port

import (
	"context"

	"github.com/dpereira/storefront/internal/core/domain"
)

// AccountDirectory is the orchestrator's view of the account service.
type AccountDirectory interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
}

// CatalogStore is the orchestrator's view of the catalog service. Reserve is
// the only mutation the orchestrator performs before committing an order;
// Release is its compensating inverse.
type CatalogStore interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error)
	Release(ctx context.Context, id int64, quantity int) (*domain.Item, error)
}
