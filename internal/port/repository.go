package port

import (
	"context"

	"github.com/dpereira/storefront/internal/core/domain"
)

type AccountRepository interface {
	// Create persists a new account; the email must be unique.
	Create(ctx context.Context, name, email string) (*domain.Account, error)

	// GetByID returns the account or domain.ErrAccountNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// ListAll returns every account ordered by id.
	ListAll(ctx context.Context) ([]domain.Account, error)
}

type ItemRepository interface {
	// Create persists a new catalog item.
	Create(ctx context.Context, item domain.Item) (*domain.Item, error)

	// GetByID returns the item or domain.ErrItemNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Item, error)

	// ListAll returns every item ordered by id.
	ListAll(ctx context.Context) ([]domain.Item, error)

	// Reserve atomically decrements quantity on hand, checking sufficiency
	// server-side in the same statement. Returns the updated item,
	// domain.ErrInsufficientStock, or domain.ErrItemNotFound.
	Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error)

	// Release restores previously reserved quantity (compensation path).
	Release(ctx context.Context, id int64, quantity int) (*domain.Item, error)
}

type OrderRepository interface {
	// Insert appends an order, assigning its id and creation timestamp.
	Insert(ctx context.Context, order domain.Order) (*domain.Order, error)

	// GetByID returns the order or a not-found error.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListAll returns orders most-recent-first.
	ListAll(ctx context.Context) ([]domain.Order, error)
}
