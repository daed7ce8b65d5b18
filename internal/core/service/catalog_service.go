package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/port"
)

type CatalogService struct {
	repo port.ItemRepository
	log  *zap.Logger
}

func NewCatalogService(repo port.ItemRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) Create(ctx context.Context, name string, price decimal.Decimal, quantity int) (*domain.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.InvalidRequest("name is required")
	}
	if price.IsNegative() {
		return nil, domain.InvalidRequest("price must not be negative")
	}
	if quantity < 0 {
		return nil, domain.InvalidRequest("quantity must not be negative")
	}

	item, err := s.repo.Create(ctx, domain.Item{
		Name:     strings.TrimSpace(name),
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("item created", zap.Int64("item_id", item.ID))
	return item, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListAll(ctx)
}

// Reserve is the catalog store's conditional decrement. The repository runs
// the sufficiency check and the subtraction in one statement.
func (s *CatalogService) Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	if quantity <= 0 {
		return nil, domain.InvalidRequest("quantity must be a positive integer")
	}
	item, err := s.repo.Reserve(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info("stock reserved",
		zap.Int64("item_id", id),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Quantity),
	)
	return item, nil
}

func (s *CatalogService) Release(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	if quantity <= 0 {
		return nil, domain.InvalidRequest("quantity must be a positive integer")
	}
	item, err := s.repo.Release(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.log.Info("stock released",
		zap.Int64("item_id", id),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Quantity),
	)
	return item, nil
}
