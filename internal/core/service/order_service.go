package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/port"
)

// OrderService drives the order placement workflow: verify the account,
// verify the item and its stock, reserve stock at the catalog store, price
// the order, and commit it to the ledger. Steps run strictly in that order
// and any failure short-circuits the rest.
type OrderService struct {
	directory port.AccountDirectory
	catalog   port.CatalogStore
	ledger    port.OrderRepository
	timeout   time.Duration
	log       *zap.Logger
}

func NewOrderService(directory port.AccountDirectory, catalog port.CatalogStore, ledger port.OrderRepository, timeout time.Duration, log *zap.Logger) *OrderService {
	return &OrderService{
		directory: directory,
		catalog:   catalog,
		ledger:    ledger,
		timeout:   timeout,
		log:       log,
	}
}

// PlaceOrder creates exactly one order and one stock decrement on success,
// and zero mutations on any failure before the reserve step. There are no
// automatic retries; every upstream failure maps to one domain error and
// ends the workflow.
//
// Placement is not idempotent: two identical requests produce two orders and
// two decrements. Deduplication is the client's concern.
func (s *OrderService) PlaceOrder(ctx context.Context, accountID, itemID int64, quantity int) (*domain.Order, error) {
	if accountID <= 0 {
		return nil, domain.InvalidRequest("accountId is required")
	}
	if itemID <= 0 {
		return nil, domain.InvalidRequest("itemId is required")
	}
	if quantity <= 0 {
		return nil, domain.InvalidRequest("quantity must be a positive integer")
	}

	account, err := s.resolveAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	item, err := s.resolveItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// Fast-fail hint only. The reserve below re-checks sufficiency
	// atomically and is the authoritative answer.
	if item.Quantity < quantity {
		return nil, domain.ErrInsufficientStock
	}

	if err := s.reserveStock(ctx, itemID, quantity); err != nil {
		return nil, err
	}

	// Price from the lookup snapshot, not a re-read after the reserve.
	// Under concurrent price updates the price and the stock check can
	// observe different catalog states; accepted trade-off.
	unitPrice := item.Price
	totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	order := domain.Order{
		AccountID:   account.ID,
		AccountName: account.Name,
		ItemID:      item.ID,
		ItemName:    item.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  totalPrice,
		Status:      domain.OrderStatusConfirmed,
	}

	created, err := s.insertOrder(ctx, order)
	if err != nil {
		s.releaseStock(itemID, quantity)
		return nil, err
	}

	s.log.Info("order placed",
		zap.Int64("order_id", created.ID),
		zap.Int64("account_id", accountID),
		zap.Int64("item_id", itemID),
		zap.Int("quantity", quantity),
		zap.String("total_price", created.TotalPrice.String()),
	)
	return created, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return nil, domain.Internal(err)
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return orders, nil
}

func (s *OrderService) resolveAccount(ctx context.Context, id int64) (*domain.Account, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.directory.GetAccount(cctx, id)
}

func (s *OrderService) resolveItem(ctx context.Context, id int64) (*domain.Item, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.catalog.GetItem(cctx, id)
}

func (s *OrderService) reserveStock(ctx context.Context, itemID int64, quantity int) error {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	_, err := s.catalog.Reserve(cctx, itemID, quantity)
	return err
}

func (s *OrderService) insertOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	created, err := s.ledger.Insert(cctx, order)
	if err != nil {
		return nil, domain.Internal(err)
	}
	return created, nil
}

// releaseStock compensates a reserve whose order never made it into the
// ledger. It runs on a fresh context because the request context may already
// be dead. Best effort: a failure here leaks the reserved stock and is
// logged for the operator.
func (s *OrderService) releaseStock(itemID int64, quantity int) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.catalog.Release(ctx, itemID, quantity); err != nil {
		s.log.Error("stock release failed after ledger insert failure",
			zap.Int64("item_id", itemID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return
	}
	s.log.Warn("released reserved stock after ledger insert failure",
		zap.Int64("item_id", itemID),
		zap.Int("quantity", quantity),
	)
}
