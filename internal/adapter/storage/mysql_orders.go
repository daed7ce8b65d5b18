package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dpereira/storefront/internal/core/domain"
)

type OrderMySQL struct {
	db *sql.DB
}

func NewOrderMySQL(db *sql.DB) *OrderMySQL {
	return &OrderMySQL{db: db}
}

// Insert appends the order, assigning its id and creation timestamp. Orders
// are never updated or deleted afterwards.
func (m *OrderMySQL) Insert(ctx context.Context, order domain.Order) (*domain.Order, error) {
	order.CreatedAt = time.Now().UTC()

	res, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (account_id, account_name, item_id, item_name, quantity, unit_price, total_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.AccountID, order.AccountName, order.ItemID, order.ItemName,
		order.Quantity, order.UnitPrice, order.TotalPrice, order.Status, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("order id: %w", err)
	}
	order.ID = id
	return &order, nil
}

func (m *OrderMySQL) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, account_id, account_name, item_id, item_name, quantity, unit_price, total_price, status, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.AccountID, &o.AccountName, &o.ItemID, &o.ItemName,
		&o.Quantity, &o.UnitPrice, &o.TotalPrice, &o.Status, &o.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	return &o, nil
}

func (m *OrderMySQL) ListAll(ctx context.Context) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, account_id, account_name, item_id, item_name, quantity, unit_price, total_price, status, created_at
		FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.AccountID, &o.AccountName, &o.ItemID, &o.ItemName,
			&o.Quantity, &o.UnitPrice, &o.TotalPrice, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
