package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dpereira/storefront/internal/core/domain"
)

type ItemMySQL struct {
	db *sql.DB
}

func NewItemMySQL(db *sql.DB) *ItemMySQL {
	return &ItemMySQL{db: db}
}

func (m *ItemMySQL) Create(ctx context.Context, item domain.Item) (*domain.Item, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO items (name, price, quantity) VALUES (?, ?, ?)`,
		item.Name, item.Price, item.Quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("item id: %w", err)
	}
	return m.GetByID(ctx, id)
}

func (m *ItemMySQL) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return scanItem(m.db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, created_at FROM items WHERE id = ?`, id))
}

func (m *ItemMySQL) ListAll(ctx context.Context) ([]domain.Item, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, quantity, created_at FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		var it domain.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Reserve decrements quantity on hand with the sufficiency check in the same
// UPDATE, so concurrent reservations can never drive quantity negative. The
// caller's earlier read of the quantity is a hint only; this statement is
// authoritative.
func (m *ItemMySQL) Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE items SET quantity = quantity - ?
		WHERE id = ? AND quantity >= ?`,
		quantity, id, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("reserve stock: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		var exists int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM items WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("check item: %w", err)
		}
		return nil, domain.ErrInsufficientStock
	}

	item, err := scanItem(tx.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, created_at FROM items WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reserve: %w", err)
	}
	return item, nil
}

// Release restores previously reserved quantity. Used by the orchestrator's
// compensation path when the ledger insert fails after a reserve succeeded.
func (m *ItemMySQL) Release(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	res, err := m.db.ExecContext(ctx, `
		UPDATE items SET quantity = quantity + ? WHERE id = ?`,
		quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("release stock: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrItemNotFound
	}
	return m.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.Name, &it.Price, &it.Quantity, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &it, nil
}
