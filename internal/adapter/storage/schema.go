package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	pingRetries  = 30
	pingInterval = 2 * time.Second
)

// WaitForDB pings until the database answers or the retry budget is spent.
// Services start before their database in the compose setup, so a cold start
// needs this.
func WaitForDB(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	var err error
	for i := 0; i < pingRetries; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		log.Info("waiting for database", zap.Int("attempt", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingInterval):
		}
	}
	return fmt.Errorf("database not reachable after %d attempts: %w", pingRetries, err)
}

func EnsureAccountSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if n == 0 {
		_, err = db.ExecContext(ctx,
			`INSERT INTO accounts (name, email) VALUES (?, ?)`,
			"Admin User", "admin@email.com")
		if err != nil {
			return fmt.Errorf("seed accounts: %w", err)
		}
	}
	return nil
}

func EnsureItemSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10,2) NOT NULL,
			quantity INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create items table: %w", err)
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if n == 0 {
		seeds := []struct {
			name     string
			price    string
			quantity int
		}{
			{"Notebook Dell", "2500.00", 5},
			{"Mouse Logitech", "150.00", 20},
		}
		for _, s := range seeds {
			_, err = db.ExecContext(ctx,
				`INSERT INTO items (name, price, quantity) VALUES (?, ?, ?)`,
				s.name, s.price, s.quantity)
			if err != nil {
				return fmt.Errorf("seed items: %w", err)
			}
		}
	}
	return nil
}

func EnsureOrderSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			account_id BIGINT NOT NULL,
			account_name VARCHAR(255) NOT NULL,
			item_id BIGINT NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			unit_price DECIMAL(10,2) NOT NULL,
			total_price DECIMAL(10,2) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'confirmed',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}
