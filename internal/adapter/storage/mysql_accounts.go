package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/dpereira/storefront/internal/core/domain"
)

const mysqlDupEntry = 1062

type AccountMySQL struct {
	db *sql.DB
}

func NewAccountMySQL(db *sql.DB) *AccountMySQL {
	return &AccountMySQL{db: db}
}

func (m *AccountMySQL) Create(ctx context.Context, name, email string) (*domain.Account, error) {
	res, err := m.db.ExecContext(ctx, `
		INSERT INTO accounts (name, email) VALUES (?, ?)`,
		name, email,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return nil, domain.InvalidRequest("email already exists")
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("account id: %w", err)
	}
	return m.GetByID(ctx, id)
}

func (m *AccountMySQL) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, email, created_at FROM accounts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &a, nil
}

func (m *AccountMySQL) ListAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, created_at FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
