package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is fixed at creation; orders have no further lifecycle.
type OrderStatus string

const OrderStatusConfirmed OrderStatus = "confirmed"

// Order is an immutable ledger record. The account and item fields are
// snapshots copied at placement time and never refreshed, so an order stays
// readable even after the source records change or disappear.
type Order struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"accountId"`
	AccountName string          `json:"accountName"`
	ItemID      int64           `json:"itemId"`
	ItemName    string          `json:"itemName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}
