package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog record. Quantity is the quantity on hand; it is mutated
// only through the catalog store's conditional reserve operation and must
// never go negative.
type Item struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
}
