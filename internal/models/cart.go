package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a cart item with its product resolved. Product is nil when the
// reference dangles.
type CartLine struct {
	Item    CartItem
	Product *Product
}

// Subtotal is price times quantity, or zero for a dangling reference.
func (l CartLine) Subtotal() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Item.Quantity)))
}

type CartView struct {
	Lines []CartLine
	Total decimal.Decimal
}

// Receipt is produced by checkout and never persisted.
type Receipt struct {
	ID        string
	User      map[string]any
	Total     decimal.Decimal
	Currency  string
	Timestamp time.Time
}
