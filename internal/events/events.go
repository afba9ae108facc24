// Package events publishes cart activity for downstream consumers.
package events

import (
	"context"
	"time"
)

const (
	CartItemAdded     = "cart_item_added"
	CartItemUpdated   = "cart_item_updated"
	CartItemRemoved   = "cart_item_removed"
	CheckoutCompleted = "checkout_completed"
)

// Event is the JSON payload written for every cart mutation.
type Event struct {
	Type      string         `json:"type"`
	UserID    string         `json:"user_id"`
	ItemID    string         `json:"item_id,omitempty"`
	ProductID string         `json:"product_id,omitempty"`
	Quantity  int            `json:"quantity,omitempty"`
	ReceiptID string         `json:"receipt_id,omitempty"`
	Total     string         `json:"total,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`
	At        time.Time      `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
