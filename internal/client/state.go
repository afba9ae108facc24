package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/shopspring/decimal"
)

// API is the subset of Client the cart state needs.
type API interface {
	Cart(ctx context.Context) (*transport.CartResponse, error)
	AddToCart(ctx context.Context, productID string, quantity int) (*transport.CartItemResponse, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*transport.CartItemResponse, error)
	RemoveItem(ctx context.Context, itemID string) error
	Checkout(ctx context.Context, userInfo map[string]any, total float64) (*transport.ReceiptResponse, error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

// CartState caches the last cart fetched from the server. Every mutation is
// sent to the server and followed by a full refetch; the cache is never
// edited locally.
type CartState struct {
	api    API
	notify Notifier

	mu    sync.RWMutex
	items []transport.CartLineResponse
}

func NewCartState(api API, notify Notifier) *CartState {
	return &CartState{api: api, notify: notify}
}

func (s *CartState) Items() []transport.CartLineResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]transport.CartLineResponse(nil), s.items...)
}

// Count is the number of distinct lines.
func (s *CartState) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Total sums price times quantity over lines whose product resolved.
func (s *CartState) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, it := range s.items {
		if it.Product == nil {
			continue
		}
		price := decimal.NewFromFloat(it.Product.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (s *CartState) Refresh(ctx context.Context) error {
	cart, err := s.api.Cart(ctx)
	if err != nil {
		s.notify.Error("Could not fetch cart", err)
		return err
	}

	s.mu.Lock()
	s.items = cart.Items
	s.mu.Unlock()
	return nil
}

func (s *CartState) Add(ctx context.Context, product transport.ProductResponse, quantity int) error {
	if _, err := s.api.AddToCart(ctx, product.ID, quantity); err != nil {
		s.notify.Error("Failed to add item to cart", err)
		return err
	}
	s.notify.Success(fmt.Sprintf("%s added to cart!", product.Name))
	return s.Refresh(ctx)
}

// Update sets a line's quantity; a quantity below 1 removes the line.
func (s *CartState) Update(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, itemID)
	}
	if _, err := s.api.UpdateQuantity(ctx, itemID, quantity); err != nil {
		s.notify.Error("Failed to update cart", err)
		return err
	}
	s.notify.Success("Cart updated")
	return s.Refresh(ctx)
}

func (s *CartState) Remove(ctx context.Context, itemID string) error {
	if err := s.api.RemoveItem(ctx, itemID); err != nil {
		s.notify.Error("Failed to remove item", err)
		return err
	}
	s.notify.Success("Item removed from cart")
	return s.Refresh(ctx)
}

// Checkout submits the locally derived total and refetches the emptied cart.
func (s *CartState) Checkout(ctx context.Context, userInfo map[string]any) (*transport.ReceiptResponse, error) {
	receipt, err := s.api.Checkout(ctx, userInfo, s.Total().InexactFloat64())
	if err != nil {
		s.notify.Error("Checkout failed. Please try again.", err)
		return nil, err
	}
	s.notify.Success("Checkout successful! Thank you!")
	if err := s.Refresh(ctx); err != nil {
		return receipt, err
	}
	return receipt, nil
}
