package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartStore interface {
	ListItems(ctx context.Context, userID string) ([]models.CartItem, error)
	FindItemByProduct(ctx context.Context, userID, productID string) (*models.CartItem, error)
	GetItem(ctx context.Context, userID, id string) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, userID, id string) error
	DeleteAllItems(ctx context.Context, userID string) (int64, error)
}

type CartService struct {
	Repo     CartStore
	Catalog  CatalogStore
	Events   events.Publisher
	Currency string
	Now      func() time.Time
}

func (s *CartService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *CartService) publish(ctx context.Context, ev events.Event) {
	if s.Events == nil {
		return
	}
	ev.At = s.now()
	if err := s.Events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "type", ev.Type, "error", err)
	}
}

func storeErr(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// AddOrIncrement adds quantity of a product to the user's cart. An existing
// line for the product is incremented; created reports whether a new line
// was made. The read and the write are separate calls, so two concurrent adds
// may lose one increment.
func (s *CartService) AddOrIncrement(ctx context.Context, userID, productID string, quantity int) (*models.CartItem, bool, error) {
	if productID == "" {
		return nil, false, fmt.Errorf("product id is required: %w", ErrValidation)
	}
	if quantity < 1 {
		return nil, false, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	item, err := s.Repo.FindItemByProduct(ctx, userID, productID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.Repo.SaveItem(ctx, item); err != nil {
			return nil, false, storeErr("increment cart item", err)
		}
		s.publish(ctx, events.Event{Type: events.CartItemUpdated, UserID: userID, ItemID: item.ID, ProductID: productID, Quantity: item.Quantity})
		return item, false, nil
	case errors.Is(err, repo.ErrNotFound):
	default:
		return nil, false, storeErr("find cart item", err)
	}

	item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return nil, false, storeErr("create cart item", err)
	}
	s.publish(ctx, events.Event{Type: events.CartItemAdded, UserID: userID, ItemID: item.ID, ProductID: productID, Quantity: quantity})
	return item, true, nil
}

// SetQuantity overwrites the quantity of a cart line. A quantity below 1
// removes the line and returns a nil item.
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, s.Remove(ctx, userID, itemID)
	}

	item, err := s.Repo.GetItem(ctx, userID, itemID)
	if err != nil {
		return nil, storeErr("get cart item", err)
	}
	item.Quantity = quantity
	if err := s.Repo.SaveItem(ctx, item); err != nil {
		return nil, storeErr("update cart item", err)
	}

	s.publish(ctx, events.Event{Type: events.CartItemUpdated, UserID: userID, ItemID: item.ID, ProductID: item.ProductID, Quantity: quantity})
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	if err := s.Repo.DeleteItem(ctx, userID, itemID); err != nil {
		return storeErr("remove cart item", err)
	}
	s.publish(ctx, events.Event{Type: events.CartItemRemoved, UserID: userID, ItemID: itemID})
	return nil
}

// ListWithTotal returns the user's cart with each line's product resolved.
// Lines whose product no longer exists are returned without one and left
// out of the total.
func (s *CartService) ListWithTotal(ctx context.Context, userID string) (models.CartView, error) {
	items, err := s.Repo.ListItems(ctx, userID)
	if err != nil {
		return models.CartView{}, storeErr("list cart", err)
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}

	products, err := s.Catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return models.CartView{}, storeErr("resolve cart products", err)
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	view := models.CartView{Lines: make([]models.CartLine, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		line := models.CartLine{Item: it, Product: byID[it.ProductID]}
		view.Total = view.Total.Add(line.Subtotal())
		view.Lines = append(view.Lines, line)
	}
	return view, nil
}

// Checkout issues a mock receipt for the given total and empties the cart.
// The total is taken as given. When clearing fails the receipt is still
// returned together with the error.
func (s *CartService) Checkout(ctx context.Context, userID string, userInfo map[string]any, total decimal.Decimal) (*models.Receipt, error) {
	now := s.now()
	receipt := &models.Receipt{
		ID:        fmt.Sprintf("mock_%d_%s", now.UnixMilli(), uuid.NewString()[:8]),
		User:      userInfo,
		Total:     total,
		Currency:  s.Currency,
		Timestamp: now,
	}

	if _, err := s.Repo.DeleteAllItems(ctx, userID); err != nil {
		return receipt, storeErr("clear cart", err)
	}

	s.publish(ctx, events.Event{Type: events.CheckoutCompleted, UserID: userID, ReceiptID: receipt.ID, Total: total.String(), Extra: userInfo})
	return receipt, nil
}
