package client

import (
	"context"
	"errors"
	"testing"

	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	cart        transport.CartResponse
	cartErr     error
	mutateErr   error
	calls       []string
	lastTotal   float64
	cartFetches int
}

func (f *fakeAPI) Cart(context.Context) (*transport.CartResponse, error) {
	f.cartFetches++
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	c := f.cart
	return &c, nil
}

func (f *fakeAPI) AddToCart(_ context.Context, productID string, quantity int) (*transport.CartItemResponse, error) {
	f.calls = append(f.calls, "add")
	return &transport.CartItemResponse{ProductID: productID, Quantity: quantity}, f.mutateErr
}

func (f *fakeAPI) UpdateQuantity(_ context.Context, itemID string, quantity int) (*transport.CartItemResponse, error) {
	f.calls = append(f.calls, "update")
	return &transport.CartItemResponse{ID: itemID, Quantity: quantity}, f.mutateErr
}

func (f *fakeAPI) RemoveItem(context.Context, string) error {
	f.calls = append(f.calls, "remove")
	return f.mutateErr
}

func (f *fakeAPI) Checkout(_ context.Context, _ map[string]any, total float64) (*transport.ReceiptResponse, error) {
	f.calls = append(f.calls, "checkout")
	f.lastTotal = total
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return &transport.ReceiptResponse{ReceiptID: "mock_1_x", Total: total}, nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string)        { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string, _ error) { n.errors = append(n.errors, msg) }

func line(id string, qty int, price *float64) transport.CartLineResponse {
	l := transport.CartLineResponse{CartItemResponse: transport.CartItemResponse{ID: id, Quantity: qty}}
	if price != nil {
		l.Product = &transport.ProductResponse{ID: "p-" + id, Price: *price}
	}
	return l
}

func ptr(f float64) *float64 { return &f }

func TestCartState_TotalSkipsUnresolved(t *testing.T) {
	api := &fakeAPI{cart: transport.CartResponse{Items: []transport.CartLineResponse{
		line("a", 5, ptr(9.99)),
		line("b", 3, ptr(0.1)),
		line("c", 2, nil),
	}}}
	s := NewCartState(api, &recordingNotifier{})

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, "50.25", s.Total().StringFixed(2))
	assert.Equal(t, 3, s.Count())
}

func TestCartState_MutationsRefetch(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{cart: transport.CartResponse{Items: []transport.CartLineResponse{line("a", 1, ptr(9.99))}}}
	n := &recordingNotifier{}
	s := NewCartState(api, n)

	require.NoError(t, s.Add(ctx, transport.ProductResponse{ID: "p-a", Name: "Backpack"}, 1))
	require.NoError(t, s.Update(ctx, "a", 4))
	require.NoError(t, s.Update(ctx, "a", 0))
	require.NoError(t, s.Remove(ctx, "a"))

	assert.Equal(t, []string{"add", "update", "remove", "remove"}, api.calls)
	assert.Equal(t, 4, api.cartFetches)
	assert.Equal(t, "Backpack added to cart!", n.successes[0])
	assert.Empty(t, n.errors)
}

func TestCartState_FailureKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{cart: transport.CartResponse{Items: []transport.CartLineResponse{line("a", 2, ptr(9.99))}}}
	n := &recordingNotifier{}
	s := NewCartState(api, n)
	require.NoError(t, s.Refresh(ctx))

	api.mutateErr = errors.New("server down")
	api.cart = transport.CartResponse{}

	require.Error(t, s.Update(ctx, "a", 3))
	require.Error(t, s.Remove(ctx, "a"))
	_, err := s.Checkout(ctx, map[string]any{"name": "A"})
	require.Error(t, err)

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, "19.98", s.Total().StringFixed(2))
	assert.Equal(t, []string{"Failed to update cart", "Failed to remove item", "Checkout failed. Please try again."}, n.errors)

	api.mutateErr = nil
	api.cartErr = errors.New("timeout")
	require.Error(t, s.Refresh(ctx))
	assert.Len(t, s.Items(), 1)
}

func TestCartState_CheckoutSendsLocalTotal(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{cart: transport.CartResponse{Items: []transport.CartLineResponse{line("a", 5, ptr(9.99))}}}
	s := NewCartState(api, &recordingNotifier{})
	require.NoError(t, s.Refresh(ctx))

	api.cart = transport.CartResponse{}
	receipt, err := s.Checkout(ctx, map[string]any{"name": "A"})
	require.NoError(t, err)
	assert.Equal(t, 49.95, api.lastTotal)
	assert.Equal(t, "mock_1_x", receipt.ReceiptID)
	assert.Empty(t, s.Items())
}
