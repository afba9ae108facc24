package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/transport"
)

func TestRenderCart(t *testing.T) {
	var buf bytes.Buffer
	items := []transport.CartLineResponse{
		{CartItemResponse: transport.CartItemResponse{ID: "i1", Quantity: 5}, Product: &transport.ProductResponse{Name: "Backpack", Price: 9.99}},
		{CartItemResponse: transport.CartItemResponse{ID: "i2", Quantity: 1}},
	}

	require.NoError(t, renderCart(&buf, items, decimal.RequireFromString("49.95")))
	out := buf.String()
	assert.Contains(t, out, "Backpack")
	assert.Contains(t, out, "$49.95")
	assert.NotContains(t, out, "i2")
}

func TestRenderCart_OnlyMissingProducts(t *testing.T) {
	var buf bytes.Buffer
	items := []transport.CartLineResponse{
		{CartItemResponse: transport.CartItemResponse{ID: "i2", Quantity: 1}},
	}

	require.NoError(t, renderCart(&buf, items, decimal.Zero))
	assert.Equal(t, "Your cart is empty.\n", buf.String())
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderCart(&buf, nil, decimal.Zero))
	assert.Equal(t, "Your cart is empty.\n", buf.String())

	buf.Reset()
	require.NoError(t, renderProducts(&buf, nil))
	assert.Equal(t, "No products found.\n", buf.String())
}
