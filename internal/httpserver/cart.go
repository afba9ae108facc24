package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/validate"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	userID, err := getUserID(c)
	if err != nil {
		return fail(c, l, "get_cart_error", "Error fetching cart", err)
	}

	view, err := h.Svc.ListWithTotal(ctx, userID)
	if err != nil {
		return fail(c, l, "get_cart_error", "Error fetching cart", err)
	}

	return c.JSON(http.StatusOK, transport.NewCartResponse(view))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := getUserID(c)
	if err != nil {
		return fail(c, l, "add_to_cart_error", "Error adding item to cart", err)
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "add_to_cart_error", "Invalid request body", err)
	}
	if err := validate.Check(req); err != nil {
		return badRequest(c, l, "add_to_cart_error", "Product ID and a quantity of at least 1 are required", err)
	}

	item, created, err := h.Svc.AddOrIncrement(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, l, "add_to_cart_error", "Error adding item to cart", err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	l.Info("item added to cart", "item_id", item.ID, "quantity", item.Quantity, "created", created)
	return c.JSON(status, transport.NewCartItemResponse(*item))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	userID, err := getUserID(c)
	if err != nil {
		return fail(c, l, "update_cart_error", "Error updating cart item", err)
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "update_cart_error", "Invalid request body", err)
	}
	if err := validate.Check(req); err != nil {
		return badRequest(c, l, "update_cart_error", "Quantity must be at least 1", err)
	}

	item, err := h.Svc.SetQuantity(ctx, userID, c.Param("id"), req.Quantity)
	if err != nil {
		return fail(c, l, "update_cart_error", "Error updating cart item", err)
	}

	return c.JSON(http.StatusOK, transport.NewCartItemResponse(*item))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := getUserID(c)
	if err != nil {
		return fail(c, l, "remove_from_cart_error", "Error removing item from cart", err)
	}

	if err := h.Svc.Remove(ctx, userID, c.Param("id")); err != nil {
		return fail(c, l, "remove_from_cart_error", "Error removing item from cart", err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Item removed from cart"})
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	userID, err := getUserID(c)
	if err != nil {
		return fail(c, l, "checkout_error", "Error processing checkout", err)
	}

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, l, "checkout_error", "Invalid request body", err)
	}

	receipt, err := h.Svc.Checkout(ctx, userID, req.UserInfo, req.Total)
	if err != nil {
		if receipt != nil {
			l = l.With("receipt_id", receipt.ID)
		}
		return fail(c, l, "checkout_error", "Error processing checkout", err)
	}

	l.Info("checkout completed", "receipt_id", receipt.ID)
	return c.JSON(http.StatusOK, transport.NewReceiptResponse(*receipt))
}
