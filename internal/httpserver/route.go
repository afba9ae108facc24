package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
)

const userIDKey = loggingmw.UserIDKey

type Deps struct {
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	// UserID is the identity every request acts as.
	UserID string
	// Ready reports whether the store is reachable.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.Use(DemoUser(d.UserID))

	api.GET("/products", d.ProductHandler.ListProducts)
	api.GET("/products/search", d.ProductHandler.SearchProducts)

	api.GET("/cart", d.CartHandler.GetCart)
	api.POST("/cart", d.CartHandler.AddToCart)
	api.PUT("/cart/:id", d.CartHandler.UpdateQuantity)
	api.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)

	api.POST("/checkout", d.CartHandler.Checkout)
}

// DemoUser stores a fixed user id in the context. It stands in for an
// authentication layer.
func DemoUser(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}
