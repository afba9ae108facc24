package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/labstack/echo/v4"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	products, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return fail(c, l, "list_products_error", "Error fetching products", err)
	}

	return c.JSON(http.StatusOK, transport.NewProductsResponse(products))
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	var (
		q    string
		page = 1
		size = search.DefaultPageSize
	)
	err := echo.QueryParamsBinder(c).
		String("q", &q).
		Int("page", &page).
		Int("size", &size).
		BindError()
	if err != nil {
		return badRequest(c, l, "search_products_error", "Invalid query parameters", err)
	}

	from, limit := search.Page(page, size)
	res, err := h.Svc.SearchProducts(ctx, q, from, limit)
	if err != nil {
		return fail(c, l, "search_products_error", "Error searching products", err)
	}

	l.Info("search_products_success", "query", q, "total", res.Total)
	return c.JSON(http.StatusOK, transport.SearchResponse{
		Total:    res.Total,
		Page:     max(page, 1),
		Size:     limit,
		Products: transport.NewProductsResponse(res.Products),
	})
}
