package transport

import (
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type CheckoutRequest struct {
	UserInfo map[string]any  `json:"userInfo"`
	Total    decimal.Decimal `json:"total"`
}

type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CartItemResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartLineResponse is a listed cart item. Product is null when the item
// points at a product that no longer exists.
type CartLineResponse struct {
	CartItemResponse
	Product *ProductResponse `json:"product"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

type ReceiptResponse struct {
	ReceiptID string         `json:"receiptId"`
	User      map[string]any `json:"user"`
	Total     float64        `json:"total"`
	Currency  string         `json:"currency"`
	Timestamp time.Time      `json:"timestamp"`
}

type SearchResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
	Products []ProductResponse `json:"products"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.InexactFloat64(),
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductsResponse(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

func NewCartItemResponse(it models.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        it.ID,
		UserID:    it.UserID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func NewCartResponse(v models.CartView) CartResponse {
	resp := CartResponse{Items: make([]CartLineResponse, 0, len(v.Lines)), Total: v.Total.InexactFloat64()}
	for _, l := range v.Lines {
		line := CartLineResponse{CartItemResponse: NewCartItemResponse(l.Item)}
		if l.Product != nil {
			p := NewProductResponse(*l.Product)
			line.Product = &p
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}

func NewReceiptResponse(r models.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID: r.ID,
		User:      r.User,
		Total:     r.Total.InexactFloat64(),
		Currency:  r.Currency,
		Timestamp: r.Timestamp,
	}
}
