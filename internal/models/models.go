package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. It is created by the seeder and never changed
// through the API.
type Product struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null"`
	Image       string          `gorm:"not null"`
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (Product) TableName() string {
	return "products"
}

// CartItem is one line of a user's cart. The (user, product) pair is kept
// unique by the add operation, not by the schema.
type CartItem struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index:idx_cart_user_product;not null"`
	ProductID string `gorm:"index:idx_cart_user_product;size:36;not null"`
	Quantity  int    `gorm:"not null;default:1;check:quantity>0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (CartItem) TableName() string {
	return "cart_items"
}
