// Package repotest opens throwaway stores for tests.
package repotest

import (
	"context"
	"fmt"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a migrated repository over a private in-memory database
// that is closed when the test ends.
func NewSQLite(t testing.TB) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)

	r := &repo.GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(context.Background()))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return r
}

// FakeProduct builds an unsaved product with random content and the given price.
func FakeProduct(price string) models.Product {
	return models.Product{
		Name:        gofakeit.ProductName(),
		Price:       decimal.RequireFromString(price),
		Description: gofakeit.ProductDescription(),
		Image:       gofakeit.URL(),
		Category:    gofakeit.ProductCategory(),
	}
}

// ProductCreator is implemented by every store backend.
type ProductCreator interface {
	CreateProducts(ctx context.Context, products []models.Product) error
}

// SeedProducts inserts products with the given prices and returns them with ids.
func SeedProducts(t testing.TB, r ProductCreator, prices ...string) []models.Product {
	t.Helper()

	products := make([]models.Product, 0, len(prices))
	for _, p := range prices {
		products = append(products, FakeProduct(p))
	}
	require.NoError(t, r.CreateProducts(context.Background(), products))
	return products
}
