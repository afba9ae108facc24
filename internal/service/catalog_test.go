package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo/repotest"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	query    string
	from     int
	size     int
	products []models.Product
	err      error
}

func (s *stubSearcher) Search(_ context.Context, query string, from, size int) (int64, []models.Product, error) {
	s.query, s.from, s.size = query, from, size
	return int64(len(s.products)), s.products, s.err
}

func TestListProducts(t *testing.T) {
	r := repotest.NewSQLite(t)
	svc := &service.CatalogService{Repo: r}

	empty, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, empty)

	repotest.SeedProducts(t, r, "1.00", "2.00")
	list, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()

	disabled := &service.CatalogService{}
	_, err := disabled.SearchProducts(ctx, "shirt", 0, 10)
	require.ErrorIs(t, err, service.ErrSearchDisabled)

	stub := &stubSearcher{products: []models.Product{{ID: "p1", Name: "Shirt"}}}
	svc := &service.CatalogService{Search: stub}

	_, err = svc.SearchProducts(ctx, "   ", 0, 10)
	require.ErrorIs(t, err, service.ErrValidation)

	res, err := svc.SearchProducts(ctx, " shirt ", 20, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, "shirt", stub.query)
	assert.Equal(t, 20, stub.from)

	stub.err = errors.New("cluster red")
	_, err = svc.SearchProducts(ctx, "shirt", 0, 10)
	require.ErrorIs(t, err, service.ErrStore)
}
