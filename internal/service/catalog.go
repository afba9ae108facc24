package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

type ProductSearcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type SearchResult struct {
	Total    int64
	Products []models.Product
}

type CatalogService struct {
	Repo CatalogStore
	// Search is nil when no index is configured.
	Search ProductSearcher
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w: %w", ErrStore, err)
	}
	return products, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, from, size int) (SearchResult, error) {
	if s.Search == nil {
		return SearchResult{}, ErrSearchDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, fmt.Errorf("query must not be empty: %w", ErrValidation)
	}

	total, products, err := s.Search.Search(ctx, query, from, size)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search products: %w: %w", ErrStore, err)
	}
	return SearchResult{Total: total, Products: products}, nil
}
