// Package seed fills an empty catalog from an external product feed.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type Store interface {
	CountProducts(ctx context.Context) (int64, error)
	CreateProducts(ctx context.Context, products []models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type Indexer interface {
	IndexProducts(ctx context.Context, products []models.Product) error
}

type Seeder struct {
	Store   Store
	Index   Indexer
	URL     string
	Enabled bool
	Client  *http.Client
	Log     *slog.Logger
}

func NewSeeder(store Store, index Indexer, url string, enabled bool, timeout time.Duration, log *slog.Logger) *Seeder {
	return &Seeder{
		Store:   store,
		Index:   index,
		URL:     url,
		Enabled: enabled,
		Client:  &http.Client{Timeout: timeout},
		Log:     log,
	}
}

type feedProduct struct {
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Seed inserts the feed's products when the catalog is empty and returns how
// many were inserted.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	n, err := s.Store.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		s.Log.Info("products already exist, skipping seed", "count", n)
		return 0, nil
	}

	feed, err := s.fetch(ctx)
	if err != nil {
		return 0, err
	}

	products := make([]models.Product, 0, len(feed))
	for _, f := range feed {
		products = append(products, models.Product{
			Name:        f.Title,
			Price:       f.Price.Round(2),
			Description: f.Description,
			Image:       f.Image,
			Category:    f.Category,
		})
	}
	if err := s.Store.CreateProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}
	return len(products), nil
}

func (s *Seeder) fetch(ctx context.Context) ([]feedProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog failed with status: %d", resp.StatusCode)
	}

	var feed []feedProduct
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return feed, nil
}

// Reindex pushes the whole catalog into the search index.
func (s *Seeder) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	products, err := s.Store.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return 0, nil
	}
	if err := s.Index.IndexProducts(ctx, products); err != nil {
		return 0, fmt.Errorf("index products: %w", err)
	}
	return len(products), nil
}

// Run seeds and reindexes, logging failures instead of returning them.
func (s *Seeder) Run(ctx context.Context) {
	if s.Enabled {
		n, err := s.Seed(ctx)
		if err != nil {
			s.Log.Error("seed_error", "url", s.URL, "error", err)
		} else if n > 0 {
			s.Log.Info("catalog seeded", "count", n)
		}
	}

	n, err := s.Reindex(ctx)
	if err != nil {
		s.Log.Error("reindex_error", "error", err)
		return
	}
	if n > 0 {
		s.Log.Info("search index rebuilt", "count", n)
	}
}
