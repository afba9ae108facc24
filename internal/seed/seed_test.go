package seed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo/repotest"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedJSON = `[
 {"id":1,"title":"Backpack","price":109.95,"description":"Fits 15 inch laptops","category":"men's clothing","image":"https://img/1.jpg"},
 {"id":2,"title":"T-Shirt","price":22.3,"description":"Slim fit","category":"men's clothing","image":"https://img/2.jpg"}
]`

type recordingIndex struct {
	got []models.Product
	err error
}

func (r *recordingIndex) IndexProducts(_ context.Context, products []models.Product) error {
	r.got = products
	return r.err
}

func feedServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(feedJSON))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestRun_SeedsEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewSQLite(t)
	srv, hits := feedServer(t, http.StatusOK)
	idx := &recordingIndex{}

	s := NewSeeder(store, idx, srv.URL, true, time.Second, logging.Discard())
	s.Run(ctx)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int32(1), hits.Load())

	names := map[string]string{}
	for _, p := range products {
		names[p.Name] = p.Price.StringFixed(2)
	}
	assert.Equal(t, map[string]string{"Backpack": "109.95", "T-Shirt": "22.30"}, names)
	assert.Len(t, idx.got, 2)
}

func TestSeed_SkipsWhenProductsExist(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewSQLite(t)
	repotest.SeedProducts(t, store, "1.00")
	srv, hits := feedServer(t, http.StatusOK)

	n, err := NewSeeder(store, nil, srv.URL, true, time.Second, logging.Discard()).Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, hits.Load())
}

func TestSeed_FeedFailure(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewSQLite(t)
	srv, _ := feedServer(t, http.StatusBadGateway)

	s := NewSeeder(store, nil, srv.URL, true, time.Second, logging.Discard())
	_, err := s.Seed(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	s.Run(ctx)
	n, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRun_DisabledStillReindexes(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewSQLite(t)
	repotest.SeedProducts(t, store, "3.50")
	idx := &recordingIndex{}

	NewSeeder(store, idx, "http://127.0.0.1:0", false, time.Second, logging.Discard()).Run(ctx)
	assert.Len(t, idx.got, 1)

	idx.err = errors.New("index closed")
	_, err := NewSeeder(store, idx, "", false, time.Second, logging.Discard()).Reindex(ctx)
	require.Error(t, err)
}
