package repo_test

import (
	"context"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/repo/repotest"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// store is what both backends offer the services.
type store interface {
	repotest.ProductCreator
	ListProducts(ctx context.Context) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)

	ListItems(ctx context.Context, userID string) ([]models.CartItem, error)
	FindItemByProduct(ctx context.Context, userID, productID string) (*models.CartItem, error)
	GetItem(ctx context.Context, userID, id string) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, userID, id string) error
	DeleteAllItems(ctx context.Context, userID string) (int64, error)

	Ping(ctx context.Context) error
}

var (
	_ store = (*repo.GormRepo)(nil)
	_ store = (*repo.MongoRepo)(nil)
)

// storeSuite runs the same cases against any backend. newStore may hand back
// a store shared between tests, so cases only look at rows they created.
type storeSuite struct {
	suite.Suite
	ctx      context.Context
	newStore func(t *testing.T) store
	repo     store
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newStore(s.T())
}

func TestGormRepo(t *testing.T) {
	suite.Run(t, &storeSuite{newStore: func(t *testing.T) store { return repotest.NewSQLite(t) }})
}

func (s *storeSuite) TestProducts() {
	before, err := s.repo.CountProducts(s.ctx)
	s.Require().NoError(err)

	created := repotest.SeedProducts(s.T(), s.repo, "9.99", "19.50", "0")

	total, err := s.repo.CountProducts(s.ctx)
	s.Require().NoError(err)
	s.Equal(before+3, total)

	ids := make(map[string]bool, len(created))
	for _, p := range created {
		s.NotEmpty(p.ID)
		ids[p.ID] = true
	}

	all, err := s.repo.ListProducts(s.ctx)
	s.Require().NoError(err)
	var list []models.Product
	for _, p := range all {
		if ids[p.ID] {
			list = append(list, p)
		}
	}
	s.Require().Len(list, 3)

	opts := cmp.Options{
		cmpopts.SortSlices(func(a, b models.Product) bool { return a.ID < b.ID }),
		cmpopts.IgnoreFields(models.Product{}, "CreatedAt", "UpdatedAt"),
		cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	}
	if diff := cmp.Diff(created, list, opts...); diff != "" {
		s.Failf("products mismatch", "(-want +got):\n%s", diff)
	}

	byID, err := s.repo.GetProductsByIDs(s.ctx, []string{created[0].ID, uuid.NewString()})
	s.Require().NoError(err)
	s.Require().Len(byID, 1)
	s.Equal(created[0].ID, byID[0].ID)
	s.Equal("9.99", byID[0].Price.StringFixed(2))

	byID, err = s.repo.GetProductsByIDs(s.ctx, []string{created[1].ID})
	s.Require().NoError(err)
	s.Require().Len(byID, 1)
	s.Equal("19.5", byID[0].Price.String())

	none, err := s.repo.GetProductsByIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *storeSuite) TestCartItemLifecycle() {
	user := gofakeit.Username() + "-" + uuid.NewString()
	productID := uuid.NewString()

	_, err := s.repo.FindItemByProduct(s.ctx, user, productID)
	s.ErrorIs(err, repo.ErrNotFound)

	item := &models.CartItem{UserID: user, ProductID: productID, Quantity: 2}
	s.Require().NoError(s.repo.CreateItem(s.ctx, item))
	s.NotEmpty(item.ID)

	found, err := s.repo.FindItemByProduct(s.ctx, user, productID)
	s.Require().NoError(err)
	s.Equal(item.ID, found.ID)
	s.Equal(2, found.Quantity)

	found.Quantity = 7
	s.Require().NoError(s.repo.SaveItem(s.ctx, found))
	s.Equal(7, found.Quantity)

	got, err := s.repo.GetItem(s.ctx, user, item.ID)
	s.Require().NoError(err)
	s.Equal(7, got.Quantity)
	s.Equal(productID, got.ProductID)

	items, err := s.repo.ListItems(s.ctx, user)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(item.ID, items[0].ID)

	_, err = s.repo.GetItem(s.ctx, "someone-else", item.ID)
	s.ErrorIs(err, repo.ErrNotFound)

	_, err = s.repo.GetItem(s.ctx, user, uuid.NewString())
	s.ErrorIs(err, repo.ErrNotFound)

	s.Require().NoError(s.repo.DeleteItem(s.ctx, user, item.ID))
	s.ErrorIs(s.repo.DeleteItem(s.ctx, user, item.ID), repo.ErrNotFound)

	missing := &models.CartItem{ID: uuid.NewString(), UserID: user, Quantity: 1}
	s.ErrorIs(s.repo.SaveItem(s.ctx, missing), repo.ErrNotFound)
}

func (s *storeSuite) TestDeleteAllItemsIsPerUser() {
	alice, bob := "alice-"+uuid.NewString(), "bob-"+uuid.NewString()
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.repo.CreateItem(s.ctx, &models.CartItem{UserID: alice, ProductID: uuid.NewString(), Quantity: 1}))
	}
	s.Require().NoError(s.repo.CreateItem(s.ctx, &models.CartItem{UserID: bob, ProductID: uuid.NewString(), Quantity: 1}))

	n, err := s.repo.DeleteAllItems(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(int64(3), n)

	left, err := s.repo.ListItems(s.ctx, alice)
	s.Require().NoError(err)
	s.Empty(left)

	other, err := s.repo.ListItems(s.ctx, bob)
	s.Require().NoError(err)
	s.Len(other, 1)

	n, err = s.repo.DeleteAllItems(s.ctx, alice)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *storeSuite) TestPing() {
	s.NoError(s.repo.Ping(s.ctx))
}
