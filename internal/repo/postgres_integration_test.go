//go:build integration

package repo_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/repo/repotest"
	"github.com/Skotchmaster/storefront/pkg/db"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresRepoSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	repo      *repo.GormRepo
}

func TestPostgresRepo(t *testing.T) {
	suite.Run(t, new(postgresRepoSuite))
}

func TestPostgresStoreContract(t *testing.T) {
	ctx := context.Background()

	pc, connStr, err := startPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pc) })

	gdb, err := db.Open(ctx, db.DriverPostgres, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := &repo.GormRepo{DB: gdb}
	require.NoError(t, r.Migrate(ctx))

	suite.Run(t, &storeSuite{newStore: func(*testing.T) store { return r }})
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	pc, err := postgres.Run(ctx, "postgres:17.6-alpine3.22", postgres.BasicWaitStrategies())
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := pc.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}
	return pc, connStr, nil
}

func (s *postgresRepoSuite) SetupSuite() {
	s.ctx = context.Background()

	pc, connStr, err := startPostgres(s.ctx)
	s.Require().NoError(err)
	s.container = pc

	gdb, err := db.Open(s.ctx, db.DriverPostgres, connStr)
	s.Require().NoError(err)

	s.repo = &repo.GormRepo{DB: gdb}
	s.Require().NoError(s.repo.Migrate(s.ctx))
}

func (s *postgresRepoSuite) TearDownSuite() {
	if s.repo != nil {
		_ = db.Close(s.repo.DB)
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *postgresRepoSuite) TestDecimalPriceRoundTrip() {
	created := repotest.SeedProducts(s.T(), s.repo, "9.99", "109.95")

	got, err := s.repo.GetProductsByIDs(s.ctx, []string{created[0].ID, created[1].ID})
	s.Require().NoError(err)
	s.Require().Len(got, 2)

	prices := map[string]string{}
	for _, p := range got {
		prices[p.ID] = p.Price.StringFixed(2)
	}
	s.Equal("9.99", prices[created[0].ID])
	s.Equal("109.95", prices[created[1].ID])
}

func (s *postgresRepoSuite) TestQuantityCheckConstraint() {
	item := &models.CartItem{UserID: gofakeit.Username(), ProductID: uuid.NewString(), Quantity: -1}
	s.Error(s.repo.DB.WithContext(s.ctx).Create(item).Error)
}
