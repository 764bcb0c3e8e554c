//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-backoffice/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestPostgresRepository_SaveUpdateDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct("Mug", decimal.RequireFromString("10.50"), decimal.RequireFromString("4.25"), 3)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	require.NoError(t, saved.Rename("Big Mug"))
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("10.5")))
	assert.Equal(t, saved.CreatedAt.Unix(), updated.CreatedAt.Unix())

	exists, err := repo.Exists(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, saved.ID))
	_, err = repo.GetByID(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, saved.ID), ports.ErrNotFound)
}

func TestPostgresRepository_AdjustStockFloor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct("Mug", decimal.NewFromInt(1), decimal.Zero, 2)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)

	adjusted, err := repo.AdjustStock(ctx, saved.ID, -2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), adjusted.InStock)

	_, err = repo.AdjustStock(ctx, saved.ID, -1)
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)

	_, err = repo.AdjustStock(ctx, saved.ID+100, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_UpdateWritesOnlySetColumns(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct("Mug", decimal.NewFromInt(10), decimal.NewFromInt(4), 10)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)

	stale, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	_, err = repo.AdjustStock(ctx, saved.ID, -3)
	require.NoError(t, err)

	name := "Big Mug"
	updated, err := repo.Update(ctx, saved.ID, ports.ProductChanges{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Name)
	assert.Equal(t, int64(7), updated.InStock)

	require.NoError(t, stale.Rename("Stale Mug"))
	resaved, err := repo.Save(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resaved.InStock, "save leaves stock alone")

	_, err = repo.Update(ctx, saved.ID+100, ports.ProductChanges{Name: &name})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
